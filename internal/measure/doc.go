// Package measure holds the immutable lookup tables shared by unit
// normalization, scaling and ingredient line parsing.
//
// Three things live here:
//
//   - the culinary fraction ladder (halves, thirds, quarters, eighths) and the
//     Snap/Format/Parse functions built on it
//   - the unit table mapping long-form and abbreviated unit names to a
//     canonical abbreviation
//   - the inline quantity matcher used to find "quantity unit" spans in free
//     instruction text
//
// All tables are built once at package initialization and never mutated.
package measure
