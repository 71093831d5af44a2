package recipe

import "strings"

// Section is one display bucket of a list. An empty Label is the Ungrouped
// bucket.
type Section[T any] struct {
	Label string
	Items []T
}

// GroupOrder returns the distinct non-empty group labels in order of first
// appearance, scanning ingredients and then instructions.
func (r *Recipe) GroupOrder() []string {
	seen := make(map[string]bool)
	var order []string
	add := func(label string) {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		order = append(order, label)
	}
	for _, ing := range r.Ingredients {
		add(ing.Group)
	}
	for _, ins := range r.Instructions {
		add(ins.Group)
	}
	return order
}

// IngredientSections buckets the ingredients by group in display order.
func (r *Recipe) IngredientSections() []Section[Ingredient] {
	return sections(r.GroupOrder(), r.Ingredients, func(i Ingredient) string { return i.Group })
}

// InstructionSections buckets the instructions by group in display order.
func (r *Recipe) InstructionSections() []Section[Instruction] {
	return sections(r.GroupOrder(), r.Instructions, func(i Instruction) string { return i.Group })
}

// sections keeps item order within each bucket. Buckets follow order, empty
// ones are skipped and the Ungrouped bucket comes last.
func sections[T any](order []string, items []T, label func(T) string) []Section[T] {
	buckets := make(map[string][]T, len(order)+1)
	for _, it := range items {
		l := strings.TrimSpace(label(it))
		buckets[l] = append(buckets[l], it)
	}

	out := make([]Section[T], 0, len(order)+1)
	for _, l := range order {
		if len(buckets[l]) > 0 {
			out = append(out, Section[T]{Label: l, Items: buckets[l]})
		}
	}
	if len(buckets[""]) > 0 {
		out = append(out, Section[T]{Items: buckets[""]})
	}
	return out
}

// Heading returns the subheading a renderer prints above s, or "" when the
// list has a single bucket and needs no subheading.
func (s Section[T]) Heading(total int) string {
	if total <= 1 {
		return ""
	}
	if s.Label == "" {
		return Ungrouped
	}
	return s.Label
}
