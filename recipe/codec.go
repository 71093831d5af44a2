package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/alnah/go-recipefmt/internal/measure"
)

// topLevelFields are the keys DecodeStrict accepts.
var topLevelFields = map[string]bool{
	"title":        true,
	"description":  true,
	"ingredients":  true,
	"instructions": true,
	"notes":        true,
	"source":       true,
	"tips":         true,
}

// Decode parses exchange JSON. It accepts ingredients and instructions as
// plain strings, as objects, or wrapped in {"group": ..., "items": [...]}
// blocks. Decode does not validate; call Validate on the result.
func Decode(data []byte) (*Recipe, error) {
	return decode(data, false)
}

// DecodeStrict is Decode that also rejects unknown top-level fields. It is
// used for collaborator responses that must match the exchange format.
func DecodeStrict(data []byte) (*Recipe, error) {
	return decode(data, true)
}

func decode(data []byte, strict bool) (*Recipe, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidRecipe)
	}

	if strict {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
		}
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			if !topLevelFields[k] {
				return nil, fmt.Errorf("%w: %w %q", ErrInvalidRecipe, ErrUnknownField, k)
			}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrInvalidRecipe)
	}
	return &r, nil
}

// Encode writes the canonical exchange JSON of r: structured ingredient and
// instruction objects, two-space indentation, no HTML escaping.
func Encode(r *Recipe) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding recipe: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler and flattens grouped blocks.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title        string            `json:"title"`
		Description  string            `json:"description"`
		Ingredients  []json.RawMessage `json:"ingredients"`
		Instructions []json.RawMessage `json:"instructions"`
		Notes        string            `json:"notes"`
		Source       string            `json:"source"`
		Tips         []string          `json:"tips"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ingredients, err := decodeEntries(raw.Ingredients, func(ing *Ingredient, group string) {
		if ing.Group == "" {
			ing.Group = group
		}
	})
	if err != nil {
		return fmt.Errorf("ingredients: %w", err)
	}
	instructions, err := decodeEntries(raw.Instructions, func(ins *Instruction, group string) {
		if ins.Group == "" {
			ins.Group = group
		}
	})
	if err != nil {
		return fmt.Errorf("instructions: %w", err)
	}

	*r = Recipe{
		Title:        raw.Title,
		Description:  raw.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		Notes:        raw.Notes,
		Source:       raw.Source,
		Tips:         raw.Tips,
	}
	return nil
}

// groupBlock is the grouped shape produced by the JSON renderer.
type groupBlock struct {
	Group string            `json:"group"`
	Items []json.RawMessage `json:"items"`
}

func decodeEntries[T any](entries []json.RawMessage, setGroup func(*T, string)) ([]T, error) {
	out := make([]T, 0, len(entries))
	for i, e := range entries {
		if block, ok := asGroupBlock(e); ok {
			for _, item := range block.Items {
				var v T
				if err := json.Unmarshal(item, &v); err != nil {
					return nil, fmt.Errorf("group %q: %w", block.Group, err)
				}
				setGroup(&v, strings.TrimSpace(block.Group))
				out = append(out, v)
			}
			continue
		}

		var v T
		if err := json.Unmarshal(e, &v); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// asGroupBlock reports whether data is an object carrying an "items" key.
func asGroupBlock(data json.RawMessage) (groupBlock, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return groupBlock{}, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return groupBlock{}, false
	}
	if _, ok := probe["items"]; !ok {
		return groupBlock{}, false
	}
	var b groupBlock
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return groupBlock{}, false
	}
	return b, true
}

// UnmarshalJSON accepts either an ingredient object or a display line.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var line string
		if err := json.Unmarshal(data, &line); err != nil {
			return err
		}
		parsed, err := ParseLine(line)
		if err != nil {
			return err
		}
		*i = parsed
		return nil
	}

	var raw struct {
		Quantity quantity `json:"quantity"`
		Unit     string   `json:"unit"`
		Name     string   `json:"name"`
		Note     string   `json:"note"`
		Group    string   `json:"group"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Ingredient{
		Quantity: float64(raw.Quantity),
		Unit:     raw.Unit,
		Name:     raw.Name,
		Note:     raw.Note,
		Group:    raw.Group,
	}
	return nil
}

// UnmarshalJSON accepts either an instruction object or its bare text.
func (i *Instruction) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*i = Instruction{Text: text}
		return nil
	}

	var raw struct {
		Text  string `json:"text"`
		Group string `json:"group"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Instruction{Text: raw.Text, Group: raw.Group}
	return nil
}

// quantity decodes a JSON number or a quantity string such as "1 1/2".
type quantity float64

func (q *quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*q = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*q = 0
			return nil
		}
		v, err := measure.Parse(s)
		if err != nil {
			return err
		}
		*q = quantity(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*q = quantity(f)
	return nil
}
