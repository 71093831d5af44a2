package recipe_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-recipefmt/recipe"
)

// ---------------------------------------------------------------------------
// TestDecode - Lenient exchange decoding
// ---------------------------------------------------------------------------

func TestDecode_MixedShapes(t *testing.T) {
	t.Parallel()

	data := []byte(`{
  "title": "Layer Cake",
  "ingredients": [
    {"group": "Cake", "items": ["2 c flour", {"quantity": "1 1/2", "unit": "tsp", "name": "baking powder"}]},
    {"group": "Frosting", "items": ["1 c butter, softened"]},
    "salt, to taste"
  ],
  "instructions": [
    {"group": "Cake", "items": ["Bake the layers."]},
    {"text": "Whip the butter.", "group": "Frosting"},
    "Serve."
  ],
  "tips": ["Chill before slicing."]
}`)

	got, err := recipe.Decode(data)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}

	want := &recipe.Recipe{
		Title: "Layer Cake",
		Ingredients: []recipe.Ingredient{
			{Quantity: 2, Unit: "c", Name: "flour", Group: "Cake"},
			{Quantity: 1.5, Unit: "tsp", Name: "baking powder", Group: "Cake"},
			{Quantity: 1, Unit: "c", Name: "butter", Note: "softened", Group: "Frosting"},
			{Name: "salt", Note: "to taste"},
		},
		Instructions: []recipe.Instruction{
			{Text: "Bake the layers.", Group: "Cake"},
			{Text: "Whip the butter.", Group: "Frosting"},
			{Text: "Serve."},
		},
		Tips: []string{"Chill before slicing."},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestDecode_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	orig := validRecipe()
	orig.Description = "Fluffy & light <really>."
	orig.Ingredients[0].Group = "Batter"
	orig.Source = "https://example.com/pancakes"

	data, err := recipe.Encode(orig)
	if err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "<really>") {
		t.Errorf("Encode() escaped HTML characters: %s", data)
	}

	got, err := recipe.DecodeStrict(data)
	if err != nil {
		t.Fatalf("DecodeStrict() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("DecodeStrict(Encode()) =\n%+v\nwant\n%+v", got, orig)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		strict  bool
		wantErr error
	}{
		{name: "empty", data: "  ", wantErr: recipe.ErrInvalidRecipe},
		{name: "not json", data: "Here is your recipe!", wantErr: recipe.ErrInvalidRecipe},
		{name: "trailing data", data: `{"title": "A"} {"title": "B"}`, wantErr: recipe.ErrInvalidRecipe},
		{name: "bad quantity", data: `{"title": "A", "ingredients": [{"quantity": "lots", "name": "x"}]}`, wantErr: recipe.ErrInvalidRecipe},
		{name: "unknown field strict", data: `{"title": "A", "servings": 4}`, strict: true, wantErr: recipe.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decode := recipe.Decode
			if tt.strict {
				decode = recipe.DecodeStrict
			}
			_, err := decode([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("decode error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_UnknownFieldLenient(t *testing.T) {
	t.Parallel()

	got, err := recipe.Decode([]byte(`{"title": "A", "servings": 4}`))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if got.Title != "A" {
		t.Errorf("Title = %q, want %q", got.Title, "A")
	}
}
