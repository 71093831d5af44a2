package recipe_test

import (
	"errors"
	"testing"

	"github.com/alnah/go-recipefmt/recipe"
)

func validRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		Title: "Pancakes",
		Ingredients: []recipe.Ingredient{
			{Quantity: 1.5, Unit: "c", Name: "flour"},
			{Quantity: 2, Name: "eggs"},
		},
		Instructions: []recipe.Instruction{
			{Text: "Mix everything."},
			{Text: "Cook on a hot griddle."},
		},
	}
}

// ---------------------------------------------------------------------------
// TestRecipe_Validate - Validation gate
// ---------------------------------------------------------------------------

func TestRecipe_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(r *recipe.Recipe)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(*recipe.Recipe) {},
			wantErr: nil,
		},
		{
			name:    "blank title",
			mutate:  func(r *recipe.Recipe) { r.Title = "   " },
			wantErr: recipe.ErrMissingTitle,
		},
		{
			name:    "no ingredients",
			mutate:  func(r *recipe.Recipe) { r.Ingredients = nil },
			wantErr: recipe.ErrNoIngredients,
		},
		{
			name:    "no instructions",
			mutate:  func(r *recipe.Recipe) { r.Instructions = []recipe.Instruction{} },
			wantErr: recipe.ErrNoInstructions,
		},
		{
			name:    "ingredient without name",
			mutate:  func(r *recipe.Recipe) { r.Ingredients[1].Name = "" },
			wantErr: recipe.ErrEmptyIngredient,
		},
		{
			name:    "instruction without text",
			mutate:  func(r *recipe.Recipe) { r.Instructions[0].Text = "\n" },
			wantErr: recipe.ErrEmptyInstruction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validRecipe()
			tt.mutate(r)
			err := r.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, recipe.ErrInvalidRecipe) {
				t.Errorf("Validate() = %v, want wrapping ErrInvalidRecipe", err)
			}
		})
	}
}

func TestRecipe_Validate_Nil(t *testing.T) {
	t.Parallel()

	var r *recipe.Recipe
	if err := r.Validate(); !errors.Is(err, recipe.ErrInvalidRecipe) {
		t.Errorf("Validate() on nil = %v, want ErrInvalidRecipe", err)
	}
}

// ---------------------------------------------------------------------------
// TestRecipe_Clone - Deep copy
// ---------------------------------------------------------------------------

func TestRecipe_Clone(t *testing.T) {
	t.Parallel()

	orig := validRecipe()
	orig.Tips = []string{"Rest the batter."}

	c := orig.Clone()
	c.Ingredients[0].Name = "rye flour"
	c.Instructions[0].Text = "Whisk."
	c.Tips[0] = "Changed."

	if orig.Ingredients[0].Name != "flour" {
		t.Errorf("clone shares ingredients with original")
	}
	if orig.Instructions[0].Text != "Mix everything." {
		t.Errorf("clone shares instructions with original")
	}
	if orig.Tips[0] != "Rest the batter." {
		t.Errorf("clone shares tips with original")
	}
}

// ---------------------------------------------------------------------------
// TestRecipe_Grouped - Group label detection
// ---------------------------------------------------------------------------

func TestRecipe_Grouped(t *testing.T) {
	t.Parallel()

	r := validRecipe()
	if r.Grouped() {
		t.Fatal("Grouped() = true for unlabeled recipe")
	}

	r.Instructions[1].Group = "Griddle"
	if !r.Grouped() {
		t.Fatal("Grouped() = false with an instruction label")
	}

	r.ClearGroups()
	if r.Grouped() {
		t.Error("Grouped() = true after ClearGroups")
	}
}
