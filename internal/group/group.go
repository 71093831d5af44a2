// Package group assigns section labels ("Cake", "Frosting") to a recipe's
// ingredients and instructions.
//
// Labels come either from hints already carried by the recipe or from an
// Assigner collaborator. Grouping never fails a run: any problem is logged as
// a warning and the recipe continues ungrouped.
package group

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-recipefmt/recipe"
)

var (
	// ErrMalformedAssignment indicates an assignment whose lists do not line
	// up with the recipe.
	ErrMalformedAssignment = errors.New("malformed group assignment")

	// ErrNoAssigner indicates grouping was requested without hints and
	// without a collaborator to ask.
	ErrNoAssigner = errors.New("no group assigner configured")
)

// Assignment holds one label per ingredient and per instruction, by index.
// A nil or blank label leaves the item ungrouped.
type Assignment struct {
	Ingredients  []*string `json:"ingredients"`
	Instructions []*string `json:"instructions"`
}

// Assigner proposes group labels for a recipe. The directive is an optional
// free-text hint from the user ("separate the sauce").
type Assigner interface {
	Assign(ctx context.Context, r *recipe.Recipe, directive string) (*Assignment, error)
}

// Grouper applies group labels to recipes.
type Grouper struct {
	assigner Assigner
	logger   *zap.Logger
}

// New creates a Grouper. Both arguments may be nil.
func New(assigner Assigner, logger *zap.Logger) *Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grouper{assigner: assigner, logger: logger}
}

// Group labels r in place and returns it. Existing labels are used as the
// assignment and the collaborator is not called; otherwise the Assigner is
// asked. On any failure the recipe is returned with every label cleared.
func (g *Grouper) Group(ctx context.Context, r *recipe.Recipe, directive string) *recipe.Recipe {
	a, err := g.assignment(ctx, r, directive)
	if err != nil {
		g.logger.Warn("grouping failed, continuing ungrouped", zap.Error(err))
		r.ClearGroups()
		return r
	}

	demoted, err := Apply(r, a)
	if err != nil {
		g.logger.Warn("grouping failed, continuing ungrouped", zap.Error(err))
		r.ClearGroups()
		return r
	}
	for _, label := range demoted {
		g.logger.Warn("ingredient group has no matching instructions, moved to ungrouped",
			zap.String("group", label))
	}
	return r
}

func (g *Grouper) assignment(ctx context.Context, r *recipe.Recipe, directive string) (*Assignment, error) {
	if r.Grouped() {
		g.logger.Debug("using group labels already present in recipe")
		return FromRecipe(r), nil
	}
	if g.assigner == nil {
		return nil, ErrNoAssigner
	}
	a, err := g.assigner.Assign(ctx, r, strings.TrimSpace(directive))
	if err != nil {
		return nil, fmt.Errorf("assigning groups: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedAssignment)
	}
	return a, nil
}

// FromRecipe builds an assignment from the labels r already carries.
func FromRecipe(r *recipe.Recipe) *Assignment {
	a := &Assignment{
		Ingredients:  make([]*string, len(r.Ingredients)),
		Instructions: make([]*string, len(r.Instructions)),
	}
	for i, ing := range r.Ingredients {
		label := ing.Group
		a.Ingredients[i] = &label
	}
	for i, ins := range r.Instructions {
		label := ins.Group
		a.Instructions[i] = &label
	}
	return a
}

// Apply writes the labels of a onto r. Labels are trimmed and blank labels
// mean ungrouped. Ingredient labels adopt the spelling of a matching
// instruction label (case-insensitive). When instructions are grouped, an
// ingredient label with no matching instruction label is cleared; those
// labels are returned so the caller can report them. On error r is not
// modified.
func Apply(r *recipe.Recipe, a *Assignment) ([]string, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil assignment", ErrMalformedAssignment)
	}
	if len(a.Ingredients) != len(r.Ingredients) {
		return nil, fmt.Errorf("%w: %d ingredient labels for %d ingredients",
			ErrMalformedAssignment, len(a.Ingredients), len(r.Ingredients))
	}
	if len(a.Instructions) != len(r.Instructions) {
		return nil, fmt.Errorf("%w: %d instruction labels for %d instructions",
			ErrMalformedAssignment, len(a.Instructions), len(r.Instructions))
	}

	instructionLabels := make([]string, len(a.Instructions))
	canonical := make(map[string]string)
	for i, l := range a.Instructions {
		label := clean(l)
		instructionLabels[i] = label
		if label == "" {
			continue
		}
		if _, ok := canonical[strings.ToLower(label)]; !ok {
			canonical[strings.ToLower(label)] = label
		}
	}
	instructionsGrouped := len(canonical) > 0

	ingredientLabels := make([]string, len(a.Ingredients))
	var demoted []string
	seenDemoted := make(map[string]bool)
	for i, l := range a.Ingredients {
		label := clean(l)
		if label == "" {
			continue
		}
		if c, ok := canonical[strings.ToLower(label)]; ok {
			ingredientLabels[i] = c
			continue
		}
		if instructionsGrouped {
			if !seenDemoted[label] {
				seenDemoted[label] = true
				demoted = append(demoted, label)
			}
			continue
		}
		ingredientLabels[i] = label
	}

	for i := range r.Ingredients {
		r.Ingredients[i].Group = ingredientLabels[i]
	}
	for i := range r.Instructions {
		r.Instructions[i].Group = instructionLabels[i]
	}
	return demoted, nil
}

func clean(label *string) string {
	if label == nil {
		return ""
	}
	return strings.Join(strings.Fields(*label), " ")
}
