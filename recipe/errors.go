package recipe

import "errors"

// ErrInvalidRecipe is returned by every check of the validation gate and by
// decoding failures. The more specific errors below are wrapped alongside it.
var ErrInvalidRecipe = errors.New("invalid recipe")

var (
	ErrMissingTitle     = errors.New("title is empty")
	ErrNoIngredients    = errors.New("no ingredients")
	ErrNoInstructions   = errors.New("no instructions")
	ErrEmptyIngredient  = errors.New("ingredient has no name")
	ErrEmptyInstruction = errors.New("instruction has no text")
	ErrUnknownField     = errors.New("unknown field")
)
