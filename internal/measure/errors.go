package measure

import "errors"

// ErrInvalidQuantity indicates text that is not a recognizable quantity.
var ErrInvalidQuantity = errors.New("invalid quantity")
