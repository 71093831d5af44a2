package recipefmt

import (
	"errors"

	"github.com/alnah/go-recipefmt/internal/fetch"
	"github.com/alnah/go-recipefmt/internal/revise"
	"github.com/alnah/go-recipefmt/internal/typeset"
	"github.com/alnah/go-recipefmt/recipe"
)

// Sentinel errors for library operations.
var (
	// ErrRetrieval indicates the source page or file could not be read.
	ErrRetrieval = fetch.ErrRetrieval

	// ErrExtraction indicates the extraction collaborator failed.
	ErrExtraction = errors.New("recipe extraction failed")

	// ErrSchemaValidation indicates a collaborator returned a recipe that
	// failed the validation gate.
	ErrSchemaValidation = errors.New("recipe failed schema validation")

	// ErrUnsupportedFormat indicates an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrRendering indicates a renderer or typesetting engine failed.
	ErrRendering = errors.New("rendering failed")

	// ErrInvalidScale indicates a non-positive or non-finite scale factor.
	ErrInvalidScale = errors.New("scale factor must be a positive number")

	// ErrNoCollaborator indicates a stage needs a collaborator that was not
	// configured.
	ErrNoCollaborator = errors.New("no collaborator configured")

	// ErrInvalidAssetPath indicates the custom asset directory is unusable.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrEmptyInput indicates neither text, source nor recipe was given.
	ErrEmptyInput = errors.New("no recipe input")
)

// Errors re-exported from internal packages.
var (
	ErrEmptyDirective = revise.ErrEmptyDirective
	ErrRevision       = revise.ErrRevisionFailed
	ErrInvalidRecipe  = recipe.ErrInvalidRecipe
	ErrEngineFailed   = typeset.ErrEngineFailed
	ErrEngineNotFound = typeset.ErrEngineNotFound
)

// EngineError reports a failed typesetting run with its diagnostics.
type EngineError = typeset.EngineError
