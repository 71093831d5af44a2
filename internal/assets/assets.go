package assets

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultTheme names the built-in template and stylesheet pair.
const DefaultTheme = "recipe"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidAssetName rejects names carrying separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
	ErrPathTraversal    = errors.New("path traversal detected")
)

// AssetLoader loads stylesheets and LaTeX templates by bare name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Theme is what the renderers need to lay out a recipe: the LaTeX template
// for the XeLaTeX path and the stylesheet for HTML and Chrome.
type Theme struct {
	Name       string
	Template   string
	Stylesheet string
}

// LoadTheme loads the template and stylesheet sharing name. With a resolver
// either half may come from the custom directory and the other from the
// embedded set.
func LoadTheme(l AssetLoader, name string) (Theme, error) {
	tmpl, err := l.LoadTemplate(name)
	if err != nil {
		return Theme{}, fmt.Errorf("loading template: %w", err)
	}
	css, err := l.LoadStyle(name)
	if err != nil {
		return Theme{}, fmt.Errorf("loading style: %w", err)
	}
	return Theme{Name: name, Template: tmpl, Stylesheet: css}, nil
}

// ValidateAssetName checks that name is usable as a bare file stem.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
