// Package assets provides the LaTeX template and CSS stylesheet used to
// render recipes. Assets can be loaded from embedded files or from a custom
// directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled into the binary
//	    ├── FilesystemLoader  - assets from a custom directory
//	    └── AssetResolver     - custom first, embedded as fallback
//
// The formatter loads a Theme through an AssetResolver, so a user can
// override only the template, or only the stylesheet, and keep the built-in
// version of the other.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # HTML and Chrome PDF stylesheet
//	└── templates/
//	    └── {name}.tex      # LaTeX template (text/template, << >> delimiters)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets

// kind describes one family of assets: where it lives and which error
// reports a missing entry.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".tex", notFound: ErrTemplateNotFound}
)
