package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

// pageInches maps page sizes to portrait width and height in inches.
var pageInches = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := pageInches[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// orDefault returns p, or the defaults when p is nil.
func (p *PageSettings) orDefault() *PageSettings {
	if p == nil {
		return DefaultPageSettings()
	}
	return p
}

// Dimensions returns the paper width and height in inches, orientation
// applied. Unknown sizes fall back to letter.
func (p *PageSettings) Dimensions() (width, height float64) {
	p = p.orDefault()
	dims, ok := pageInches[strings.ToLower(p.Size)]
	if !ok {
		dims = pageInches[PageSizeLetter]
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// MarginInches returns the page margin, or the default for nil settings.
func (p *PageSettings) MarginInches() float64 {
	return p.orDefault().Margin
}

// Geometry returns the option list for the LaTeX geometry package, e.g.
// "a4paper, landscape, margin=0.75in".
func (p *PageSettings) Geometry() string {
	p = p.orDefault()
	size := strings.ToLower(p.Size)
	if _, ok := pageInches[size]; !ok {
		size = PageSizeLetter
	}

	opts := []string{size + "paper"}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		opts = append(opts, OrientationLandscape)
	}
	opts = append(opts, "margin="+strconv.FormatFloat(p.Margin, 'f', -1, 64)+"in")
	return strings.Join(opts, ", ")
}
