// Package layout derives chart geometry from the measured container size.
package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidRules is returned by Validate for inconsistent rule sets
var ErrInvalidRules = errors.New("invalid layout rules")

// Margins is the space reserved around the plot for axis labels
type Margins struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// Uniform returns margins of the same size on every side
func Uniform(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns the combined left and right margin
func (m Margins) Horizontal() float64 { return m.Left + m.Right }

// Vertical returns the combined top and bottom margin
func (m Margins) Vertical() float64 { return m.Top + m.Bottom }

// Bounds is the plot rectangle in pixel coordinates
type Bounds struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the bounds
func (b Bounds) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the bounds
func (b Bounds) Height() float64 { return b.Y1 - b.Y0 }

// CenterX returns the horizontal centre of the bounds
func (b Bounds) CenterX() float64 { return b.X0 + b.Width()/2 }

// CenterY returns the vertical centre of the bounds
func (b Bounds) CenterY() float64 { return b.Y0 + b.Height()/2 }

// Breakpoint selects label density and font size up to a width
type Breakpoint struct {
	MaxWidth   float64 `toml:"max_width"`
	LabelCount int     `toml:"label_count"`
	FontSize   float64 `toml:"font_size"`
}

// Rules describes how a chart responds to its container size
type Rules struct {
	MinWidth float64 `toml:"min_width"`
	MaxWidth float64 `toml:"max_width"`

	// Height is used unless ResponsiveHeight is set
	Height           float64 `toml:"height"`
	ResponsiveHeight bool    `toml:"responsive_height"`
	HeightRatio      float64 `toml:"height_ratio"`
	MinHeight        float64 `toml:"min_height"`
	MaxHeight        float64 `toml:"max_height"`
	// FitHeight caps the height by the container's measured height
	FitHeight bool `toml:"fit_height"`

	Margins     Margins      `toml:"margins"`
	LabelCount  int          `toml:"label_count"`
	FontSize    float64      `toml:"font_size"`
	Breakpoints []Breakpoint `toml:"breakpoints"`
}

// Geometry is the computed size of one render pass
type Geometry struct {
	Width      float64
	Height     float64
	Margins    Margins
	Plot       Bounds
	LabelCount int
	FontSize   float64
}

// Validate checks the rules for inverted or negative bounds
func (r Rules) Validate() error {
	switch {
	case r.MinWidth < 0 || r.MaxWidth <= 0:
		return fmt.Errorf("%w: width bounds must be positive", ErrInvalidRules)
	case r.MinWidth > r.MaxWidth:
		return fmt.Errorf("%w: min width %.0f exceeds max width %.0f", ErrInvalidRules, r.MinWidth, r.MaxWidth)
	case r.ResponsiveHeight && r.HeightRatio <= 0:
		return fmt.Errorf("%w: responsive height needs a positive ratio", ErrInvalidRules)
	case r.MaxHeight > 0 && r.MinHeight > r.MaxHeight:
		return fmt.Errorf("%w: min height %.0f exceeds max height %.0f", ErrInvalidRules, r.MinHeight, r.MaxHeight)
	case !r.ResponsiveHeight && r.Height <= 0:
		return fmt.Errorf("%w: fixed height must be positive", ErrInvalidRules)
	case r.Margins.Horizontal() >= r.MinWidth && r.MinWidth > 0:
		return fmt.Errorf("%w: margins leave no room for the plot", ErrInvalidRules)
	}
	return nil
}

// Compute returns the geometry for a container of the given measured size.
// It is pure: equal inputs always give equal geometry.
func (r Rules) Compute(containerWidth, containerHeight float64) Geometry {
	width := r.MaxWidth
	if containerWidth > 0 && !math.IsInf(containerWidth, 0) {
		width = clamp(containerWidth, r.MinWidth, r.MaxWidth)
	}

	height := r.Height
	if r.ResponsiveHeight {
		height = clamp(width*r.HeightRatio, r.MinHeight, r.maxHeight())
	}
	if r.FitHeight && containerHeight > 0 && containerHeight < height {
		height = math.Max(containerHeight, r.MinHeight)
	}

	labels, font := r.density(width)

	return Geometry{
		Width:   width,
		Height:  height,
		Margins: r.Margins,
		Plot: Bounds{
			X0: r.Margins.Left,
			Y0: r.Margins.Top,
			X1: width - r.Margins.Right,
			Y1: height - r.Margins.Bottom,
		},
		LabelCount: labels,
		FontSize:   font,
	}
}

func (r Rules) maxHeight() float64 {
	if r.MaxHeight > 0 {
		return r.MaxHeight
	}
	return math.Inf(1)
}

// density picks the label count and font size for the resulting width
func (r Rules) density(width float64) (int, float64) {
	bps := make([]Breakpoint, len(r.Breakpoints))
	copy(bps, r.Breakpoints)
	sort.SliceStable(bps, func(i, j int) bool { return bps[i].MaxWidth < bps[j].MaxWidth })

	for _, bp := range bps {
		if width <= bp.MaxWidth {
			return bp.LabelCount, bp.FontSize
		}
	}
	return r.LabelCount, r.FontSize
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
