package charts

import (
	"ledgerviz/internal/layout"
	"ledgerviz/internal/models"
)

// Kind identifies one of the supported chart types
type Kind string

const (
	KindTimeSeries Kind = "timeseries"
	KindDualBar    Kind = "dualbar"
	KindRadial     Kind = "radial"
)

// Palette holds the literal colours used by the renderers
type Palette struct {
	Axis        string
	Grid        string
	Label       string
	Text        string
	Line        string
	Glow        string
	Point       string
	PointStroke string
	AreaFill    string
	Received    string
	Done        string
	RadarFill   string
	RadarStroke string
}

// DefaultPalette is tuned for a dark page background
func DefaultPalette() Palette {
	return Palette{
		Axis:        "#8b5cf6",
		Grid:        "rgba(255,255,255,0.1)",
		Label:       "rgba(255,255,255,0.7)",
		Text:        "#ffffff",
		Line:        "#40cad9",
		Glow:        "#40cad9",
		Point:       "#63ccec",
		PointStroke: "white",
		AreaFill:    "#2563eb",
		Received:    "#6366f1",
		Done:        "#4ade80",
		RadarFill:   "rgba(64,202,217,0.35)",
		RadarStroke: "#40cad9",
	}
}

// Options parameterise the renderers
type Options struct {
	TickCount int
	// LabelCount overrides the layout's x-axis label density when positive
	LabelCount       int
	Tooltips         bool
	ResponsiveHeight bool
	DateFormat       string
	MarkerRadius     float64
	RadialLevels     int
	CategoryPrefix   string
	Palette          Palette
	// Rules replaces the default layout rules for a chart kind
	Rules map[Kind]layout.Rules
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		TickCount:      5,
		Tooltips:       true,
		DateFormat:     "2006-01-02",
		MarkerRadius:   5,
		RadialLevels:   5,
		CategoryPrefix: models.DefaultCategoryPrefix,
		Palette:        DefaultPalette(),
	}
}

// withDefaults fills zero fields from DefaultOptions
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TickCount <= 0 {
		o.TickCount = d.TickCount
	}
	if o.DateFormat == "" {
		o.DateFormat = d.DateFormat
	}
	if o.MarkerRadius <= 0 {
		o.MarkerRadius = d.MarkerRadius
	}
	if o.RadialLevels <= 0 {
		o.RadialLevels = d.RadialLevels
	}
	if o.CategoryPrefix == "" {
		o.CategoryPrefix = d.CategoryPrefix
	}
	if o.Palette == (Palette{}) {
		o.Palette = d.Palette
	}
	return o
}

// RulesFor returns the layout rules for a chart kind
func (o Options) RulesFor(kind Kind) layout.Rules {
	if r, ok := o.Rules[kind]; ok {
		return r
	}
	switch kind {
	case KindDualBar:
		return layout.DualBarRules()
	case KindRadial:
		return layout.RadialRules()
	default:
		if o.ResponsiveHeight {
			return layout.ResponsiveTimeSeriesRules()
		}
		return layout.TimeSeriesRules()
	}
}
