package charts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ledgerviz/internal/layout"
	"ledgerviz/internal/scene"
)

const (
	dualBarTitle = "Audit Ratio"
	barHeight    = 20.0
	barGap       = 50.0
)

// RatioGrade is the graded band a done/received ratio falls in
type RatioGrade struct {
	Label string
	Color string
}

// gradeBands partition [0, inf); each upper bound is inclusive
var gradeBands = []struct {
	upper float64
	grade RatioGrade
}{
	{0.2, RatioGrade{Label: "Very Low", Color: "#ef4444"}},
	{0.5, RatioGrade{Label: "Low", Color: "#f59e0b"}},
	{0.7, RatioGrade{Label: "Average", Color: "#22c55e"}},
	{0.9, RatioGrade{Label: "Good", Color: "#10b981"}},
}

var excellentGrade = RatioGrade{Label: "Excellent", Color: "#059669"}

// Grade classifies a ratio; band boundaries belong to the lower band
func Grade(ratio float64) RatioGrade {
	if math.IsNaN(ratio) {
		return gradeBands[0].grade
	}
	for _, b := range gradeBands {
		if ratio <= b.upper {
			return b.grade
		}
	}
	return excellentGrade
}

// Ratio returns done/received, or 0 when nothing was received
func Ratio(received, done float64) float64 {
	if received <= 0 {
		return 0
	}
	return done / received
}

// Coerce converts loosely typed input into a finite number, defaulting to 0
func Coerce(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// RenderDualBar draws the received and done bars with the graded ratio line
func (g *Generator) RenderDualBar(id string, received, done interface{}, geo layout.Geometry) (scene.Document, error) {
	if err := checkGeometry(geo); err != nil {
		return scene.Document{}, err
	}

	recv := Coerce(received)
	dn := Coerce(done)

	maxValue := math.Max(math.Max(recv, dn), 1)
	available := geo.Width - geo.Margins.Left - geo.Margins.Right
	length := func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return v / maxValue * available
	}

	ratio := Ratio(recv, dn)
	grade := Grade(ratio)
	pal := g.opts.Palette

	offsetY := (geo.Height-(barHeight*2+barGap))/2 + barHeight/2
	startX := geo.Margins.Left
	font := geo.FontSize
	if font <= 0 {
		font = 14
	}

	bar := func(class, label string, value, y float64, color string) scene.Element {
		l := length(value)
		return scene.Group(class,
			scene.Text(0, y, label, scene.Style{Fill: pal.Text, FontSize: font, Anchor: "start", Baseline: "middle"}),
			scene.Line(startX, y, startX+l, y, scene.Style{Stroke: color, StrokeWidth: barHeight, LineCap: "round"}),
			scene.Text(startX+l/2, y, scene.Num(value), scene.Style{Fill: pal.Text, FontSize: font, Anchor: "middle", Baseline: "middle"}),
		)
	}

	doc := scene.Document{
		ID:         id,
		Title:      dualBarTitle,
		Width:      geo.Width,
		Height:     geo.Height,
		FontFamily: "sans-serif",
		Elements: []scene.Element{
			bar("chart-bar-received", "Received", recv, offsetY, pal.Received),
			bar("chart-bar-done", "Done", dn, offsetY+barGap, pal.Done),
			scene.Text(geo.Width/2, offsetY+barGap+45, fmt.Sprintf("Ratio: %.1f %s", ratio, grade.Label), scene.Style{
				Fill:       grade.Color,
				FontSize:   font + 2,
				FontWeight: "bold",
				Anchor:     "middle",
			}).WithClass("chart-ratio"),
		},
	}

	g.log.Debug("rendered dual bar", map[string]interface{}{
		"chart":    id,
		"received": recv,
		"done":     dn,
		"ratio":    ratio,
		"grade":    grade.Label,
	})
	return doc, nil
}
