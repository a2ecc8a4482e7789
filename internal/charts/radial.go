package charts

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"ledgerviz/internal/axis"
	"ledgerviz/internal/layout"
	"ledgerviz/internal/models"
	"ledgerviz/internal/scene"
)

const (
	radialTitle       = "Skills"
	radialPlaceholder = "No skill data available"
	labelOffset       = 14.0
	edgePadding       = 4.0
	// approximate advance of one glyph relative to the font size
	glyphWidth = 0.6
)

// spokeAngle returns the angle of spoke i of n; spoke 0 points straight up
func spokeAngle(i, n int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
}

func polar(cx, cy, r, angle float64) scene.Point {
	return scene.Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
}

// RenderRadial draws the radar chart for an ordered category vector
func (g *Generator) RenderRadial(id string, categories models.CategoryVector, geo layout.Geometry) (scene.Document, error) {
	if err := checkGeometry(geo); err != nil {
		return scene.Document{}, err
	}
	if len(categories) == 0 {
		g.log.Debug("rendering placeholder", map[string]interface{}{"chart": id, "reason": ErrEmptyInput.Error()})
		return placeholder(id, radialTitle, radialPlaceholder, geo), nil
	}

	categories = finiteCategories(categories)
	n := len(categories)
	values := categories.Values()
	ceiling := axis.NiceCeiling(math.Max(floats.Max(values), 0))

	cx, cy := geo.Plot.CenterX(), geo.Plot.CenterY()
	radius := math.Min(geo.Plot.Width(), geo.Plot.Height()) / 2
	levels := g.opts.RadialLevels
	pal := g.opts.Palette

	doc := scene.Document{
		ID:         id,
		Title:      radialTitle,
		Width:      geo.Width,
		Height:     geo.Height,
		FontFamily: "sans-serif",
	}

	rings := scene.Group("chart-rings")
	for l := 1; l <= levels; l++ {
		r := radius * float64(l) / float64(levels)
		style := scene.Style{Fill: "none", Stroke: pal.Grid, StrokeWidth: 1}
		if n < 3 {
			rings.Children = append(rings.Children, scene.Circle(cx, cy, r, style))
		} else {
			ring := make([]scene.Point, n)
			for i := range ring {
				ring[i] = polar(cx, cy, r, spokeAngle(i, n))
			}
			rings.Children = append(rings.Children, scene.PathElement(scene.Polygon(ring), style))
		}
		rings.Children = append(rings.Children, scene.Text(cx+edgePadding, cy-r, axis.TickLabel(ceiling*float64(l)/float64(levels)), scene.Style{
			Fill:     pal.Label,
			FontSize: geo.FontSize - 2,
			Anchor:   "start",
		}))
	}

	spokes := scene.Group("chart-spokes")
	vertices := make([]scene.Point, n)
	for i, c := range categories {
		angle := spokeAngle(i, n)
		end := polar(cx, cy, radius, angle)
		spokes.Children = append(spokes.Children, scene.Line(cx, cy, end.X, end.Y, scene.Style{Stroke: pal.Grid, StrokeWidth: 1}))

		r := math.Max(c.Value, 0) / ceiling * radius
		vertices[i] = polar(cx, cy, r, angle)
	}

	shape := scene.PathElement(scene.Polygon(vertices), scene.Style{
		Fill:        pal.RadarFill,
		Stroke:      pal.RadarStroke,
		StrokeWidth: 2,
	}).WithClass("chart-radar")

	markers := scene.Group("chart-points")
	labels := scene.Group("chart-spoke-labels")
	for i, c := range categories {
		markers.Children = append(markers.Children, scene.Marker(
			fmt.Sprintf("%s-vertex-%d", id, i),
			vertices[i].X, vertices[i].Y, g.opts.MarkerRadius-1,
			scene.Style{Fill: pal.Point, Stroke: pal.PointStroke, StrokeWidth: 1},
			scene.Attr{Key: DataIndex, Value: strconv.Itoa(i)},
			scene.Attr{Key: DataLabel, Value: c.Label},
			scene.Attr{Key: DataValue, Value: formatValue(c.Value)},
		))
		labels.Children = append(labels.Children, g.spokeLabel(c.Label, cx, cy, radius, spokeAngle(i, n), geo))
	}

	doc.Elements = []scene.Element{rings, spokes, shape, markers, labels}
	if g.opts.Tooltips {
		doc.Tooltip = &scene.Tooltip{ID: id + "-tooltip"}
	}

	g.log.Debug("rendered radial", map[string]interface{}{
		"chart":      id,
		"categories": n,
		"ceiling":    ceiling,
	})
	return doc, nil
}

// spokeLabel places a category label past the end of its spoke, kept inside the drawing
func (g *Generator) spokeLabel(label string, cx, cy, radius, angle float64, geo layout.Geometry) scene.Element {
	pos := polar(cx, cy, radius+labelOffset, angle)
	cos, sin := math.Cos(angle), math.Sin(angle)

	anchor := "middle"
	switch {
	case cos > 0.1:
		anchor = "start"
	case cos < -0.1:
		anchor = "end"
	}

	y := pos.Y + geo.FontSize/3
	switch {
	case sin < -0.1:
		y = pos.Y - edgePadding
	case sin > 0.1:
		y = pos.Y + geo.FontSize
	}

	x, anchor := clampLabel(pos.X, anchor, textWidth(label, geo.FontSize), geo.Width)
	return scene.Text(x, y, label, scene.Style{
		Fill:     g.opts.Palette.Text,
		FontSize: geo.FontSize,
		Anchor:   anchor,
	})
}

// clampLabel keeps a label of width w inside [edgePadding, width-edgePadding],
// flipping the anchor inwards when the label would overflow an edge
func clampLabel(x float64, anchor string, w, width float64) (float64, string) {
	lo, hi := edgePadding, width-edgePadding
	switch anchor {
	case "start":
		if x+w > hi {
			x, anchor = hi, "end"
		}
	case "end":
		if x-w < lo {
			x, anchor = lo, "start"
		}
	default:
		if x-w/2 < lo {
			x = lo + w/2
		}
		if x+w/2 > hi {
			x = hi - w/2
		}
	}
	return math.Min(math.Max(x, lo), hi), anchor
}

// finiteCategories copies cv with non-finite values replaced by 0
func finiteCategories(cv models.CategoryVector) models.CategoryVector {
	out := make(models.CategoryVector, len(cv))
	for i, c := range cv {
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			c.Value = 0
		}
		out[i] = c
	}
	return out
}

func textWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * glyphWidth
}
