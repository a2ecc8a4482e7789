package charts

import (
	"fmt"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"

	"ledgerviz/internal/axis"
	"ledgerviz/internal/layout"
	"ledgerviz/internal/models"
	"ledgerviz/internal/scale"
	"ledgerviz/internal/scene"
)

const (
	timeSeriesTitle       = "XP Progress"
	timeSeriesPlaceholder = "No XP data available"
)

// Marker data keys for time-series points
const (
	DataIndex  = "index"
	DataDate   = "date"
	DataAmount = "amount"
	DataTotal  = "total"
	DataLabel  = "label"
	DataValue  = "value"
)

// RenderTimeSeries builds the cumulative line/area chart for records.
// Empty input produces a placeholder document rather than an error.
func (g *Generator) RenderTimeSeries(id string, records []models.Record, geo layout.Geometry) (scene.Document, error) {
	if err := checkGeometry(geo); err != nil {
		return scene.Document{}, err
	}

	points, err := g.timeSeriesPoints(records)
	if err != nil {
		g.log.Debug("rendering placeholder", map[string]interface{}{"chart": id, "reason": err.Error()})
		return placeholder(id, timeSeriesTitle, timeSeriesPlaceholder, geo), nil
	}

	totals := models.CumulativeTotals(points)
	first, last := points[0].Timestamp, points[len(points)-1].Timestamp
	maxTotal := floats.Max(totals)
	minTotal := floats.Min(totals)

	nice := axis.NewNiceRange(maxTotal, g.opts.TickCount)
	yMin := 0.0
	if minTotal < 0 {
		yMin = minTotal
	}

	plot := geo.Plot
	xs := scale.NewTime(first, last, plot.X0, plot.X1)
	ys := scale.NewVertical(yMin, nice.PaddedMax, plot.Y0, plot.Y1)

	pal := g.opts.Palette
	gradientID := id + "-gradient"
	glowID := id + "-glow"

	doc := scene.Document{
		ID:         id,
		Title:      timeSeriesTitle,
		Width:      geo.Width,
		Height:     geo.Height,
		FontFamily: "sans-serif",
		Gradients: []scene.Gradient{{
			ID: gradientID, X1: "0%", Y1: "0%", X2: "0%", Y2: "100%",
			Stops: []scene.Stop{
				{Offset: "0%", Color: pal.AreaFill, Opacity: 0.3},
				{Offset: "100%", Color: pal.AreaFill, Opacity: 0.05},
			},
		}},
		Shadows: []scene.Shadow{{ID: glowID, Blur: 6, Color: pal.Glow}},
	}

	doc.Elements = append(doc.Elements,
		g.timeSeriesAxes(plot),
		g.gridlines(nice, ys, plot, geo.FontSize),
		g.dateLabels(xs, plot, g.labelCount(geo), geo.FontSize),
	)

	projected := make([]scene.Point, len(points))
	for i, p := range points {
		projected[i] = scene.Point{X: xs.Map(p.Timestamp), Y: ys.Map(p.CumulativeTotal)}
	}

	doc.Elements = append(doc.Elements,
		scene.PathElement(scene.Area(projected, ys.Map(0)), scene.Style{
			Fill:    "url(#" + gradientID + ")",
			Opacity: 0.7,
		}).WithClass("chart-area"),
		scene.PathElement(scene.Polyline(projected), scene.Style{
			Fill:        "none",
			Stroke:      pal.Line,
			StrokeWidth: 2,
			Filter:      "url(#" + glowID + ")",
		}).WithClass("chart-line"),
		g.pointMarkers(id, points, projected),
	)

	if g.opts.Tooltips {
		doc.Tooltip = &scene.Tooltip{ID: id + "-tooltip"}
	}

	g.log.Debug("rendered time series", map[string]interface{}{
		"chart":  id,
		"points": len(points),
		"max":    maxTotal,
		"width":  geo.Width,
	})
	return doc, nil
}

// timeSeriesPoints validates the input and derives the cumulative data points
func (g *Generator) timeSeriesPoints(records []models.Record) ([]models.DataPoint, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	return models.BuildDataPoints(records), nil
}

func (g *Generator) labelCount(geo layout.Geometry) int {
	if g.opts.LabelCount > 0 {
		return g.opts.LabelCount
	}
	if geo.LabelCount > 0 {
		return geo.LabelCount
	}
	return 4
}

// timeSeriesAxes draws the y axis and the x axis along the plot edges
func (g *Generator) timeSeriesAxes(plot layout.Bounds) scene.Element {
	style := scene.Style{Stroke: g.opts.Palette.Axis, StrokeWidth: 2}
	return scene.Group("chart-axes",
		scene.Line(plot.X0, plot.Y0, plot.X0, plot.Y1, style),
		scene.Line(plot.X0, plot.Y1, plot.X1, plot.Y1, style),
	)
}

// gridlines draws one dashed line and one value label per tick
func (g *Generator) gridlines(nice axis.NiceRange, ys scale.Linear, plot layout.Bounds, fontSize float64) scene.Element {
	pal := g.opts.Palette
	grp := scene.Group("chart-grid")
	for _, v := range nice.TickValues {
		y := ys.Map(v)
		grp.Children = append(grp.Children,
			scene.Line(plot.X0, y, plot.X1, y, scene.Style{
				Stroke:      pal.Grid,
				StrokeWidth: 1,
				DashArray:   "3,3",
			}),
			scene.Text(plot.X0-10, y+5, axis.TickLabel(v), scene.Style{
				Fill:     pal.Label,
				FontSize: fontSize,
				Anchor:   "end",
			}),
		)
	}
	return grp
}

// dateLabels places count+1 labels at evenly interpolated instants
func (g *Generator) dateLabels(xs scale.Time, plot layout.Bounds, count int, fontSize float64) scene.Element {
	grp := scene.Group("chart-x-labels")
	if xs.Degenerate() {
		count = 0
	}
	for i := 0; i <= count; i++ {
		t := xs.Interpolate(i, count)
		grp.Children = append(grp.Children, scene.Text(xs.Map(t), plot.Y1+20, t.Format(g.opts.DateFormat), scene.Style{
			Fill:     g.opts.Palette.Label,
			FontSize: fontSize,
			Anchor:   "middle",
		}))
	}
	return grp
}

// pointMarkers emits one marker per data point with its tooltip metadata
func (g *Generator) pointMarkers(id string, points []models.DataPoint, projected []scene.Point) scene.Element {
	pal := g.opts.Palette
	grp := scene.Group("chart-points")
	for i, p := range points {
		grp.Children = append(grp.Children, scene.Marker(
			fmt.Sprintf("%s-point-%d", id, i),
			projected[i].X, projected[i].Y, g.opts.MarkerRadius,
			scene.Style{Fill: pal.Point, Stroke: pal.PointStroke, StrokeWidth: 2},
			scene.Attr{Key: DataIndex, Value: strconv.Itoa(i)},
			scene.Attr{Key: DataDate, Value: p.Timestamp.UTC().Format(time.RFC3339)},
			scene.Attr{Key: DataAmount, Value: formatValue(p.Amount)},
			scene.Attr{Key: DataTotal, Value: formatValue(p.CumulativeTotal)},
		))
	}
	return grp
}

// placeholder builds the text-only document shown when there is nothing to plot
func placeholder(id, title, message string, geo layout.Geometry) scene.Document {
	return scene.Document{
		ID:          id,
		Title:       title,
		Width:       geo.Width,
		Height:      geo.Height,
		Placeholder: message,
	}
}

func checkGeometry(geo layout.Geometry) error {
	if geo.Width <= 0 || geo.Height <= 0 || geo.Plot.Width() <= 0 || geo.Plot.Height() <= 0 {
		return fmt.Errorf("%w: %.0fx%.0f", ErrInvalidGeometry, geo.Width, geo.Height)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
