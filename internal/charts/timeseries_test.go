package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerviz/internal/layout"
	"ledgerviz/internal/models"
	"ledgerviz/internal/scene"
)

func timeSeriesGeometry() layout.Geometry {
	// 500x350 with a 50px margin: plot spans x 50..450, y 50..300
	return layout.TimeSeriesRules().Compute(500, 400)
}

func TestRenderTimeSeriesProjection(t *testing.T) {
	g := newTestGenerator()
	records := []models.Record{
		{ID: "b", Amount: 5, CreatedAt: day(3)},
		{ID: "a", Amount: 10, CreatedAt: day(1)},
	}

	doc, err := g.RenderTimeSeries("xp", records, timeSeriesGeometry())
	require.NoError(t, err)
	assert.False(t, doc.IsPlaceholder())
	assert.Equal(t, "XP Progress", doc.Title)

	// totals 10, 15 -> ceiling 50, y = 300 - total*5
	area := findGroup(t, doc, "chart-area")
	assert.Equal(t, "M 50 300 L 50 250 L 450 225 L 450 300 Z", area.Path.String())
	line := findGroup(t, doc, "chart-line")
	assert.Equal(t, "M 50 250 L 450 225", line.Path.String())
	assert.Equal(t, "url(#xp-glow)", line.Style.Filter)
	assert.Equal(t, "url(#xp-gradient)", area.Style.Fill)

	markers := doc.Markers()
	require.Len(t, markers, 2)
	assert.Equal(t, "xp-point-0", markers[0].ID)
	amount, _ := markers[0].DataValue(DataAmount)
	total, _ := markers[1].DataValue(DataTotal)
	date, _ := markers[1].DataValue(DataDate)
	assert.Equal(t, "10", amount)
	assert.Equal(t, "15", total)
	assert.Equal(t, "2024-01-03T00:00:00Z", date)
	assert.InDelta(t, 450.0, markers[1].X1, 1e-9)
	assert.InDelta(t, 225.0, markers[1].Y1, 1e-9)

	require.NotNil(t, doc.Tooltip)
	assert.Equal(t, "xp-tooltip", doc.Tooltip.ID)
}

func TestRenderTimeSeriesDefinitions(t *testing.T) {
	doc, err := newTestGenerator().RenderTimeSeries("xp", []models.Record{{Amount: 1, CreatedAt: day(1)}, {Amount: 1, CreatedAt: day(2)}}, timeSeriesGeometry())
	require.NoError(t, err)

	grad, ok := doc.GradientByID("xp-gradient")
	require.True(t, ok)
	require.Len(t, grad.Stops, 2)
	assert.Equal(t, 0.3, grad.Stops[0].Opacity)
	assert.Equal(t, 0.05, grad.Stops[1].Opacity)
	require.Len(t, doc.Shadows, 1)
	assert.Equal(t, "xp-glow", doc.Shadows[0].ID)
}

func TestRenderTimeSeriesGridAndLabels(t *testing.T) {
	g := newTestGenerator()
	records := []models.Record{{Amount: 10, CreatedAt: day(1)}, {Amount: 5, CreatedAt: day(5)}}

	doc, err := g.RenderTimeSeries("xp", records, timeSeriesGeometry())
	require.NoError(t, err)

	grid := findGroup(t, doc, "chart-grid")
	var labels []string
	for _, c := range grid.Children {
		if c.Kind == scene.KindText {
			labels = append(labels, c.Text)
		} else {
			assert.Equal(t, "3,3", c.Style.DashArray)
		}
	}
	assert.Equal(t, []string{"0", "10", "20", "30", "40", "50"}, labels)

	xLabels := findGroup(t, doc, "chart-x-labels")
	require.Len(t, xLabels.Children, 5)
	assert.Equal(t, "2024-01-01", xLabels.Children[0].Text)
	assert.Equal(t, "2024-01-02", xLabels.Children[1].Text)
	assert.Equal(t, "2024-01-05", xLabels.Children[4].Text)
	assert.Equal(t, 320.0, xLabels.Children[0].Y1)

	axes := findGroup(t, doc, "chart-axes")
	assert.Len(t, axes.Children, 2)
}

func TestRenderTimeSeriesLabelDensity(t *testing.T) {
	records := []models.Record{{Amount: 1, CreatedAt: day(1)}, {Amount: 1, CreatedAt: day(9)}}

	narrow := layout.TimeSeriesRules().Compute(300, 400)
	doc, err := newTestGenerator().RenderTimeSeries("xp", records, narrow)
	require.NoError(t, err)
	assert.Len(t, findGroup(t, doc, "chart-x-labels").Children, 3)

	doc, err = newTestGenerator(func(o *Options) { o.LabelCount = 8 }).RenderTimeSeries("xp", records, narrow)
	require.NoError(t, err)
	assert.Len(t, findGroup(t, doc, "chart-x-labels").Children, 9)
}

func TestRenderTimeSeriesEmptyInput(t *testing.T) {
	g := newTestGenerator()
	for _, records := range [][]models.Record{nil, {}} {
		doc, err := g.RenderTimeSeries("xp", records, timeSeriesGeometry())
		require.NoError(t, err)
		assert.True(t, doc.IsPlaceholder())
		assert.Equal(t, "No XP data available", doc.Placeholder)
		assert.Equal(t, 0, doc.Count(scene.KindPath))
		assert.Empty(t, doc.Markers())
	}
}

func TestRenderTimeSeriesSinglePoint(t *testing.T) {
	doc, err := newTestGenerator().RenderTimeSeries("xp", []models.Record{{Amount: 42, CreatedAt: day(1)}}, timeSeriesGeometry())
	require.NoError(t, err)
	assertFinite(t, doc)

	markers := doc.Markers()
	require.Len(t, markers, 1)
	assert.InDelta(t, 250.0, markers[0].X1, 1e-9)
	assert.Len(t, findGroup(t, doc, "chart-x-labels").Children, 1)
}

func TestRenderTimeSeriesIdenticalTimestamps(t *testing.T) {
	records := []models.Record{{Amount: 1, CreatedAt: day(2)}, {Amount: 2, CreatedAt: day(2)}}
	doc, err := newTestGenerator().RenderTimeSeries("xp", records, timeSeriesGeometry())
	require.NoError(t, err)
	assertFinite(t, doc)
	assert.Len(t, doc.Markers(), 2)
}

func TestRenderTimeSeriesNegativeTotals(t *testing.T) {
	records := []models.Record{{Amount: -5, CreatedAt: day(1)}, {Amount: -10, CreatedAt: day(2)}}
	doc, err := newTestGenerator().RenderTimeSeries("xp", records, timeSeriesGeometry())
	require.NoError(t, err)
	assertFinite(t, doc)

	plot := timeSeriesGeometry().Plot
	for _, m := range doc.Markers() {
		assert.GreaterOrEqual(t, m.Y1, plot.Y0)
		assert.LessOrEqual(t, m.Y1, plot.Y1)
	}
}

func TestRenderTimeSeriesStableOrder(t *testing.T) {
	records := []models.Record{
		{ID: "x", Amount: 1, CreatedAt: day(2)},
		{ID: "y", Amount: 100, CreatedAt: day(2)},
		{ID: "z", Amount: 3, CreatedAt: day(1)},
	}
	doc, err := newTestGenerator().RenderTimeSeries("xp", records, timeSeriesGeometry())
	require.NoError(t, err)

	var amounts []string
	for _, m := range doc.Markers() {
		v, _ := m.DataValue(DataAmount)
		amounts = append(amounts, v)
	}
	assert.Equal(t, []string{"3", "1", "100"}, amounts)
}

func TestRenderTimeSeriesWithoutTooltips(t *testing.T) {
	g := newTestGenerator(func(o *Options) { o.Tooltips = false })
	doc, err := g.RenderTimeSeries("xp", []models.Record{{Amount: 1, CreatedAt: day(1)}}, timeSeriesGeometry())
	require.NoError(t, err)
	assert.Nil(t, doc.Tooltip)
	assert.Len(t, doc.Markers(), 1)
}
