package charts

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerviz/internal/layout"
	"ledgerviz/internal/logger"
	"ledgerviz/internal/models"
	"ledgerviz/internal/scene"
)

func newTestGenerator(mutate ...func(*Options)) *Generator {
	opts := DefaultOptions()
	for _, m := range mutate {
		m(&opts)
	}
	return NewGenerator(opts, logger.Nop())
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func findGroup(t *testing.T, doc scene.Document, class string) scene.Element {
	t.Helper()
	for _, e := range doc.Elements {
		if e.Class == class {
			return e
		}
	}
	t.Fatalf("group %q not found", class)
	return scene.Element{}
}

func assertFinite(t *testing.T, doc scene.Document) {
	t.Helper()
	var walk func([]scene.Element)
	walk = func(els []scene.Element) {
		for _, e := range els {
			for _, v := range []float64{e.X1, e.Y1, e.X2, e.Y2, e.R} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite coordinate in %s", e.Kind)
			}
			for _, c := range e.Path.Commands() {
				assert.False(t, math.IsNaN(c.X) || math.IsNaN(c.Y), "non-finite path command")
			}
			assert.NotContains(t, e.Path.String(), "NaN")
			walk(e.Children)
		}
	}
	walk(doc.Elements)
}

func TestNewGenerator(t *testing.T) {
	g := NewGenerator(Options{}, nil)
	require.NotNil(t, g)
	opts := g.Options()
	assert.Equal(t, 5, opts.TickCount)
	assert.Equal(t, "2006-01-02", opts.DateFormat)
	assert.Equal(t, 5, opts.RadialLevels)
	assert.Equal(t, models.DefaultCategoryPrefix, opts.CategoryPrefix)
	assert.Equal(t, DefaultPalette(), opts.Palette)
	// zero Options leave tooltips off
	assert.False(t, opts.Tooltips)
}

func TestRulesFor(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, layout.TimeSeriesRules(), opts.RulesFor(KindTimeSeries))
	assert.Equal(t, layout.DualBarRules(), opts.RulesFor(KindDualBar))
	assert.Equal(t, layout.RadialRules(), opts.RulesFor(KindRadial))

	opts.ResponsiveHeight = true
	assert.Equal(t, layout.ResponsiveTimeSeriesRules(), opts.RulesFor(KindTimeSeries))

	custom := layout.DualBarRules()
	custom.Height = 200
	opts.Rules = map[Kind]layout.Rules{KindDualBar: custom}
	assert.Equal(t, 200.0, opts.RulesFor(KindDualBar).Height)
}

func TestInvalidGeometry(t *testing.T) {
	g := newTestGenerator()
	_, err := g.RenderTimeSeries("xp", nil, layout.Geometry{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = g.RenderDualBar("audit", 1, 1, layout.Geometry{Width: 10})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = g.RenderRadial("skills", nil, layout.Geometry{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestRenderWrapsErrors(t *testing.T) {
	g := newTestGenerator(func(o *Options) {
		r := layout.TimeSeriesRules()
		r.Margins = layout.Uniform(400)
		o.Rules = map[Kind]layout.Rules{KindTimeSeries: r}
	})
	_, err := g.Render(TimeSeriesSource{}, "xp", 500, 400)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to render timeseries chart xp"))

	_, err = g.Render(nil, "xp", 500, 400)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
