package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeClampsWidth(t *testing.T) {
	r := TimeSeriesRules()

	tests := []struct {
		name      string
		container float64
		want      float64
	}{
		{"wide container", 1200, 500},
		{"inside band", 420, 420},
		{"narrow container", 120, 280},
		{"unmeasured container", 0, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := r.Compute(tt.container, 0)
			assert.Equal(t, tt.want, g.Width)
			assert.Equal(t, 350.0, g.Height)
		})
	}
}

func TestComputePlotBounds(t *testing.T) {
	g := TimeSeriesRules().Compute(500, 400)

	assert.Equal(t, Bounds{X0: 50, Y0: 50, X1: 450, Y1: 300}, g.Plot)
	assert.Equal(t, 400.0, g.Plot.Width())
	assert.Equal(t, 250.0, g.Plot.Height())
	assert.Equal(t, 250.0, g.Plot.CenterX())
}

func TestComputeBreakpoints(t *testing.T) {
	r := TimeSeriesRules()

	g := r.Compute(300, 0)
	assert.Equal(t, 2, g.LabelCount)
	assert.Equal(t, 10.0, g.FontSize)

	g = r.Compute(400, 0)
	assert.Equal(t, 3, g.LabelCount)
	assert.Equal(t, 11.0, g.FontSize)

	g = r.Compute(480, 0)
	assert.Equal(t, 4, g.LabelCount)
	assert.Equal(t, 12.0, g.FontSize)
}

func TestComputeResponsiveHeight(t *testing.T) {
	r := ResponsiveTimeSeriesRules()

	assert.Equal(t, 350.0, r.Compute(500, 0).Height)
	assert.Equal(t, 220.0, r.Compute(290, 0).Height)

	r.HeightRatio = 1
	assert.Equal(t, 400.0, r.Compute(500, 0).Height)
}

func TestComputeFitHeight(t *testing.T) {
	r := RadialRules()
	r.FitHeight = true

	g := r.Compute(500, 320)
	assert.Equal(t, 500.0, g.Width)
	assert.Equal(t, 320.0, g.Height)

	g = r.Compute(500, 100)
	assert.Equal(t, 260.0, g.Height)
}

func TestComputeIsIdempotent(t *testing.T) {
	for _, r := range []Rules{TimeSeriesRules(), DualBarRules(), RadialRules(), ResponsiveTimeSeriesRules()} {
		for _, w := range []float64{0, 100, 333, 500, 2000} {
			assert.Equal(t, r.Compute(w, 300), r.Compute(w, 300))
		}
	}
}

func TestBreakpointsOrderIndependent(t *testing.T) {
	r := TimeSeriesRules()
	r.Breakpoints = []Breakpoint{r.Breakpoints[1], r.Breakpoints[0]}

	assert.Equal(t, 2, r.Compute(300, 0).LabelCount)
}

func TestValidate(t *testing.T) {
	require.NoError(t, TimeSeriesRules().Validate())
	require.NoError(t, DualBarRules().Validate())
	require.NoError(t, RadialRules().Validate())

	bad := TimeSeriesRules()
	bad.MinWidth = 600
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRules)

	bad = TimeSeriesRules()
	bad.Height = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRules)

	bad = RadialRules()
	bad.HeightRatio = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRules)

	bad = TimeSeriesRules()
	bad.Margins = Uniform(200)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidRules)
}
