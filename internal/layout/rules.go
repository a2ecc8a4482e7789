package layout

// TimeSeriesRules are the defaults for the cumulative line chart
func TimeSeriesRules() Rules {
	return Rules{
		MinWidth:   280,
		MaxWidth:   500,
		Height:     350,
		MinHeight:  220,
		MaxHeight:  400,
		Margins:    Uniform(50),
		LabelCount: 4,
		FontSize:   12,
		Breakpoints: []Breakpoint{
			{MaxWidth: 360, LabelCount: 2, FontSize: 10},
			{MaxWidth: 440, LabelCount: 3, FontSize: 11},
		},
	}
}

// ResponsiveTimeSeriesRules derive the line chart height from its width
func ResponsiveTimeSeriesRules() Rules {
	r := TimeSeriesRules()
	r.ResponsiveHeight = true
	r.HeightRatio = 0.7
	return r
}

// DualBarRules are the defaults for the two-bar ratio chart.
// The left margin holds the "Received"/"Done" labels.
func DualBarRules() Rules {
	return Rules{
		MinWidth: 280,
		MaxWidth: 500,
		Height:   150,
		Margins:  Margins{Left: 80, Right: 25},
		FontSize: 14,
		Breakpoints: []Breakpoint{
			{MaxWidth: 360, FontSize: 12},
		},
	}
}

// RadialRules are the defaults for the radar chart; it stays square
func RadialRules() Rules {
	return Rules{
		MinWidth:         260,
		MaxWidth:         500,
		ResponsiveHeight: true,
		HeightRatio:      1,
		MinHeight:        260,
		MaxHeight:        500,
		Margins:          Uniform(60),
		FontSize:         12,
		Breakpoints: []Breakpoint{
			{MaxWidth: 340, FontSize: 10},
		},
	}
}
