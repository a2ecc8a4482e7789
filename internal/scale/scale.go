// Package scale maps data domains onto pixel ranges.
package scale

import (
	"math"
	"time"
)

// Linear is an affine mapping from a numeric domain onto a pixel range.
// A vertical scale is a Linear whose range runs from the bottom pixel to the top pixel.
type Linear struct {
	DomainMin float64
	DomainMax float64
	RangeMin  float64
	RangeMax  float64
}

// NewLinear creates a scale mapping [domainMin, domainMax] onto [rangeMin, rangeMax]
func NewLinear(domainMin, domainMax, rangeMin, rangeMax float64) Linear {
	return Linear{
		DomainMin: domainMin,
		DomainMax: domainMax,
		RangeMin:  rangeMin,
		RangeMax:  rangeMax,
	}
}

// NewVertical creates a scale for a top-left origin canvas: larger values map to smaller y
func NewVertical(domainMin, domainMax, top, bottom float64) Linear {
	return NewLinear(domainMin, domainMax, bottom, top)
}

// Degenerate reports whether the domain has no usable span
func (s Linear) Degenerate() bool {
	span := s.DomainMax - s.DomainMin
	return span == 0 || math.IsNaN(span) || math.IsInf(span, 0)
}

// Mid returns the middle of the pixel range
func (s Linear) Mid() float64 {
	return s.RangeMin + (s.RangeMax-s.RangeMin)/2
}

// Map converts a domain value into a pixel coordinate.
// A zero-span domain and non-finite values map to the middle of the range.
func (s Linear) Map(v float64) float64 {
	if s.Degenerate() || math.IsNaN(v) || math.IsInf(v, 0) {
		return s.Mid()
	}
	return s.RangeMin + (v-s.DomainMin)/(s.DomainMax-s.DomainMin)*(s.RangeMax-s.RangeMin)
}

// Invert converts a pixel coordinate back into a domain value
func (s Linear) Invert(px float64) float64 {
	if s.Degenerate() || s.RangeMax == s.RangeMin {
		return s.DomainMin
	}
	return s.DomainMin + (px-s.RangeMin)/(s.RangeMax-s.RangeMin)*(s.DomainMax-s.DomainMin)
}

// Time maps a time interval onto a pixel range with millisecond resolution
type Time struct {
	Start time.Time
	End   time.Time
	lin   Linear
}

// NewTime creates a time scale mapping [start, end] onto [rangeMin, rangeMax]
func NewTime(start, end time.Time, rangeMin, rangeMax float64) Time {
	return Time{
		Start: start,
		End:   end,
		lin:   NewLinear(float64(start.UnixMilli()), float64(end.UnixMilli()), rangeMin, rangeMax),
	}
}

// Map converts a timestamp into a pixel coordinate
func (s Time) Map(t time.Time) float64 {
	return s.lin.Map(float64(t.UnixMilli()))
}

// Degenerate reports whether start and end are the same instant
func (s Time) Degenerate() bool {
	return s.lin.Degenerate()
}

// Interpolate returns the i-th of n+1 evenly spaced instants between Start and End
func (s Time) Interpolate(i, n int) time.Time {
	if n <= 0 {
		return s.Start
	}
	span := s.End.Sub(s.Start)
	return s.Start.Add(time.Duration(float64(span) * float64(i) / float64(n)))
}

// Invert converts a pixel coordinate back into a timestamp
func (s Time) Invert(px float64) time.Time {
	return time.UnixMilli(int64(math.Round(s.lin.Invert(px)))).UTC()
}
