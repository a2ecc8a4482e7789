// Package axis computes rounded axis ceilings and tick values.
package axis

import (
	"math"
	"strconv"
)

const (
	// PadFactor is the headroom applied to the observed maximum
	PadFactor = 1.6
	// FallbackCeiling is used when there is no positive maximum
	FallbackCeiling = 10.0
	// DefaultTickCount is the number of intervals between gridlines
	DefaultTickCount = 5

	// relative tolerance for float noise in the normalised mantissa
	epsilon = 1e-9
	// minCeiling keeps the mantissa arithmetic clear of subnormal magnitudes
	minCeiling = 1e-300
)

var niceSteps = []float64{1, 2, 5, 10}

// NiceRange describes a padded axis maximum and its tick values
type NiceRange struct {
	PaddedMax  float64
	TickCount  int
	TickValues []float64
}

// NiceCeiling pads rawMax by PadFactor and rounds it up to d*10^k with d in {1, 2, 5, 10}
func NiceCeiling(rawMax float64) float64 {
	if rawMax <= 0 || math.IsNaN(rawMax) || math.IsInf(rawMax, 0) {
		return FallbackCeiling
	}
	padded := rawMax * PadFactor
	if math.IsInf(padded, 0) {
		return FallbackCeiling
	}
	if padded <= minCeiling {
		return minCeiling
	}
	exponent := math.Floor(math.Log10(padded))
	magnitude := math.Pow(10, exponent)
	scaled := padded / magnitude

	// Log10 can land one step low or high around exact powers of ten
	if scaled < 1 {
		magnitude /= 10
		scaled = padded / magnitude
	} else if scaled >= 10*(1+epsilon) {
		magnitude *= 10
		scaled = padded / magnitude
	}

	for _, step := range niceSteps {
		if scaled <= step*(1+epsilon) {
			ceiling := step * magnitude
			if ceiling < padded {
				// tolerance accepted a value a hair above the step; keep the invariant
				continue
			}
			return finiteOr(ceiling)
		}
	}
	return finiteOr(10 * magnitude)
}

// finiteOr returns FallbackCeiling for ceilings that overflowed
func finiteOr(ceiling float64) float64 {
	if math.IsInf(ceiling, 0) {
		return FallbackCeiling
	}
	return ceiling
}

// NewNiceRange computes the nice ceiling for rawMax together with evenly spaced ticks
func NewNiceRange(rawMax float64, tickCount int) NiceRange {
	if tickCount <= 0 {
		tickCount = DefaultTickCount
	}
	ceiling := NiceCeiling(rawMax)
	return NiceRange{
		PaddedMax:  ceiling,
		TickCount:  tickCount,
		TickValues: Ticks(ceiling, tickCount),
	}
}

// Ticks returns max*k/count for k = 0..count
func Ticks(max float64, count int) []float64 {
	if count <= 0 {
		count = DefaultTickCount
	}
	ticks := make([]float64, count+1)
	for k := 0; k <= count; k++ {
		ticks[k] = max * float64(k) / float64(count)
	}
	return ticks
}

// TickLabel formats a tick value rounded to the nearest integer
func TickLabel(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
