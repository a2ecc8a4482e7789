package interaction

import "unicode/utf8"

// PointerKind is the phase of a pointer interaction with a marker
type PointerKind int

const (
	PointerEnter PointerKind = iota
	PointerMove
	PointerLeave
)

// PointerEvent is a pointer interaction relative to the container's top-left corner
type PointerEvent struct {
	Kind   PointerKind
	Target string
	X, Y   float64
}

// TooltipState is the tooltip as currently shown
type TooltipState struct {
	Visible bool
	Target  string
	X, Y    float64
	Lines   []string
}

const (
	pointerOffset = 12.0
	charWidth     = 7.0
	lineHeight    = 16.0
	boxPadding    = 16.0
	boxPaddingY   = 12.0
)

// tooltipSize estimates the rendered size of the tooltip box
func tooltipSize(lines []string) (w, h float64) {
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return float64(longest)*charWidth + boxPadding, float64(len(lines))*lineHeight + boxPaddingY
}

// placeTooltip offsets the box from the pointer, flipping to the other side of
// the pointer when it would overflow, then clamping it inside the container.
// An unmeasured container dimension is not clamped.
func placeTooltip(px, py float64, lines []string, containerW, containerH float64) (x, y float64) {
	w, h := tooltipSize(lines)
	return placeAxis(px, w, containerW), placeAxis(py, h, containerH)
}

func placeAxis(p, size, limit float64) float64 {
	v := p + pointerOffset
	if limit <= 0 {
		return v
	}
	if v+size > limit {
		v = p - pointerOffset - size
	}
	if v+size > limit {
		v = limit - size
	}
	if v < 0 {
		v = 0
	}
	return v
}
