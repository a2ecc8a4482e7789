package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ParseColor converts a literal style colour into a drawing.Color.
// Parsing is delegated to drawing.ParseColor; this adds "none", the #rrggbbaa
// alpha channel, and an error for strings drawing would silently zero.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "none":
		return drawing.ColorTransparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba("):
		if err := checkFunctional(s, "rgba(", 4); err != nil {
			return drawing.Color{}, err
		}
	case strings.HasPrefix(s, "rgb("):
		if err := checkFunctional(s, "rgb(", 3); err != nil {
			return drawing.Color{}, err
		}
	}

	c := drawing.ParseColor(s)
	if c == (drawing.Color{}) && s != "transparent" {
		return drawing.Color{}, fmt.Errorf("unsupported color %q", s)
	}
	return c, nil
}

func parseHex(h string) (drawing.Color, error) {
	switch len(h) {
	case 3, 6, 8:
	default:
		return drawing.Color{}, fmt.Errorf("invalid hex color #%s", h)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return drawing.Color{}, fmt.Errorf("invalid hex color #%s: %w", h, err)
	}
	if len(h) < 8 {
		return drawing.ColorFromHex(h), nil
	}

	c := drawing.ColorFromHex(h[:6])
	a, _ := strconv.ParseUint(h[6:], 16, 8)
	c.A = uint8(a)
	return c, nil
}

// checkFunctional rejects rgb()/rgba() forms whose components drawing would read as 0
func checkFunctional(s, prefix string, want int) error {
	if !strings.HasSuffix(s, ")") {
		return fmt.Errorf("unterminated color %q", s)
	}
	parts := strings.Split(s[len(prefix):len(s)-1], ",")
	if len(parts) != want {
		return fmt.Errorf("expected %d color components in %q, got %d", want, s, len(parts))
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 3 {
			if _, err := strconv.ParseFloat(p, 64); err != nil {
				return fmt.Errorf("invalid alpha %q: %w", p, err)
			}
			continue
		}
		if v, err := strconv.Atoi(p); err != nil || v < 0 || v > 255 {
			return fmt.Errorf("invalid color component %q", p)
		}
	}
	return nil
}

// withOpacity scales the alpha channel of c by o when 0 < o < 1
func withOpacity(c drawing.Color, o float64) drawing.Color {
	if o <= 0 || o >= 1 {
		return c
	}
	c.A = uint8(math.Round(float64(c.A) * o))
	return c
}
