package scene

import (
	"math"
	"strconv"
	"strings"
)

// Point is a projected pixel coordinate
type Point struct {
	X, Y float64
}

// Command is one path instruction: 'M' move, 'L' line or 'Z' close
type Command struct {
	Op   byte
	X, Y float64
}

// Path is a sequence of straight-segment drawing commands
type Path struct {
	cmds []Command
}

// MoveTo starts a new sub-path at (x, y)
func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, Command{Op: 'M', X: x, Y: y})
}

// LineTo draws a straight segment to (x, y)
func (p *Path) LineTo(x, y float64) {
	p.cmds = append(p.cmds, Command{Op: 'L', X: x, Y: y})
}

// Close closes the current sub-path
func (p *Path) Close() {
	p.cmds = append(p.cmds, Command{Op: 'Z'})
}

// Commands returns a copy of the path commands
func (p Path) Commands() []Command {
	out := make([]Command, len(p.cmds))
	copy(out, p.cmds)
	return out
}

// Empty reports whether the path has no commands
func (p Path) Empty() bool {
	return len(p.cmds) == 0
}

// String renders the SVG path data, e.g. "M 50 300 L 120 80 Z"
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(c.Op)
		if c.Op == 'Z' {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(Num(c.X))
		sb.WriteByte(' ')
		sb.WriteString(Num(c.Y))
	}
	return sb.String()
}

// Polyline connects the points with straight segments in order
func Polyline(points []Point) Path {
	var p Path
	for i, pt := range points {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	return p
}

// Area closes the polyline down to baseline below the first and last points
func Area(points []Point, baseline float64) Path {
	var p Path
	if len(points) == 0 {
		return p
	}
	first, last := points[0], points[len(points)-1]
	p.MoveTo(first.X, baseline)
	for _, pt := range points {
		p.LineTo(pt.X, pt.Y)
	}
	p.LineTo(last.X, baseline)
	p.Close()
	return p
}

// Polygon connects the points and closes the shape
func Polygon(points []Point) Path {
	p := Polyline(points)
	if !p.Empty() {
		p.Close()
	}
	return p
}

// Num formats a coordinate with at most two decimals and no trailing zeros
func Num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
