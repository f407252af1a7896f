package element

import (
	"strings"

	"github.com/matzehuels/svgbudget/pkg/svg"
)

// PathData accumulates path commands in the "M x,y L x,y" form.
type PathData struct {
	b strings.Builder
}

func (p *PathData) cmd(letter string, pts ...float64) *PathData {
	if p.b.Len() > 0 {
		p.b.WriteByte(' ')
	}
	p.b.WriteString(letter)
	for i := 0; i+1 < len(pts); i += 2 {
		p.b.WriteByte(' ')
		p.b.WriteString(svg.Num(pts[i]))
		p.b.WriteByte(',')
		p.b.WriteString(svg.Num(pts[i+1]))
	}
	return p
}

// MoveTo starts a new subpath at (x, y).
func (p *PathData) MoveTo(x, y float64) *PathData { return p.cmd("M", x, y) }

// LineTo draws a straight segment to (x, y).
func (p *PathData) LineTo(x, y float64) *PathData { return p.cmd("L", x, y) }

// CurveTo draws a cubic Bézier segment with control points (x1, y1) and
// (x2, y2) ending at (x, y).
func (p *PathData) CurveTo(x1, y1, x2, y2, x, y float64) *PathData {
	return p.cmd("C", x1, y1, x2, y2, x, y)
}

// Close closes the current subpath.
func (p *PathData) Close() *PathData { return p.cmd("Z") }

// Empty reports whether no command has been written.
func (p *PathData) Empty() bool { return p.b.Len() == 0 }

// String returns the accumulated path data.
func (p *PathData) String() string { return p.b.String() }

// ArcTo draws an elliptical arc with radii (rx, ry) ending at (x, y).
func (p *PathData) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) *PathData {
	p.cmd("A", rx, ry)
	p.b.WriteByte(' ')
	p.b.WriteString(svg.Num(rotation))
	p.b.WriteByte(' ')
	p.b.WriteString(flag(largeArc))
	p.b.WriteByte(',')
	p.b.WriteString(flag(sweep))
	p.b.WriteByte(' ')
	p.b.WriteString(svg.Num(x))
	p.b.WriteByte(',')
	p.b.WriteString(svg.Num(y))
	return p
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
