// Package pattern generates string-art figures: straight chords between
// points on a circle, spirals and Lissajous curves.
//
// Strokes default to [svg.DefaultStroke] at [svg.DefaultStrokeWidth];
// anything set on the given style wins.
package pattern

import (
	"math"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/render/element"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

var defaultStyle = svg.Style{Stroke: svg.DefaultStroke, StrokeWidth: svg.DefaultStrokeWidth}

// Web describes points spaced evenly on a circle, every pair joined by a
// straight path.
type Web struct {
	CX, CY, Radius float64
	Points         int
}

// Spiral describes a polyline spiral growing from StartRadius to EndRadius
// over Turns revolutions.
type Spiral struct {
	CX, CY                 float64
	StartRadius, EndRadius float64
	Turns                  float64
	Points                 int
}

// Lissajous describes the closed curve
// (cx + a·sin(fa·t + phase), cy + b·sin(fb·t)).
type Lissajous struct {
	CX, CY       float64
	A, B         float64
	FreqA, FreqB float64
	Phase        float64
	Points       int
}

// NewWeb returns a g holding Points·(Points-1)/2 paths.
func NewWeb(w Web, style svg.Style) (*svg.Node, error) {
	if w.Points < 2 {
		return nil, errors.New(errors.ErrCodeStructural, "web needs at least 2 points, got %d", w.Points)
	}
	style = style.Or(defaultStyle)

	xs := make([]float64, w.Points)
	ys := make([]float64, w.Points)
	for i := range w.Points {
		angle := 2 * math.Pi * float64(i) / float64(w.Points)
		xs[i] = w.CX + w.Radius*math.Cos(angle)
		ys[i] = w.CY + w.Radius*math.Sin(angle)
	}

	g := svg.NewElement("g")
	for i := range w.Points {
		for j := i + 1; j < w.Points; j++ {
			var d element.PathData
			d.MoveTo(xs[i], ys[i]).LineTo(xs[j], ys[j])
			g.AppendChild(element.Path(d.String(), style))
		}
	}
	return g, nil
}

// NewSpiral returns a g holding a single spiral path.
func NewSpiral(s Spiral, style svg.Style) (*svg.Node, error) {
	if s.Points < 2 {
		return nil, errors.New(errors.ErrCodeStructural, "spiral needs at least 2 points, got %d", s.Points)
	}
	style = style.Or(defaultStyle)

	var d element.PathData
	for i := range s.Points {
		t := float64(i) / float64(s.Points-1)
		r := s.StartRadius + t*(s.EndRadius-s.StartRadius)
		angle := 2 * math.Pi * s.Turns * t
		x, y := s.CX+r*math.Cos(angle), s.CY+r*math.Sin(angle)
		if i == 0 {
			d.MoveTo(x, y)
		} else {
			d.LineTo(x, y)
		}
	}

	g := svg.NewElement("g")
	g.AppendChild(element.Path(d.String(), style))
	return g, nil
}

// NewLissajous returns a closed, unfilled path.
func NewLissajous(l Lissajous, style svg.Style) (*svg.Node, error) {
	if l.Points < 2 {
		return nil, errors.New(errors.ErrCodeStructural, "lissajous curve needs at least 2 points, got %d", l.Points)
	}
	style = style.Or(svg.Style{Fill: svg.DefaultFill, Stroke: svg.DefaultStroke, StrokeWidth: svg.DefaultStrokeWidth})

	var d element.PathData
	for i := range l.Points {
		t := 2 * math.Pi * float64(i) / float64(l.Points)
		x := l.CX + l.A*math.Sin(l.FreqA*t+l.Phase)
		y := l.CY + l.B*math.Sin(l.FreqB*t)
		if i == 0 {
			d.MoveTo(x, y)
		} else {
			d.LineTo(x, y)
		}
	}
	d.Close()
	return element.Path(d.String(), style), nil
}
