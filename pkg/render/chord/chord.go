// Package chord draws chord diagrams: entities placed on a circle and
// joined by cubic Bézier curves bent toward the center.
//
// [FromRelations] takes a list of weighted source/target pairs; entities are
// the sorted set of names. [FromMatrix] takes a square matrix where cell
// [i][j] is the weight from i to j, and colors each chord by its dominant
// direction. Both fail fast with STRUCTURAL_VIOLATION instead of returning
// a partial diagram.
package chord

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/render/element"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// MaxChordWidth caps the stroke width derived from a chord's weight.
const MaxChordWidth = 10

// Relation is one weighted edge. A zero Value counts as 1.
type Relation struct {
	Source string  `toml:"source" yaml:"source" json:"source"`
	Target string  `toml:"target" yaml:"target" json:"target"`
	Value  float64 `toml:"value" yaml:"value" json:"value"`
}

// Options controls layout and colors. Zero fields take the documented
// defaults.
type Options struct {
	Width, Height float64 // canvas, default 800x600
	Radius        float64 // default 40% of the shorter side

	Stroke      string   // chord stroke for relation diagrams, default #333
	EntityFill  string   // default #666 for relations, #ccc for matrices
	EntityFills []string // per-entity override for matrix arcs
	TextFill    string   // default #000
	FontSize    string   // default 12

	ForwardColor  string // matrix chord where [i][j] > [j][i], default #3366cc
	BackwardColor string // matrix chord where [j][i] > [i][j], default #cc3366
	EqualColor    string // default #666666
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

type layout struct {
	cx, cy, r float64
	opts      Options
}

func newLayout(opts Options) layout {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	r := opts.Radius
	if r <= 0 {
		r = math.Min(opts.Width, opts.Height) * 0.4
	}
	return layout{cx: opts.Width / 2, cy: opts.Height / 2, r: r, opts: opts}
}

func (l layout) at(angle, radius float64) (float64, float64) {
	return l.cx + radius*math.Cos(angle), l.cy + radius*math.Sin(angle)
}

// label draws name just outside the circle, rotated along the radius and
// flipped on the left half so it never reads upside down.
func (l layout) label(name string, angle, offset float64) *svg.Node {
	x, y := l.at(angle, l.r+offset)
	deg := angle * 180 / math.Pi
	if angle > math.Pi/2 && angle < 3*math.Pi/2 {
		deg += 180
	}
	return element.Text(x, y, name, svg.Style{
		Fill: or(l.opts.TextFill, "#000"),
		Extra: []svg.Attr{
			{Name: "text-anchor", Value: "middle"},
			{Name: "dominant-baseline", Value: "middle"},
			{Name: "font-size", Value: or(l.opts.FontSize, "12")},
			{Name: "transform", Value: fmt.Sprintf("rotate(%s, %s, %s)", svg.Num(deg), svg.Num(x), svg.Num(y))},
		},
	})
}

func (l layout) chord(a, b float64, weight float64, stroke string) *svg.Node {
	sx, sy := l.at(a, l.r)
	tx, ty := l.at(b, l.r)
	var d element.PathData
	d.MoveTo(sx, sy).CurveTo(
		l.cx+(sx-l.cx)*0.5, l.cy+(sy-l.cy)*0.5,
		l.cx+(tx-l.cx)*0.5, l.cy+(ty-l.cy)*0.5,
		tx, ty,
	)
	return element.Path(d.String(), svg.Style{
		Fill:        svg.DefaultFill,
		Stroke:      stroke,
		StrokeWidth: svg.Num(math.Max(1, math.Min(MaxChordWidth, weight))),
		Opacity:     svg.Num(0.3 + 0.7*math.Min(1, weight/10)),
	})
}

func angleOf(i, n int) float64 { return 2 * math.Pi * float64(i) / float64(n) }

// FromRelations builds a chord diagram from weighted pairs.
func FromRelations(rels []Relation, opts Options) (*svg.Node, error) {
	if len(rels) == 0 {
		return nil, errors.New(errors.ErrCodeStructural, "no relations")
	}
	index := map[string]int{}
	for i, rel := range rels {
		if rel.Source == "" || rel.Target == "" {
			return nil, errors.New(errors.ErrCodeStructural, "relation %d has an empty endpoint", i)
		}
		if math.IsNaN(rel.Value) || math.IsInf(rel.Value, 0) || rel.Value < 0 {
			return nil, errors.New(errors.ErrCodeStructural, "relation %d has invalid value %v", i, rel.Value)
		}
		index[rel.Source] = 0
		index[rel.Target] = 0
	}
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	slices.Sort(names)
	for i, name := range names {
		index[name] = i
	}

	l := newLayout(opts)
	g := svg.NewElement("g")
	n := len(names)
	for i, name := range names {
		angle := angleOf(i, n)
		x, y := l.at(angle, l.r)
		g.AppendChild(element.Circle(x, y, 5, svg.Style{Fill: or(opts.EntityFill, "#666")}))
		g.AppendChild(l.label(name, angle, 15))
	}
	for _, rel := range rels {
		v := rel.Value
		if v == 0 {
			v = 1
		}
		g.AppendChild(l.chord(angleOf(index[rel.Source], n), angleOf(index[rel.Target], n), v, or(opts.Stroke, "#333")))
	}
	return g, nil
}

// FromMatrix builds a chord diagram from a square weight matrix. labels may
// be nil, in which case entities are named "Entity 1" … "Entity n".
func FromMatrix(matrix [][]float64, labels []string, opts Options) (*svg.Node, error) {
	n := len(matrix)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeStructural, "matrix is empty")
	}
	for i, row := range matrix {
		if len(row) != n {
			return nil, errors.New(errors.ErrCodeStructural, "matrix must be square: row %d has %d columns, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeStructural, "matrix cell [%d][%d] is not finite", i, j)
			}
		}
	}
	if labels == nil {
		labels = make([]string, n)
		for i := range labels {
			labels[i] = fmt.Sprintf("Entity %d", i+1)
		}
	} else if len(labels) != n {
		return nil, errors.New(errors.ErrCodeStructural, "got %d labels for a %dx%d matrix", len(labels), n, n)
	}

	l := newLayout(opts)
	g := svg.NewElement("g")
	arc := 2 * math.Pi / float64(n)
	for i := range n {
		angle := angleOf(i, n)
		sx, sy := l.at(angle-arc/2, l.r)
		ex, ey := l.at(angle+arc/2, l.r)
		var d element.PathData
		d.MoveTo(l.cx, l.cy).LineTo(sx, sy).ArcTo(l.r, l.r, 0, arc > math.Pi, true, ex, ey).Close()

		fill := or(opts.EntityFill, "#ccc")
		if i < len(opts.EntityFills) && opts.EntityFills[i] != "" {
			fill = opts.EntityFills[i]
		}
		g.AppendChild(element.Path(d.String(), svg.Style{Fill: fill, Stroke: "none"}))
		g.AppendChild(l.label(labels[i], angle, 20))
	}

	for i := range n {
		for j := i + 1; j < n; j++ {
			ij, ji := matrix[i][j], matrix[j][i]
			if ij <= 0 && ji <= 0 {
				continue
			}
			stroke := or(opts.EqualColor, "#666666")
			switch {
			case ij > ji:
				stroke = or(opts.ForwardColor, "#3366cc")
			case ji > ij:
				stroke = or(opts.BackwardColor, "#cc3366")
			}
			g.AppendChild(l.chord(angleOf(i, n), angleOf(j, n), ij+ji, stroke))
		}
	}
	return g, nil
}
