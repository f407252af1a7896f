// Package element builds single SVG elements from numeric parameters.
//
// Every constructor writes geometry attributes first and then the non-empty
// fields of the given [svg.Style], so output is deterministic:
//
//	c := element.Circle(400, 300, 50, svg.Style{Fill: "#2266aa"})
//	c.String() // <circle cx="400" cy="300" r="50" fill="#2266aa"/>
package element

import (
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// New creates an arbitrary element with attributes in the given order.
func New(tag string, attrs ...svg.Attr) *svg.Node {
	return svg.NewElement(tag, attrs...)
}

func build(tag string, geometry []svg.Attr, style svg.Style) *svg.Node {
	n := svg.NewElement(tag, geometry...)
	style.Apply(n)
	return n
}

// Circle creates a circle centered at (cx, cy).
func Circle(cx, cy, r float64, style svg.Style) *svg.Node {
	return build("circle", []svg.Attr{
		{Name: "cx", Value: svg.Num(cx)},
		{Name: "cy", Value: svg.Num(cy)},
		{Name: "r", Value: svg.Num(r)},
	}, style)
}

// Rect creates a rectangle with its top-left corner at (x, y).
func Rect(x, y, width, height float64, style svg.Style) *svg.Node {
	return build("rect", []svg.Attr{
		{Name: "x", Value: svg.Num(x)},
		{Name: "y", Value: svg.Num(y)},
		{Name: "width", Value: svg.Num(width)},
		{Name: "height", Value: svg.Num(height)},
	}, style)
}

// Line creates a line segment from (x1, y1) to (x2, y2).
func Line(x1, y1, x2, y2 float64, style svg.Style) *svg.Node {
	return build("line", []svg.Attr{
		{Name: "x1", Value: svg.Num(x1)},
		{Name: "y1", Value: svg.Num(y1)},
		{Name: "x2", Value: svg.Num(x2)},
		{Name: "y2", Value: svg.Num(y2)},
	}, style)
}

// Path creates a path with the given path data.
func Path(d string, style svg.Style) *svg.Node {
	return build("path", []svg.Attr{{Name: "d", Value: d}}, style)
}

// Text creates a text element anchored at (x, y) with content as its only
// child.
func Text(x, y float64, content string, style svg.Style) *svg.Node {
	n := build("text", []svg.Attr{
		{Name: "x", Value: svg.Num(x)},
		{Name: "y", Value: svg.Num(y)},
	}, style)
	if content != "" {
		n.AppendChild(svg.NewText(content))
	}
	return n
}

// Group creates a g element holding children in order.
func Group(attrs []svg.Attr, children ...*svg.Node) *svg.Node {
	g := svg.NewElement("g", attrs...)
	for _, c := range children {
		g.AppendChild(c)
	}
	return g
}
