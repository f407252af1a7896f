// Package gradient builds linearGradient and radialGradient definitions.
//
// Gradients are returned as detached nodes; callers add them to a defs
// element and reference them with url(#id).
package gradient

import (
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Stop is one color stop. Opacity is omitted from the output when empty.
type Stop struct {
	Offset  string
	Color   string
	Opacity string
}

// Vector is the direction of a linear gradient in bounding-box units.
type Vector struct {
	X1, Y1, X2, Y2 float64
}

// Common gradient directions.
var (
	Horizontal = Vector{X1: 0, Y1: 0, X2: 1, Y2: 0}
	Vertical   = Vector{X1: 0, Y1: 0, X2: 0, Y2: 1}
)

// Focal is the focal point of a radial gradient.
type Focal struct {
	X, Y float64
}

// Circle is the geometry of a radial gradient. Focal is optional.
type Circle struct {
	CX, CY, R float64
	Focal     *Focal
}

// Centered is the default radial geometry.
var Centered = Circle{CX: 0.5, CY: 0.5, R: 0.5}

// Linear creates a linearGradient with the given id, direction and stops.
func Linear(id string, v Vector, stops ...Stop) *svg.Node {
	g := svg.NewElement("linearGradient",
		svg.Attr{Name: "id", Value: id},
		svg.Attr{Name: "x1", Value: svg.Num(v.X1)},
		svg.Attr{Name: "y1", Value: svg.Num(v.Y1)},
		svg.Attr{Name: "x2", Value: svg.Num(v.X2)},
		svg.Attr{Name: "y2", Value: svg.Num(v.Y2)},
	)
	addStops(g, stops)
	return g
}

// Radial creates a radialGradient with the given id, geometry and stops.
func Radial(id string, c Circle, stops ...Stop) *svg.Node {
	g := svg.NewElement("radialGradient",
		svg.Attr{Name: "id", Value: id},
		svg.Attr{Name: "cx", Value: svg.Num(c.CX)},
		svg.Attr{Name: "cy", Value: svg.Num(c.CY)},
		svg.Attr{Name: "r", Value: svg.Num(c.R)},
	)
	if c.Focal != nil {
		g.SetAttr("fx", svg.Num(c.Focal.X))
		g.SetAttr("fy", svg.Num(c.Focal.Y))
	}
	addStops(g, stops)
	return g
}

func addStops(g *svg.Node, stops []Stop) {
	for _, s := range stops {
		offset, color := s.Offset, s.Color
		if offset == "" {
			offset = "0"
		}
		if color == "" {
			color = svg.DefaultStroke
		}
		stop := svg.NewElement("stop",
			svg.Attr{Name: "offset", Value: offset},
			svg.Attr{Name: "stop-color", Value: color},
		)
		if s.Opacity != "" {
			stop.SetAttr("stop-opacity", s.Opacity)
		}
		g.AppendChild(stop)
	}
}

// RainbowStops are the seven hue stops of Rainbow.
var RainbowStops = []Stop{
	{Offset: "0%", Color: "#ff0000"},
	{Offset: "16.67%", Color: "#ffff00"},
	{Offset: "33.33%", Color: "#00ff00"},
	{Offset: "50%", Color: "#00ffff"},
	{Offset: "66.67%", Color: "#0000ff"},
	{Offset: "83.33%", Color: "#ff00ff"},
	{Offset: "100%", Color: "#ff0000"},
}

// Rainbow creates a full-spectrum linear gradient.
func Rainbow(id string, horizontal bool) *svg.Node {
	v := Vertical
	if horizontal {
		v = Horizontal
	}
	return Linear(id, v, RainbowStops...)
}

// DefaultMetalBase is the base color Metallic uses when none is given.
const DefaultMetalBase = "#888888"

// Metallic creates a vertical gradient with a highlight on top, a flat band
// of base in the middle and a shadow at the bottom.
func Metallic(id, base string) *svg.Node {
	if base == "" {
		base = DefaultMetalBase
	}
	return Linear(id, Vertical,
		Stop{Offset: "0%", Color: "#ffffff", Opacity: "0.7"},
		Stop{Offset: "45%", Color: base},
		Stop{Offset: "55%", Color: base},
		Stop{Offset: "100%", Color: "#000000", Opacity: "0.3"},
	)
}

// Presets lists the preset names accepted by Preset.
var Presets = []string{"rainbow", "rainbow-vertical", "metallic"}

// Preset builds a named preset gradient. ok is false for unknown names.
func Preset(name, id, base string) (node *svg.Node, ok bool) {
	switch name {
	case "rainbow":
		return Rainbow(id, true), true
	case "rainbow-vertical":
		return Rainbow(id, false), true
	case "metallic":
		return Metallic(id, base), true
	}
	return nil, false
}
