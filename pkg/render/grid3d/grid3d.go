// Package grid3d projects simple 3D wireframes onto the SVG canvas.
//
// The camera sits at (0, 0, -5) looking down +z. Points are projected with
// a plain perspective divide; there is no clipping against the near or far
// planes.
package grid3d

import (
	"math"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/render/element"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Vec3 is a point in world space.
type Vec3 struct {
	X, Y, Z float64
}

// Point is a projected canvas position.
type Point struct {
	X, Y float64
}

// DefaultCamera is the camera position used by New.
var DefaultCamera = Vec3{0, 0, -5}

// Default view parameters.
const (
	DefaultFOV   = 60.0
	DefaultZNear = 0.1
	DefaultZFar  = 100.0
)

// Renderer projects world points onto a Width×Height canvas.
type Renderer struct {
	Width, Height float64
	FOV           float64 // radians
	ZNear, ZFar   float64
	Camera        Vec3
}

// New returns a renderer for the given canvas and field of view in degrees.
// A zero fov uses DefaultFOV.
func New(width, height, fovDegrees float64) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeStructural, "canvas must have positive size, got %vx%v", width, height)
	}
	if fovDegrees == 0 {
		fovDegrees = DefaultFOV
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, errors.New(errors.ErrCodeStructural, "field of view must be in (0, 180) degrees, got %v", fovDegrees)
	}
	return &Renderer{
		Width:  width,
		Height: height,
		FOV:    fovDegrees * math.Pi / 180,
		ZNear:  DefaultZNear,
		ZFar:   DefaultZFar,
		Camera: DefaultCamera,
	}, nil
}

// Project maps a world point to canvas coordinates.
func (r *Renderer) Project(p Vec3) Point {
	rx := p.X - r.Camera.X
	ry := p.Y - r.Camera.Y
	rz := p.Z - r.Camera.Z
	if rz == 0 {
		rz = 0.0001
	}
	aspect := r.Width / r.Height
	scale := math.Tan(r.FOV / 2)
	return Point{
		X: (rx/(rz*scale*aspect))*(r.Width/2) + r.Width/2,
		Y: (-ry/(rz*scale))*(r.Height/2) + r.Height/2,
	}
}

func (r *Renderer) line(a, b Vec3, style svg.Style) *svg.Node {
	pa, pb := r.Project(a), r.Project(b)
	return element.Line(pa.X, pa.Y, pb.X, pb.Y, style)
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // front
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // back
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // connecting
}

// Cube returns a g of the 12 projected edges of an axis-aligned cube.
func (r *Renderer) Cube(center Vec3, size float64, style svg.Style) *svg.Node {
	style = style.Or(svg.Style{Fill: svg.DefaultFill, Stroke: svg.DefaultStroke, StrokeWidth: "1"})
	h := size / 2
	c := center
	v := [8]Vec3{
		{c.X - h, c.Y - h, c.Z - h},
		{c.X + h, c.Y - h, c.Z - h},
		{c.X + h, c.Y + h, c.Z - h},
		{c.X - h, c.Y + h, c.Z - h},
		{c.X - h, c.Y - h, c.Z + h},
		{c.X + h, c.Y - h, c.Z + h},
		{c.X + h, c.Y + h, c.Z + h},
		{c.X - h, c.Y + h, c.Z + h},
	}
	g := svg.NewElement("g")
	for _, e := range cubeEdges {
		g.AppendChild(r.line(v[e[0]], v[e[1]], style))
	}
	return g
}

// Grid returns a g of 2·(divisions+1)² lines: one family parallel to x and
// one parallel to y, repeated at every z step.
func (r *Renderer) Grid(center Vec3, size float64, divisions int, style svg.Style) (*svg.Node, error) {
	if divisions < 1 {
		return nil, errors.New(errors.ErrCodeStructural, "grid needs at least 1 division, got %d", divisions)
	}
	style = style.Or(svg.Style{Stroke: "#888", StrokeWidth: svg.DefaultStrokeWidth})
	h := size / 2
	step := size / float64(divisions)
	c := center

	g := svg.NewElement("g")
	for i := 0; i <= divisions; i++ {
		z := c.Z - h + float64(i)*step
		for j := 0; j <= divisions; j++ {
			y := c.Y - h + float64(j)*step
			g.AppendChild(r.line(Vec3{c.X - h, y, z}, Vec3{c.X + h, y, z}, style))
		}
	}
	for i := 0; i <= divisions; i++ {
		z := c.Z - h + float64(i)*step
		for j := 0; j <= divisions; j++ {
			x := c.X - h + float64(j)*step
			g.AppendChild(r.line(Vec3{x, c.Y - h, z}, Vec3{x, c.Y + h, z}, style))
		}
	}
	return g, nil
}

// Radial returns a g of concentric rings on the y=0 plane, each a closed
// path, followed by spokes from the origin.
func (r *Renderer) Radial(radius float64, segments, rings int, style svg.Style) (*svg.Node, error) {
	if segments < 1 || rings < 1 {
		return nil, errors.New(errors.ErrCodeStructural, "radial pattern needs segments and rings >= 1, got %d and %d", segments, rings)
	}
	style = style.Or(svg.Style{Fill: svg.DefaultFill, Stroke: "#444", StrokeWidth: svg.DefaultStrokeWidth})

	g := svg.NewElement("g")
	for ring := 1; ring <= rings; ring++ {
		cr := radius * float64(ring) / float64(rings)
		var d element.PathData
		for s := range segments {
			angle := 2 * math.Pi * float64(s) / float64(segments)
			p := r.Project(Vec3{cr * math.Cos(angle), 0, cr * math.Sin(angle)})
			if s == 0 {
				d.MoveTo(p.X, p.Y)
			} else {
				d.LineTo(p.X, p.Y)
			}
		}
		d.Close()
		g.AppendChild(element.Path(d.String(), style))
	}
	for s := range segments {
		angle := 2 * math.Pi * float64(s) / float64(segments)
		g.AppendChild(r.line(Vec3{}, Vec3{radius * math.Cos(angle), 0, radius * math.Sin(angle)}, style))
	}
	return g, nil
}
