package scene

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/render/chord"
	"github.com/matzehuels/svgbudget/pkg/render/dot"
	"github.com/matzehuels/svgbudget/pkg/render/element"
	"github.com/matzehuels/svgbudget/pkg/render/gradient"
	"github.com/matzehuels/svgbudget/pkg/render/grid3d"
	"github.com/matzehuels/svgbudget/pkg/render/pattern"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Spec is a declarative scene: canvas, gradient definitions and z-ordered
// layers of producer items. It decodes from TOML, YAML or JSON.
type Spec struct {
	Name        string         `toml:"name" yaml:"name" json:"name,omitempty"`
	Width       float64        `toml:"width" yaml:"width" json:"width,omitempty"`
	Height      float64        `toml:"height" yaml:"height" json:"height,omitempty"`
	MaxElements int            `toml:"max_elements" yaml:"max_elements" json:"max_elements,omitempty"`
	BudgetKB    float64        `toml:"budget_kb" yaml:"budget_kb" json:"budget_kb,omitempty"`
	Gradients   []GradientSpec `toml:"gradients" yaml:"gradients" json:"gradients,omitempty"`
	Layers      []LayerSpec    `toml:"layers" yaml:"layers" json:"layers"`
}

// GradientSpec describes one gradient definition. Preset, when set, wins
// over Type and Stops.
type GradientSpec struct {
	ID     string     `toml:"id" yaml:"id" json:"id"`
	Preset string     `toml:"preset" yaml:"preset" json:"preset,omitempty"`
	Base   string     `toml:"base" yaml:"base" json:"base,omitempty"`
	Type   string     `toml:"type" yaml:"type" json:"type,omitempty"`       // linear (default) or radial
	Vector []float64  `toml:"vector" yaml:"vector" json:"vector,omitempty"` // x1 y1 x2 y2
	Circle []float64  `toml:"circle" yaml:"circle" json:"circle,omitempty"` // cx cy r
	Focal  []float64  `toml:"focal" yaml:"focal" json:"focal,omitempty"`    // fx fy
	Stops  []StopSpec `toml:"stops" yaml:"stops" json:"stops,omitempty"`
}

// StopSpec is one gradient stop.
type StopSpec struct {
	Offset  string `toml:"offset" yaml:"offset" json:"offset"`
	Color   string `toml:"color" yaml:"color" json:"color"`
	Opacity string `toml:"opacity" yaml:"opacity" json:"opacity,omitempty"`
}

// LayerSpec is one z-ordered layer.
type LayerSpec struct {
	ID    string `toml:"id" yaml:"id" json:"id"`
	Z     int    `toml:"z" yaml:"z" json:"z"`
	Items []Item `toml:"items" yaml:"items" json:"items,omitempty"`
}

// Item kinds.
const (
	KindRect        = "rect"
	KindCircle      = "circle"
	KindLine        = "line"
	KindPath        = "path"
	KindText        = "text"
	KindWeb         = "web"
	KindSpiral      = "spiral"
	KindLissajous   = "lissajous"
	KindCube        = "cube"
	KindGrid3D      = "grid3d"
	KindRadial3D    = "radial3d"
	KindChord       = "chord"
	KindChordMatrix = "chord-matrix"
	KindGraph       = "graph"
)

// Kinds lists every item kind in documentation order.
var Kinds = []string{
	KindRect, KindCircle, KindLine, KindPath, KindText,
	KindWeb, KindSpiral, KindLissajous,
	KindCube, KindGrid3D, KindRadial3D,
	KindChord, KindChordMatrix, KindGraph,
}

// Item is one producer invocation. Only the fields its Kind uses are read.
type Item struct {
	Kind string `toml:"kind" yaml:"kind" json:"kind"`

	X      float64 `toml:"x" yaml:"x" json:"x,omitempty"`
	Y      float64 `toml:"y" yaml:"y" json:"y,omitempty"`
	Width  float64 `toml:"width" yaml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" yaml:"height" json:"height,omitempty"`
	CX     float64 `toml:"cx" yaml:"cx" json:"cx,omitempty"`
	CY     float64 `toml:"cy" yaml:"cy" json:"cy,omitempty"`
	R      float64 `toml:"r" yaml:"r" json:"r,omitempty"`
	X1     float64 `toml:"x1" yaml:"x1" json:"x1,omitempty"`
	Y1     float64 `toml:"y1" yaml:"y1" json:"y1,omitempty"`
	X2     float64 `toml:"x2" yaml:"x2" json:"x2,omitempty"`
	Y2     float64 `toml:"y2" yaml:"y2" json:"y2,omitempty"`
	D      string  `toml:"d" yaml:"d" json:"d,omitempty"`
	Text   string  `toml:"text" yaml:"text" json:"text,omitempty"`

	Points      int     `toml:"points" yaml:"points" json:"points,omitempty"`
	Radius      float64 `toml:"radius" yaml:"radius" json:"radius,omitempty"`
	StartRadius float64 `toml:"start_radius" yaml:"start_radius" json:"start_radius,omitempty"`
	EndRadius   float64 `toml:"end_radius" yaml:"end_radius" json:"end_radius,omitempty"`
	Turns       float64 `toml:"turns" yaml:"turns" json:"turns,omitempty"`
	A           float64 `toml:"a" yaml:"a" json:"a,omitempty"`
	B           float64 `toml:"b" yaml:"b" json:"b,omitempty"`
	FreqA       float64 `toml:"freq_a" yaml:"freq_a" json:"freq_a,omitempty"`
	FreqB       float64 `toml:"freq_b" yaml:"freq_b" json:"freq_b,omitempty"`
	Phase       float64 `toml:"phase" yaml:"phase" json:"phase,omitempty"`

	Center    []float64 `toml:"center" yaml:"center" json:"center,omitempty"`
	Size      float64   `toml:"size" yaml:"size" json:"size,omitempty"`
	Divisions int       `toml:"divisions" yaml:"divisions" json:"divisions,omitempty"`
	Segments  int       `toml:"segments" yaml:"segments" json:"segments,omitempty"`
	Rings     int       `toml:"rings" yaml:"rings" json:"rings,omitempty"`
	FOV       float64   `toml:"fov" yaml:"fov" json:"fov,omitempty"`

	Relations []chord.Relation `toml:"relations" yaml:"relations" json:"relations,omitempty"`
	Matrix    [][]float64      `toml:"matrix" yaml:"matrix" json:"matrix,omitempty"`
	Labels    []string         `toml:"labels" yaml:"labels" json:"labels,omitempty"`

	Graph   *dot.Graph `toml:"graph" yaml:"graph" json:"graph,omitempty"`
	RankDir string     `toml:"rankdir" yaml:"rankdir" json:"rankdir,omitempty"`

	Fill        string            `toml:"fill" yaml:"fill" json:"fill,omitempty"`
	Stroke      string            `toml:"stroke" yaml:"stroke" json:"stroke,omitempty"`
	StrokeWidth string            `toml:"stroke_width" yaml:"stroke_width" json:"stroke_width,omitempty"`
	Opacity     string            `toml:"opacity" yaml:"opacity" json:"opacity,omitempty"`
	Attrs       map[string]string `toml:"attrs" yaml:"attrs" json:"attrs,omitempty"`
}

// Style returns the item's presentation attributes. Free-form attrs are
// appended in sorted key order.
func (it Item) Style() svg.Style {
	s := svg.Style{Fill: it.Fill, Stroke: it.Stroke, StrokeWidth: it.StrokeWidth, Opacity: it.Opacity}
	for _, k := range slices.Sorted(maps.Keys(it.Attrs)) {
		s.Extra = append(s.Extra, svg.Attr{Name: k, Value: it.Attrs[k]})
	}
	return s
}

func (it Item) center() (grid3d.Vec3, error) {
	switch len(it.Center) {
	case 0:
		return grid3d.Vec3{}, nil
	case 3:
		return grid3d.Vec3{X: it.Center[0], Y: it.Center[1], Z: it.Center[2]}, nil
	}
	return grid3d.Vec3{}, errors.New(errors.ErrCodeInvalidScene, "center needs 3 coordinates, got %d", len(it.Center))
}

// Formats accepted by ParseSpec.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatFromPath infers the spec format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format from %q (want .toml, .yaml or .yml)", path)
}

// LoadSpec reads a scene spec from a TOML or YAML file.
func LoadSpec(path string) (*Spec, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, err
	}
	return ParseSpec(data, format)
}

// ParseSpec decodes a scene spec in the given format.
func ParseSpec(data []byte, format string) (*Spec, error) {
	var spec Spec
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode TOML scene")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode YAML scene")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	return &spec, nil
}

// Build composes the scene. Any producer failure aborts the build; no
// partially built composer is returned.
func Build(ctx context.Context, spec *Spec) (*Composer, error) {
	c, err := NewComposer(Options{
		Width:       spec.Width,
		Height:      spec.Height,
		MaxElements: spec.MaxElements,
		BudgetKB:    spec.BudgetKB,
	})
	if err != nil {
		return nil, err
	}

	for i, gs := range spec.Gradients {
		def, err := buildGradient(gs)
		if err != nil {
			return nil, fmt.Errorf("gradient %d: %w", i, err)
		}
		if err := c.AddDef(def); err != nil {
			return nil, fmt.Errorf("gradient %q: %w", gs.ID, err)
		}
	}

	width, height := spec.Width, spec.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	canvas := canvas{width: width, height: height}

	for _, ls := range spec.Layers {
		if err := c.CreateLayer(ls.ID, ls.Z); err != nil {
			return nil, err
		}
		for j, it := range ls.Items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := addItem(ctx, c, ls.ID, it, canvas); err != nil {
				return nil, fmt.Errorf("layer %q item %d (%s): %w", ls.ID, j, it.Kind, err)
			}
		}
	}
	c.ArrangeLayers()
	return c, nil
}

func buildGradient(gs GradientSpec) (*svg.Node, error) {
	if gs.Preset != "" {
		n, ok := gradient.Preset(gs.Preset, gs.ID, gs.Base)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown gradient preset %q (available: %s)", gs.Preset, strings.Join(gradient.Presets, ", "))
		}
		return n, nil
	}
	stops := make([]gradient.Stop, len(gs.Stops))
	for i, s := range gs.Stops {
		stops[i] = gradient.Stop{Offset: s.Offset, Color: s.Color, Opacity: s.Opacity}
	}
	switch gs.Type {
	case "", "linear":
		v := gradient.Horizontal
		if len(gs.Vector) > 0 {
			if len(gs.Vector) != 4 {
				return nil, errors.New(errors.ErrCodeInvalidScene, "vector needs 4 values, got %d", len(gs.Vector))
			}
			v = gradient.Vector{X1: gs.Vector[0], Y1: gs.Vector[1], X2: gs.Vector[2], Y2: gs.Vector[3]}
		}
		return gradient.Linear(gs.ID, v, stops...), nil
	case "radial":
		c := gradient.Centered
		if len(gs.Circle) > 0 {
			if len(gs.Circle) != 3 {
				return nil, errors.New(errors.ErrCodeInvalidScene, "circle needs 3 values, got %d", len(gs.Circle))
			}
			c = gradient.Circle{CX: gs.Circle[0], CY: gs.Circle[1], R: gs.Circle[2]}
		}
		if len(gs.Focal) > 0 {
			if len(gs.Focal) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidScene, "focal needs 2 values, got %d", len(gs.Focal))
			}
			c.Focal = &gradient.Focal{X: gs.Focal[0], Y: gs.Focal[1]}
		}
		return gradient.Radial(gs.ID, c, stops...), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "unknown gradient type %q", gs.Type)
}

type canvas struct {
	width, height float64
}

func addItem(ctx context.Context, c *Composer, layer string, it Item, cv canvas) error {
	style := it.Style()
	switch it.Kind {
	case KindRect:
		return c.Add(layer, element.Rect(it.X, it.Y, it.Width, it.Height, style))
	case KindCircle:
		return c.Add(layer, element.Circle(it.CX, it.CY, it.R, style))
	case KindLine:
		return c.Add(layer, element.Line(it.X1, it.Y1, it.X2, it.Y2, style))
	case KindPath:
		return c.Add(layer, element.Path(it.D, style))
	case KindText:
		return c.Add(layer, element.Text(it.X, it.Y, it.Text, style))

	case KindWeb:
		g, err := pattern.NewWeb(pattern.Web{CX: it.CX, CY: it.CY, Radius: it.Radius, Points: it.Points}, style)
		if err != nil {
			return err
		}
		return c.AddChildren(layer, g)
	case KindSpiral:
		g, err := pattern.NewSpiral(pattern.Spiral{
			CX: it.CX, CY: it.CY, StartRadius: it.StartRadius, EndRadius: it.EndRadius, Turns: it.Turns, Points: it.Points,
		}, style)
		if err != nil {
			return err
		}
		return c.AddChildren(layer, g)
	case KindLissajous:
		p, err := pattern.NewLissajous(pattern.Lissajous{
			CX: it.CX, CY: it.CY, A: it.A, B: it.B, FreqA: it.FreqA, FreqB: it.FreqB, Phase: it.Phase, Points: it.Points,
		}, style)
		if err != nil {
			return err
		}
		return c.Add(layer, p)

	case KindCube, KindGrid3D, KindRadial3D:
		r, err := grid3d.New(cv.width, cv.height, it.FOV)
		if err != nil {
			return err
		}
		center, err := it.center()
		if err != nil {
			return err
		}
		var g *svg.Node
		switch it.Kind {
		case KindCube:
			g = r.Cube(center, it.Size, style)
		case KindGrid3D:
			g, err = r.Grid(center, it.Size, it.Divisions, style)
		default:
			g, err = r.Radial(it.Radius, it.Segments, it.Rings, style)
		}
		if err != nil {
			return err
		}
		return c.AddChildren(layer, g)

	case KindChord, KindChordMatrix:
		opts := chord.Options{
			Width: cv.width, Height: cv.height, Radius: it.Radius,
			Stroke: it.Stroke, EntityFill: it.Fill,
		}
		var g *svg.Node
		var err error
		if it.Kind == KindChord {
			g, err = chord.FromRelations(it.Relations, opts)
		} else {
			g, err = chord.FromMatrix(it.Matrix, it.Labels, opts)
		}
		if err != nil {
			return err
		}
		return c.Add(layer, g)

	case KindGraph:
		if it.Graph == nil {
			return errors.New(errors.ErrCodeInvalidScene, "graph item has no graph")
		}
		if err := it.Graph.Validate(); err != nil {
			return err
		}
		n, err := dot.Embed(ctx, dot.ToDOT(*it.Graph, dot.Options{RankDir: it.RankDir}),
			dot.Frame{X: it.X, Y: it.Y, Width: it.Width, Height: it.Height})
		if err != nil {
			return err
		}
		return c.Add(layer, n)
	}
	return errors.New(errors.ErrCodeInvalidScene, "unknown item kind %q (available: %s)", it.Kind, strings.Join(Kinds, ", "))
}
