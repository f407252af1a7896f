package scene

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/svgbudget/pkg/errors"
)

func TestLoadSpecDemoFile(t *testing.T) {
	spec, err := LoadSpec(filepath.Join("..", "..", "examples", "scenes", "demo.toml"))
	if err != nil {
		t.Fatalf("LoadSpec() error = %v", err)
	}
	if diff := cmp.Diff(Demo(), spec); diff != "" {
		t.Errorf("demo.toml differs from Demo() (-want +got):\n%s", diff)
	}
}

func TestLoadSpecYAMLExample(t *testing.T) {
	spec, err := LoadSpec(filepath.Join("..", "..", "examples", "scenes", "chords.yaml"))
	if err != nil {
		t.Fatalf("LoadSpec() error = %v", err)
	}
	c, err := Build(context.Background(), spec)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(c.Render(), "service dependencies") {
		t.Error("label text missing from render")
	}
}

func TestLoadSpecErrors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "scene.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"empty path", "", errors.ErrCodeInvalidInput},
		{"unknown extension", txt, errors.ErrCodeInvalidFormat},
		{"missing file", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpec(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadSpec() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParseSpec(t *testing.T) {
	const tomlScene = `
width = 100.0
height = 50.0

[[layers]]
id = "shapes"
z = 1

  [[layers.items]]
  kind = "line"
  x1 = 0.0
  y1 = 0.0
  x2 = 100.0
  y2 = 50.0
  stroke = "#000"
`
	const yamlScene = `
width: 100
height: 50
layers:
  - id: shapes
    z: 1
    items:
      - kind: line
        x1: 0
        y1: 0
        x2: 100
        y2: 50
        stroke: "#000"
`
	want := &Spec{
		Width:  100,
		Height: 50,
		Layers: []LayerSpec{{ID: "shapes", Z: 1, Items: []Item{
			{Kind: KindLine, X2: 100, Y2: 50, Stroke: "#000"},
		}}},
	}
	for _, tt := range []struct{ format, data string }{
		{FormatTOML, tomlScene},
		{FormatYAML, yamlScene},
	} {
		t.Run(tt.format, func(t *testing.T) {
			got, err := ParseSpec([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ParseSpec() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ParseSpec() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSpecInvalid(t *testing.T) {
	tests := []struct {
		name, format, data string
		code               errors.Code
	}{
		{"bad toml", FormatTOML, "width = ", errors.ErrCodeInvalidScene},
		{"unknown yaml field", FormatYAML, "widht: 10\n", errors.ErrCodeInvalidScene},
		{"unknown format", "json5", "{}", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("ParseSpec() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBuildDemo(t *testing.T) {
	c, err := Build(context.Background(), Demo())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// defs+gradient+7 stops, 4 layers, background, 242 grid lines,
	// 630 web paths, circle and banner
	if got, want := c.ElementCount(), 9+4+1+242+630+2; got != want {
		t.Errorf("ElementCount() = %d, want %d", got, want)
	}
	out := c.Render()
	for _, want := range []string{
		`<linearGradient id="rainbowGradient"`,
		`fill="url(#rainbowGradient)"`,
		`fill-opacity="0.7"`,
		`rx="10" ry="10"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %s", want)
		}
	}
	order := []string{`id="background"`, `id="grid"`, `id="patterns"`, `id="foreground"`}
	last := -1
	for _, id := range order {
		i := strings.Index(out, id)
		if i < last {
			t.Errorf("layer %s out of z order", id)
		}
		last = i
	}
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600" viewBox="0 0 800 600"><defs>`) {
		t.Errorf("defs is not the root's first child:\n%.200s", out)
	}
	if r := c.Validate(); !r.ElementsOK {
		t.Errorf("demo exceeds the element limit: %+v", r)
	}
}

func TestBuildItems(t *testing.T) {
	tests := []struct {
		name  string
		item  Item
		count int
		want  string
	}{
		{"rect", Item{Kind: KindRect, Width: 4, Height: 2}, 1, `<rect x="0" y="0" width="4" height="2"/>`},
		{"circle", Item{Kind: KindCircle, CX: 1, CY: 2, R: 3, Fill: "red"}, 1, `<circle cx="1" cy="2" r="3" fill="red"/>`},
		{"path", Item{Kind: KindPath, D: "M0,0 L1,1"}, 1, `<path d="M0,0 L1,1"/>`},
		{"text", Item{Kind: KindText, X: 1, Y: 2, Text: "a<b"}, 1, `a&lt;b</text>`},
		{"web", Item{Kind: KindWeb, CX: 10, CY: 10, Radius: 5, Points: 4}, 6, `<path `},
		{"spiral", Item{Kind: KindSpiral, CX: 10, CY: 10, EndRadius: 5, Turns: 2, Points: 20}, 1, `<path `},
		{"lissajous", Item{Kind: KindLissajous, CX: 10, CY: 10, A: 5, B: 5, FreqA: 3, FreqB: 2, Points: 50}, 1, `<path `},
		{"cube", Item{Kind: KindCube, Size: 1}, 12, `<line `},
		{"grid3d", Item{Kind: KindGrid3D, Size: 2, Divisions: 1}, 8, `<line `},
		{"radial3d", Item{Kind: KindRadial3D, Radius: 1, Segments: 4, Rings: 2}, 6, `<path `},
		{"chord matrix", Item{Kind: KindChordMatrix, Matrix: [][]float64{{0, 1}, {2, 0}}, Labels: []string{"a", "b"}}, 0, `>a</text>`},
		{"attrs sorted", Item{Kind: KindRect, Attrs: map[string]string{"ry": "1", "rx": "1"}}, 1, `rx="1" ry="1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &Spec{Layers: []LayerSpec{{ID: "l", Items: []Item{tt.item}}}}
			c, err := Build(context.Background(), spec)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if tt.count > 0 && c.ElementCount() != 1+tt.count {
				t.Errorf("ElementCount() = %d, want %d", c.ElementCount(), 1+tt.count)
			}
			if out := c.Render(); !strings.Contains(out, tt.want) {
				t.Errorf("render missing %s:\n%s", tt.want, out)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		spec *Spec
		code errors.Code
	}{
		{
			name: "unknown kind",
			spec: &Spec{Layers: []LayerSpec{{ID: "l", Items: []Item{{Kind: "hexagon"}}}}},
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "web with one point",
			spec: &Spec{Layers: []LayerSpec{{ID: "l", Items: []Item{{Kind: KindWeb, Points: 1}}}}},
			code: errors.ErrCodeStructural,
		},
		{
			name: "element limit",
			spec: &Spec{MaxElements: 10, Layers: []LayerSpec{{ID: "l", Items: []Item{{Kind: KindWeb, Points: 6}}}}},
			code: errors.ErrCodeElementLimit,
		},
		{
			name: "bad center",
			spec: &Spec{Layers: []LayerSpec{{ID: "l", Items: []Item{{Kind: KindCube, Center: []float64{1}}}}}},
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "graph without graph",
			spec: &Spec{Layers: []LayerSpec{{ID: "l", Items: []Item{{Kind: KindGraph}}}}},
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "empty chord",
			spec: &Spec{Layers: []LayerSpec{{ID: "l", Items: []Item{{Kind: KindChord}}}}},
			code: errors.ErrCodeStructural,
		},
		{
			name: "unknown preset",
			spec: &Spec{Gradients: []GradientSpec{{ID: "g", Preset: "plaid"}}},
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "bad gradient vector",
			spec: &Spec{Gradients: []GradientSpec{{ID: "g", Vector: []float64{0, 1}}}},
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "duplicate layer",
			spec: &Spec{Layers: []LayerSpec{{ID: "l"}, {ID: "l"}}},
			code: errors.ErrCodeInvalidScene,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(context.Background(), tt.spec)
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %s", err, tt.code)
			}
			if c != nil {
				t.Error("Build() returned a composer alongside an error")
			}
		})
	}
}

func TestBuildGradients(t *testing.T) {
	spec := &Spec{Gradients: []GradientSpec{
		{ID: "lin", Vector: []float64{0, 0, 0, 1}, Stops: []StopSpec{{Offset: "0", Color: "#fff"}, {Offset: "1", Color: "#000"}}},
		{ID: "rad", Type: "radial", Circle: []float64{0.5, 0.5, 0.4}, Focal: []float64{0.3, 0.3}},
		{ID: "metal", Preset: "metallic", Base: "#336699"},
	}}
	c, err := Build(context.Background(), spec)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	out := c.Render()
	for _, want := range []string{
		`<linearGradient id="lin"`,
		`<radialGradient id="rad"`,
		`fx="0.3"`,
		`stop-color="#336699"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %s:\n%s", want, out)
		}
	}
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, Demo())
	if err == nil {
		t.Fatal("Build() with canceled context succeeded")
	}
}
