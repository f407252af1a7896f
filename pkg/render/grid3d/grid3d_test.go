package grid3d

import (
	"math"
	"testing"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(800, 600, 60)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestProject(t *testing.T) {
	r := newRenderer(t)
	scale := math.Tan(math.Pi / 6)

	tests := []struct {
		name string
		in   Vec3
		want Point
	}{
		{"origin maps to center", Vec3{0, 0, 0}, Point{400, 300}},
		{"up is negative y", Vec3{0, 1, 0}, Point{400, (-1/(5*scale))*300 + 300}},
		{"right", Vec3{1, 0, 0}, Point{(1/(5*scale*(800.0/600)))*400 + 400, 300}},
		{"camera plane", Vec3{1, 0, -5}, Point{(1/(0.0001*scale*(800.0/600)))*400 + 400, 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Project(tt.in)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Project(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		fov           float64
	}{
		{"zero height", 800, 0, 60},
		{"negative width", -1, 600, 60},
		{"fov too wide", 800, 600, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.width, tt.height, tt.fov); !errors.Is(err, errors.ErrCodeStructural) {
				t.Errorf("New() error = %v", err)
			}
		})
	}

	r, err := New(800, 600, 0)
	if err != nil || !near(r.FOV, math.Pi/3) {
		t.Errorf("New() with zero fov = %v, %v", r, err)
	}
}

func TestCube(t *testing.T) {
	g := newRenderer(t).Cube(Vec3{}, 2, svg.Style{})
	if len(g.Children) != 12 {
		t.Fatalf("Cube() has %d edges, want 12", len(g.Children))
	}
	for _, l := range g.Children {
		if l.Local() != "line" {
			t.Fatalf("unexpected child %s", l.Tag)
		}
		if w, _ := l.Attr("stroke-width"); w != "1" {
			t.Errorf("stroke-width = %q, want 1", w)
		}
		if f, _ := l.Attr("fill"); f != "none" {
			t.Errorf("fill = %q, want none", f)
		}
	}
}

func TestGrid(t *testing.T) {
	r := newRenderer(t)
	for _, d := range []int{1, 3, 10} {
		g, err := r.Grid(Vec3{}, 300, d, svg.Style{Stroke: "#dddddd"})
		if err != nil {
			t.Fatal(err)
		}
		if want := 2 * (d + 1) * (d + 1); len(g.Children) != want {
			t.Errorf("Grid(%d) has %d lines, want %d", d, len(g.Children), want)
		}
		if s, _ := g.Children[0].Attr("stroke"); s != "#dddddd" {
			t.Errorf("stroke = %q", s)
		}
	}
	if _, err := r.Grid(Vec3{}, 300, 0, svg.Style{}); !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("Grid(0) error = %v", err)
	}
}

func TestRadial(t *testing.T) {
	r := newRenderer(t)
	g, err := r.Radial(2, 36, 5, svg.Style{})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Children) != 5+36 {
		t.Fatalf("Radial() has %d children, want 41", len(g.Children))
	}
	for i, c := range g.Children {
		want := "line"
		if i < 5 {
			want = "path"
		}
		if c.Local() != want {
			t.Errorf("child %d is %s, want %s", i, c.Local(), want)
		}
	}
	if _, err := r.Radial(2, 0, 5, svg.Style{}); !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("Radial(segments=0) error = %v", err)
	}
}
