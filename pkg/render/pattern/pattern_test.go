package pattern

import (
	"strings"
	"testing"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

func TestNewWeb(t *testing.T) {
	tests := []struct {
		points int
		paths  int
	}{
		{2, 1},
		{4, 6},
		{36, 630},
	}
	for _, tt := range tests {
		g, err := NewWeb(Web{CX: 400, CY: 300, Radius: 200, Points: tt.points}, svg.Style{})
		if err != nil {
			t.Fatalf("NewWeb(%d) error: %v", tt.points, err)
		}
		if len(g.Children) != tt.paths {
			t.Errorf("NewWeb(%d) has %d paths, want %d", tt.points, len(g.Children), tt.paths)
		}
	}
}

func TestNewWebGeometry(t *testing.T) {
	g, err := NewWeb(Web{CX: 10, CY: 10, Radius: 5, Points: 2}, svg.Style{Stroke: "#2266aa"})
	if err != nil {
		t.Fatal(err)
	}
	p := g.Children[0]
	if d, _ := p.Attr("d"); !strings.HasPrefix(d, "M 15,10 L 5,") {
		t.Errorf("d = %q", d)
	}
	if s, _ := p.Attr("stroke"); s != "#2266aa" {
		t.Errorf("stroke = %q", s)
	}
	if w, _ := p.Attr("stroke-width"); w != svg.DefaultStrokeWidth {
		t.Errorf("stroke-width = %q", w)
	}
}

func TestNewSpiral(t *testing.T) {
	g, err := NewSpiral(Spiral{CX: 0, CY: 0, StartRadius: 0, EndRadius: 10, Turns: 1, Points: 5}, svg.Style{})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Children) != 1 {
		t.Fatalf("NewSpiral() has %d children", len(g.Children))
	}
	d, _ := g.Children[0].Attr("d")
	if !strings.HasPrefix(d, "M 0,0 L ") {
		t.Errorf("spiral should start at the center, got %q", d)
	}
	if n := strings.Count(d, "L"); n != 4 {
		t.Errorf("spiral has %d segments, want 4", n)
	}
	if i := strings.LastIndex(d, "L "); !strings.HasPrefix(d[i:], "L 10,") {
		t.Errorf("spiral should end on the outer radius, got %q", d)
	}
}

func TestNewLissajous(t *testing.T) {
	p, err := NewLissajous(Lissajous{CX: 50, CY: 50, A: 40, B: 40, FreqA: 3, FreqB: 2, Phase: 0, Points: 100}, svg.Style{})
	if err != nil {
		t.Fatal(err)
	}
	d, _ := p.Attr("d")
	if !strings.HasPrefix(d, "M 50,50 ") || !strings.HasSuffix(d, " Z") {
		t.Errorf("unexpected path data %q", d[:20])
	}
	if fill, _ := p.Attr("fill"); fill != "none" {
		t.Errorf("fill = %q, want none", fill)
	}
}

func TestTooFewPoints(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"web", func() error { _, err := NewWeb(Web{Points: 1}, svg.Style{}); return err }},
		{"spiral", func() error { _, err := NewSpiral(Spiral{Points: 1}, svg.Style{}); return err }},
		{"lissajous", func() error { _, err := NewLissajous(Lissajous{Points: 0}, svg.Style{}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, errors.ErrCodeStructural) {
				t.Errorf("error = %v, want STRUCTURAL_VIOLATION", err)
			}
		})
	}
}
