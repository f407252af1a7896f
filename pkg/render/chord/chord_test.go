package chord

import (
	"strconv"
	"testing"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

func children(g *svg.Node, local string) []*svg.Node {
	var out []*svg.Node
	for _, c := range g.Elements() {
		if c.Local() == local {
			out = append(out, c)
		}
	}
	return out
}

func mustFloat(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatalf("ParseFloat(%q): %v", s, err)
	}
	return v
}

func TestFromRelations(t *testing.T) {
	rels := []Relation{
		{Source: "b", Target: "a", Value: 4},
		{Source: "a", Target: "c"},
		{Source: "c", Target: "b", Value: 25},
	}
	g, err := FromRelations(rels, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(children(g, "circle")); n != 3 {
		t.Errorf("got %d entity markers, want 3", n)
	}
	texts := children(g, "text")
	if len(texts) != 3 || texts[0].TextContent() != "a" || texts[2].TextContent() != "c" {
		t.Errorf("labels not in sorted order")
	}

	chords := children(g, "path")
	if len(chords) != 3 {
		t.Fatalf("got %d chords, want 3", len(chords))
	}
	tests := []struct {
		width, opacity string
	}{
		{"4", "0.58"},
		{"1", "0.37"},
		{"10", "1"},
	}
	for i, tt := range tests {
		w, _ := chords[i].Attr("stroke-width")
		o, _ := chords[i].Attr("opacity")
		if w != tt.width || svg.Round(mustFloat(t, o), 2) != tt.opacity {
			t.Errorf("chord %d: width=%s opacity=%s, want %s %s", i, w, o, tt.width, tt.opacity)
		}
		if s, _ := chords[i].Attr("stroke"); s != "#333" {
			t.Errorf("chord %d stroke = %s", i, s)
		}
	}
}

func TestFromMatrix(t *testing.T) {
	m := [][]float64{
		{0, 5, 0},
		{2, 0, 3},
		{0, 3, 0},
	}
	g, err := FromMatrix(m, []string{"x", "y", "z"}, Options{EntityFills: []string{"#f00"}})
	if err != nil {
		t.Fatal(err)
	}
	paths := children(g, "path")
	// 3 arcs then chords for (0,1) and (1,2); (0,2) has no weight.
	if len(paths) != 5 {
		t.Fatalf("got %d paths, want 5", len(paths))
	}
	if f, _ := paths[0].Attr("fill"); f != "#f00" {
		t.Errorf("arc 0 fill = %s", f)
	}
	if f, _ := paths[1].Attr("fill"); f != "#ccc" {
		t.Errorf("arc 1 fill = %s", f)
	}
	if s, _ := paths[3].Attr("stroke"); s != "#3366cc" {
		t.Errorf("forward chord stroke = %s", s)
	}
	if s, _ := paths[4].Attr("stroke"); s != "#666666" {
		t.Errorf("equal chord stroke = %s", s)
	}
	if w, _ := paths[3].Attr("stroke-width"); w != "7" {
		t.Errorf("combined width = %s, want 7", w)
	}

	g, err = FromMatrix([][]float64{{0, 1}, {4, 0}}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	texts := children(g, "text")
	if texts[1].TextContent() != "Entity 2" {
		t.Errorf("default label = %q", texts[1].TextContent())
	}
	if s, _ := children(g, "path")[2].Attr("stroke"); s != "#cc3366" {
		t.Errorf("backward chord stroke = %s", s)
	}
}

func TestStructuralViolations(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]float64
		labels []string
	}{
		{"empty", nil, nil},
		{"not square", [][]float64{{0, 1}, {1}}, nil},
		{"label mismatch", [][]float64{{0, 1}, {1, 0}}, []string{"only"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromMatrix(tt.matrix, tt.labels, Options{}); !errors.Is(err, errors.ErrCodeStructural) {
				t.Errorf("FromMatrix() error = %v", err)
			}
		})
	}

	for _, rels := range [][]Relation{nil, {{Source: "a"}}} {
		if _, err := FromRelations(rels, Options{}); !errors.Is(err, errors.ErrCodeStructural) {
			t.Errorf("FromRelations(%v) error = %v", rels, err)
		}
	}
}
