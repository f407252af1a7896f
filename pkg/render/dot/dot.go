package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Node is a labeled graph vertex. An empty Label shows the ID.
type Node struct {
	ID    string `toml:"id" yaml:"id" json:"id"`
	Label string `toml:"label" yaml:"label" json:"label,omitempty"`
	Fill  string `toml:"fill" yaml:"fill" json:"fill,omitempty"`
}

// Edge is a directed connection between two node IDs.
type Edge struct {
	From string `toml:"from" yaml:"from" json:"from"`
	To   string `toml:"to" yaml:"to" json:"to"`
}

// Graph is the input to ToDOT.
type Graph struct {
	Nodes []Node `toml:"nodes" yaml:"nodes" json:"nodes"`
	Edges []Edge `toml:"edges" yaml:"edges" json:"edges"`
}

// Options configures DOT generation.
type Options struct {
	// RankDir is the Graphviz rankdir, default TB.
	RankDir string
	// FontSize for node labels, default 14.
	FontSize int
}

// Validate checks that every edge refers to a declared node and that IDs
// are unique.
func (g Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeStructural, "graph node has an empty id")
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeStructural, "duplicate graph node %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range g.Edges {
		if !seen[e.From] || !seen[e.To] {
			return errors.New(errors.ErrCodeStructural, "edge %s -> %s refers to an unknown node", e.From, e.To)
		}
	}
	return nil
}

// ToDOT converts a graph to Graphviz DOT source.
func ToDOT(g Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}
	fontsize := opts.FontSize
	if fontsize <= 0 {
		fontsize = 14
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=%d, margin=\"0.2,0.1\"];\n", fontsize)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if n.Fill != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Fill))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out DOT source with Graphviz and returns the SVG output
// with a viewBox anchored at the origin.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Frame is where an embedded diagram is placed in the scene.
type Frame struct {
	X, Y, Width, Height float64
}

var viewBoxRe = regexp.MustCompile(`^\s*(-?[0-9.]+)[\s,]+(-?[0-9.]+)[\s,]+([0-9.]+)[\s,]+([0-9.]+)\s*$`)

// Embed renders dot and returns its root as a nested svg element placed in
// frame. Zero frame dimensions keep the size Graphviz chose.
func Embed(ctx context.Context, dot string, frame Frame) (*svg.Node, error) {
	out, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return embedSVG(out, frame)
}

func embedSVG(out []byte, frame Frame) (*svg.Node, error) {
	doc, err := svg.ParseReader(bytes.NewReader(out))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformed, err, "graphviz output")
	}
	root := doc.Root

	// Graphviz sizes in points ("260pt"); the scene works in user units.
	if vb, ok := root.Attr("viewBox"); ok {
		if m := viewBoxRe.FindStringSubmatch(vb); m != nil {
			root.SetAttr("viewBox", "0 0 "+m[3]+" "+m[4])
			root.SetAttr("width", m[3])
			root.SetAttr("height", m[4])
		}
	}
	root.SetAttr("x", svg.Num(frame.X))
	root.SetAttr("y", svg.Num(frame.Y))
	if frame.Width > 0 {
		root.SetAttr("width", svg.Num(frame.Width))
	}
	if frame.Height > 0 {
		root.SetAttr("height", svg.Num(frame.Height))
	}
	root.RemoveAttr("xmlns")
	return root, nil
}
