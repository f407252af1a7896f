// Package dot renders node-link diagrams with Graphviz and embeds them in
// scenes.
//
// # Overview
//
// A [Graph] is a small declarative list of nodes and edges. [ToDOT] turns it
// into Graphviz DOT source, [RenderSVG] lays it out in-process and returns
// SVG bytes, and [Embed] parses that output into an [svg.Node] positioned
// inside a scene layer as a nested svg element.
//
//	src := dot.ToDOT(g, dot.Options{})
//	node, err := dot.Embed(ctx, src, dot.Frame{X: 20, Y: 20, Width: 300, Height: 200})
//
// The Graphviz prolog (XML declaration, DOCTYPE and generator comments) is
// dropped during embedding so only the drawing itself reaches the scene.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz as
// WebAssembly, so no system installation is needed.
package dot
