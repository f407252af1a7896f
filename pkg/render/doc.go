// Package render groups the producers that emit SVG fragments.
//
// # Overview
//
// Producers are pure functions from parameters to [svg.Node] trees. None
// of them log or touch shared state; structural problems (a non-square
// matrix, too few points) come back as STRUCTURAL_VIOLATION errors before
// any output is built.
//
//   - [element]: Primitives (circle, rect, line, path, text, group)
//   - [gradient]: Linear and radial gradients plus rainbow and metallic presets
//   - [pattern]: String art (circle web, spiral, Lissajous)
//   - [grid3d]: Perspective-projected cube, grid and radial patterns
//   - [chord]: Chord diagrams from relation lists or square matrices
//   - [dot]: Graphviz graphs rendered through go-graphviz
//
// # Example
//
//	web, err := pattern.NewWeb(pattern.Web{CX: 400, CY: 300, Radius: 200, Points: 36}, svg.Style{Stroke: "#2266aa"})
//	grad := gradient.Rainbow("rainbowGradient", true)
//
// The [scene] package places producer output into z-ordered layers.
//
// [svg.Node]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/svg#Node
// [element]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/render/element
// [gradient]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/render/gradient
// [pattern]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/render/pattern
// [grid3d]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/render/grid3d
// [chord]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/render/chord
// [dot]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/render/dot
// [scene]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/scene
package render
