// Package pkg provides the libraries behind svgbudget.
//
// # Overview
//
// svgbudget composes SVG scenes from layered producers and brings SVG
// documents under a byte budget. The pkg directory is organized into four
// main areas:
//
//  1. [svg] and [compliance] - The document model and the size optimizer
//  2. [render] and [scene] - Producers and the layered scene composer
//  3. [pipeline] - Orchestration (generate → optimize) with caching and history
//  4. [cache], [store], [api], [config] - Infrastructure around the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	Scene file (TOML/YAML) or SVG document
//	         ↓
//	    [scene] package (layers, z-order, element limit)
//	         ↓
//	    [compliance] package (sanitize, then escalate level by level)
//	         ↓
//	    Compliant or best-effort SVG + stage trace
//
// # Quick Start
//
// Optimize a document directly:
//
//	import "github.com/matzehuels/svgbudget/pkg/compliance"
//
//	budget, _ := compliance.BudgetFromKB(10)
//	res, err := compliance.Optimize(text, budget)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Status, res.Bytes)
//
// Or run a scene through the pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil, logger)
//	res, err := runner.Generate(ctx, scene.Demo(), pipeline.Options{BudgetKB: 10})
//
// # Main Packages
//
//   - [svg]: Ordered-attribute node tree, parser and serializer
//   - [compliance]: Size oracle, stages, profiles and the escalation controller
//   - [render]: Element, gradient, pattern, 3D grid, chord and Graphviz producers
//   - [scene]: Layer registry, composer and declarative scene specs
//   - [pipeline]: Runner tying scene, optimizer, cache and history together
//   - [cache]: File, memory, Redis and null result caches
//   - [store]: JSON-lines and MongoDB run history
//   - [api]: HTTP surface on chi
//   - [config]: Config file and XDG paths
//   - [errors]: Coded errors shared by every package
//   - [observability]: Pipeline, cache and API hooks
//
// [svg]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/svg
// [compliance]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/compliance
// [render]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/render
// [scene]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/store
// [api]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/api
// [config]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/svgbudget/pkg/observability
package pkg
