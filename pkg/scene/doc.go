// Package scene composes SVG documents from producer output.
//
// A [Composer] owns one document. Producers from the render packages return
// detached sub-trees which the composer places into named layers, each a g
// element carrying its stacking order in the data-z-index attribute.
// Definitions such as gradients go into a single defs element kept as the
// root's first child. Every element added counts against a configurable
// limit, and [Composer.Validate] reports the rendered size against the
// scene's byte budget.
//
// A [Spec] describes a scene declaratively and decodes from TOML or YAML;
// [Build] turns it into a composer by dispatching each item to its producer.
// [Demo] is the built-in example scene.
package scene
