package scene

// DemoGradientID is the id of the gradient the demo scene fills its banner
// with.
const DemoGradientID = "rainbowGradient"

// Demo returns the built-in example scene: a background, a projected 3D
// grid, a string-art web and a foreground with a gradient-filled banner.
func Demo() *Spec {
	return &Spec{
		Name:        "demo",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MaxElements: DefaultMaxElements,
		BudgetKB:    DefaultBudgetKB,
		Gradients: []GradientSpec{
			{ID: DemoGradientID, Preset: "rainbow"},
		},
		Layers: []LayerSpec{
			{ID: "background", Z: 0, Items: []Item{
				{Kind: KindRect, X: 0, Y: 0, Width: 800, Height: 600, Fill: "#f0f0f0"},
			}},
			{ID: "grid", Z: 5, Items: []Item{
				{Kind: KindGrid3D, Center: []float64{0, 0, 0}, Size: 300, Divisions: 10, Stroke: "#dddddd", StrokeWidth: "0.5"},
			}},
			{ID: "patterns", Z: 10, Items: []Item{
				{Kind: KindWeb, CX: 400, CY: 300, Radius: 200, Points: 36, Stroke: "#2266aa", StrokeWidth: "0.5"},
			}},
			{ID: "foreground", Z: 15, Items: []Item{
				{Kind: KindCircle, CX: 400, CY: 300, R: 50, Fill: "#aa2266", Attrs: map[string]string{"fill-opacity": "0.7"}},
				{Kind: KindRect, X: 300, Y: 400, Width: 200, Height: 80, Fill: "url(#" + DemoGradientID + ")", Attrs: map[string]string{"rx": "10", "ry": "10"}},
			}},
		},
	}
}
