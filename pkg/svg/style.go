package svg

// Style carries the presentation attributes a producer writes onto the
// elements it creates. Empty fields are omitted.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth string
	Opacity     string

	// Extra attributes appended after the standard ones, in order.
	Extra []Attr
}

// Or returns s with every empty field filled from defaults.
func (s Style) Or(defaults Style) Style {
	if s.Fill == "" {
		s.Fill = defaults.Fill
	}
	if s.Stroke == "" {
		s.Stroke = defaults.Stroke
	}
	if s.StrokeWidth == "" {
		s.StrokeWidth = defaults.StrokeWidth
	}
	if s.Opacity == "" {
		s.Opacity = defaults.Opacity
	}
	if len(s.Extra) == 0 {
		s.Extra = defaults.Extra
	}
	return s
}

// Attrs returns the non-empty fields as attributes.
func (s Style) Attrs() []Attr {
	var out []Attr
	add := func(name, value string) {
		if value != "" {
			out = append(out, Attr{Name: name, Value: value})
		}
	}
	add("fill", s.Fill)
	add("stroke", s.Stroke)
	add("stroke-width", s.StrokeWidth)
	add("opacity", s.Opacity)
	return append(out, s.Extra...)
}

// Apply writes the style onto n.
func (s Style) Apply(n *Node) {
	for _, a := range s.Attrs() {
		n.SetAttr(a.Name, a.Value)
	}
}
