package compliance

import "github.com/matzehuels/svgbudget/pkg/svg"

// RemoveDefaultAttrs returns a stage that drops presentation attributes set
// to their initial value, id attributes nothing references, and class
// attributes when the document has no style element to select them.
func RemoveDefaultAttrs() Stage {
	return TreeStage("remove-default-attrs", func(doc *svg.Document) error {
		removeDefaultAttrs(doc)
		return nil
	})
}

func removeDefaultAttrs(doc *svg.Document) {
	text := doc.String()
	styled := len(doc.Root.FindAll("style")) > 0

	doc.Root.Walk(func(n *svg.Node) bool {
		if !n.IsElement() {
			return true
		}
		removeDefaults(n)
		if styled {
			return true
		}
		if id, ok := n.Attr("id"); ok && !referenced(text, id) {
			n.RemoveAttr("id")
		}
		n.RemoveAttr("class")
		return true
	})
}

// removeDefaults drops the attributes of n that are set to their initial
// value and reports how many it removed. An inherited property stays when
// the nearest ancestor setting it uses another value.
func removeDefaults(n *svg.Node) int {
	removed := 0
	for _, a := range svg.DefaultAttributes {
		v, ok := n.Attr(a.Name)
		if !ok || v != a.Value {
			continue
		}
		if svg.InheritedProperties[a.Name] && inheritedValue(n, a.Name, a.Value) != a.Value {
			continue
		}
		n.RemoveAttr(a.Name)
		removed++
	}
	return removed
}

// inheritedValue returns the value n would inherit for name, or def when no
// ancestor sets it.
func inheritedValue(n *svg.Node, name, def string) string {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if v, ok := p.Attr(name); ok {
			return v
		}
	}
	return def
}
