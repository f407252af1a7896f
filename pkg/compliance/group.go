package compliance

import (
	"strings"

	"cogentcore.org/core/base/ordmap"
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// MinGroupSize is the smallest number of elements sharing a style that
// GroupSimilar will hoist into a group.
const MinGroupSize = 3

// GroupSimilar returns a stage that buckets graphics elements by their
// values for [svg.StyleAttributes] and, for every bucket of at least
// [MinGroupSize] elements, moves them into a new g carrying the shared
// attributes. Groups are appended to the root in first-appearance order,
// which changes paint order.
//
// Only elements whose ancestors are all plain g elements (no attributes
// beyond id and data-*) are moved, so no inherited value or transform is
// lost by reparenting.
func GroupSimilar() Stage {
	return TreeStage("group-similar", func(doc *svg.Document) error {
		groupSimilar(doc)
		return nil
	})
}

type styleBucket struct {
	attrs []svg.Attr
	nodes []*svg.Node
}

func groupSimilar(doc *svg.Document) int {
	buckets := ordmap.New[string, *styleBucket]()
	collectGroupable(doc.Root, func(n *svg.Node) {
		attrs := styleKey(n)
		if len(attrs) == 0 {
			return
		}
		key := keyString(attrs)
		b, ok := buckets.ValueByKeyTry(key)
		if !ok {
			b = &styleBucket{attrs: attrs}
			buckets.Add(key, b)
		}
		b.nodes = append(b.nodes, n)
	})

	groups := 0
	for _, kv := range buckets.Order {
		b := kv.Value
		if len(b.nodes) < MinGroupSize {
			continue
		}
		g := svg.NewElement("g", b.attrs...)
		for _, n := range b.nodes {
			for _, a := range b.attrs {
				n.RemoveAttr(a.Name)
			}
			g.AppendChild(n)
		}
		doc.Root.AppendChild(g)
		groups++
	}
	return groups
}

// collectGroupable visits, in document order, the graphics elements that
// can be reparented to the root without changing what they inherit.
func collectGroupable(parent *svg.Node, visit func(*svg.Node)) {
	for _, c := range parent.Elements() {
		switch {
		case c.Local() == "g":
			if neutralGroup(c) {
				collectGroupable(c, visit)
			}
		case svg.IsGraphicsElement(c.Local()) && c.Prefix() == "":
			visit(c)
		}
	}
}

func neutralGroup(n *svg.Node) bool {
	for _, a := range n.AttrList() {
		if a.Name != "id" && !strings.HasPrefix(a.Name, "data-") {
			return false
		}
	}
	return true
}

func styleKey(n *svg.Node) []svg.Attr {
	var attrs []svg.Attr
	for _, name := range svg.StyleAttributes {
		if v, ok := n.Attr(name); ok {
			attrs = append(attrs, svg.Attr{Name: name, Value: v})
		}
	}
	return attrs
}

func keyString(attrs []svg.Attr) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(a.Name)
		b.WriteByte(0)
		b.WriteString(a.Value)
		b.WriteByte(0)
	}
	return b.String()
}
