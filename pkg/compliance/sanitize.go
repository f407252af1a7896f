package compliance

import (
	"strings"

	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Sanitize returns the baseline stage. It removes metadata elements,
// comments, and every element, attribute or xmlns declaration whose prefix
// is in namespaces. A nil namespaces slice uses [svg.EditorNamespaces].
func Sanitize(namespaces []string) Stage {
	if namespaces == nil {
		namespaces = svg.EditorNamespaces
	}
	strip := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		strip[ns] = true
	}
	return TreeStage("sanitize", func(doc *svg.Document) error {
		sanitize(doc, strip)
		return nil
	})
}

func sanitize(doc *svg.Document, strip map[string]bool) {
	doc.Prolog = dropComments(doc.Prolog)
	doc.Epilog = dropComments(doc.Epilog)
	doc.Root.Walk(func(n *svg.Node) bool {
		switch n.Kind {
		case svg.CommentNode:
			n.Remove()
			return false
		case svg.ElementNode:
			if n.Local() == "metadata" || strip[n.Prefix()] {
				if n.Parent() != nil {
					n.Remove()
					return false
				}
			}
			for _, a := range n.AttrList() {
				if strippedAttr(a.Name, strip) {
					n.RemoveAttr(a.Name)
				}
			}
		}
		return true
	})
}

func strippedAttr(name string, strip map[string]bool) bool {
	if ns, ok := strings.CutPrefix(name, "xmlns:"); ok {
		return strip[ns]
	}
	return strip[svg.AttrPrefix(name)]
}

func dropComments(nodes []*svg.Node) []*svg.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind != svg.CommentNode {
			out = append(out, n)
		}
	}
	return out
}
