package compliance

import "github.com/matzehuels/svgbudget/pkg/svg"

// RemoveNonessential returns a stage that deletes title and desc elements
// and then every g left without children, innermost first.
func RemoveNonessential() Stage {
	return TreeStage("remove-nonessential", func(doc *svg.Document) error {
		removeNonessential(doc.Root)
		return nil
	})
}

func removeNonessential(n *svg.Node) {
	for _, c := range n.Elements() {
		switch c.Local() {
		case "title", "desc":
			c.Remove()
			continue
		}
		removeNonessential(c)
		if c.Local() == "g" && len(c.Children) == 0 {
			c.Remove()
		}
	}
}
