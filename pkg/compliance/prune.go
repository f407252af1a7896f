package compliance

import "github.com/matzehuels/svgbudget/pkg/svg"

// PruneDefs returns a stage that removes every child of a defs element
// whose id is not referenced anywhere in the document. The decision is made
// once against the full serialized text, so definitions referenced only by
// other definitions survive.
func PruneDefs() Stage {
	return TreeStage("prune-defs", func(doc *svg.Document) error {
		pruneDefs(doc)
		return nil
	})
}

func pruneDefs(doc *svg.Document) int {
	text := doc.String()
	removed := 0
	for _, defs := range doc.Defs() {
		for _, child := range defs.Elements() {
			id, ok := child.Attr("id")
			if !ok || id == "" {
				continue
			}
			if !referenced(text, id) {
				child.Remove()
				removed++
			}
		}
	}
	return removed
}
