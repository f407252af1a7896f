package compliance

import (
	"regexp"
	"strings"

	"github.com/matzehuels/svgbudget/pkg/svg"
)

var trailingZerosRe = regexp.MustCompile(`^[-+]?[0-9]*\.0+$`)

// TruncateNumbers returns a stage that rewrites attribute values such as
// "12.000" to "12" and removes comments and processing instructions
// everywhere in the document.
func TruncateNumbers() Stage {
	return TreeStage("truncate-numbers", func(doc *svg.Document) error {
		doc.RemoveMisc()
		doc.Root.Walk(func(n *svg.Node) bool {
			if !n.IsElement() {
				return true
			}
			for _, a := range n.AttrList() {
				if trailingZerosRe.MatchString(a.Value) {
					n.SetAttr(a.Name, truncate(a.Value))
				}
			}
			return true
		})
		return nil
	})
}

func truncate(v string) string {
	whole, _, _ := strings.Cut(v, ".")
	switch strings.TrimLeft(whole, "+-") {
	case "", "0":
		return "0"
	}
	return whole
}
