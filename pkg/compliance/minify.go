package compliance

import (
	"regexp"
	"strings"

	"github.com/matzehuels/svgbudget/pkg/svg"
)

// startTag matches everything from a start tag's "<name" up to the point
// where a removable attribute begins. Processing instructions and
// declarations never match, so <?xml version="1.0"?> is left alone.
const startTag = `(<[A-Za-z_][^<>?!]*?)`

var (
	wsRunRe    = regexp.MustCompile(`\s+`)
	betweenRe  = regexp.MustCompile(`>\s+<`)
	assignRe   = regexp.MustCompile(`\s*=\s*"`)
	tagCloseRe = regexp.MustCompile(`\s+(/?>)`)

	removableAttrRes = buildRemovableAttrRes()
)

func buildRemovableAttrRes() []*regexp.Regexp {
	res := []*regexp.Regexp{
		regexp.MustCompile(startTag + `\s+version="[^"]*"`),
	}
	for _, a := range svg.DefaultAttributes {
		if svg.InheritedProperties[a.Name] {
			continue
		}
		res = append(res, regexp.MustCompile(startTag+`\s+`+regexp.QuoteMeta(a.Name)+`="`+regexp.QuoteMeta(a.Value)+`"`))
	}
	return res
}

// Minify returns a textual stage that collapses whitespace between tags and
// around attribute syntax, then drops the version attribute and any
// attribute set to its SVG initial value. Inherited properties are only
// dropped when the text parses, since that needs the ancestor chain.
func Minify() Stage {
	return TextStage("minify", func(text string) string {
		return removeInheritedDefaults(minify(text))
	})
}

// removeInheritedDefaults drops inherited properties set to their initial
// value where no ancestor overrides them. Unparseable text and text with
// nothing to drop are returned unchanged.
func removeInheritedDefaults(text string) string {
	doc, err := svg.Parse(text)
	if err != nil {
		return text
	}
	removed := 0
	doc.Root.Walk(func(n *svg.Node) bool {
		if n.IsElement() {
			removed += removeDefaults(n)
		}
		return true
	})
	if removed == 0 {
		return text
	}
	return doc.String()
}

func minify(text string) string {
	text = wsRunRe.ReplaceAllString(text, " ")
	text = betweenRe.ReplaceAllString(text, "><")
	text = assignRe.ReplaceAllString(text, `="`)
	text = tagCloseRe.ReplaceAllString(text, "$1")
	for _, re := range removableAttrRes {
		text = re.ReplaceAllString(text, "$1")
	}
	return strings.TrimSpace(text)
}
