package compliance

import (
	"github.com/matzehuels/svgbudget/pkg/svg"
)

// Stage is one named text-to-text transform.
type Stage struct {
	Name  string
	Apply func(text string) (string, error)
}

// Run applies the stage and reports whether it was skipped because the
// input could not be parsed.
func (s Stage) Run(text string) (out string, skipped bool, err error) {
	out, err = s.Apply(text)
	if err != nil {
		if svg.IsParseError(err) {
			return text, true, nil
		}
		return text, false, err
	}
	return out, false, nil
}

// TreeStage wraps a tree mutation as a Stage: the input is parsed into a
// fresh document, fn mutates it, and the result is re-serialized.
func TreeStage(name string, fn func(doc *svg.Document) error) Stage {
	return Stage{
		Name: name,
		Apply: func(text string) (string, error) {
			doc, err := svg.Parse(text)
			if err != nil {
				return text, err
			}
			if err := fn(doc); err != nil {
				return text, err
			}
			return doc.String(), nil
		},
	}
}

// TextStage wraps a pure string rewrite as a Stage.
func TextStage(name string, fn func(text string) string) Stage {
	return Stage{
		Name: name,
		Apply: func(text string) (string, error) {
			return fn(text), nil
		},
	}
}
