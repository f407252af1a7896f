package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/matzehuels/svgbudget/pkg/compliance"
)

// diffContext is how many unchanged characters are kept on each side of
// a change.
const diffContext = 40

var (
	styleInsert = lipgloss.NewStyle().Foreground(colorGreen)
	styleDelete = lipgloss.NewStyle().Foreground(colorRed).Strikethrough(true)
)

// stageChange is one stage application with the text on both sides.
type stageChange struct {
	Trace  compliance.StageTrace
	Before string
	After  string
}

// stageChanges pairs every traced stage with its input text. The trace
// must have been recorded with snapshots.
func stageChanges(input string, trace []compliance.StageTrace) []stageChange {
	changes := make([]stageChange, 0, len(trace))
	before := input
	for _, st := range trace {
		changes = append(changes, stageChange{Trace: st, Before: before, After: st.Output})
		before = st.Output
	}
	return changes
}

// diffText computes a semantic character diff between two texts.
func diffText(before, after string) []diffpatch.Diff {
	dmp := diffpatch.New()
	multiLine := strings.Contains(before, "\n") && strings.Contains(after, "\n")
	diffs := dmp.DiffMain(before, after, multiLine)
	return dmp.DiffCleanupSemantic(diffs)
}

// diffCounts returns the inserted and deleted character counts.
func diffCounts(diffs []diffpatch.Diff) (inserted, deleted int) {
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			inserted += len(d.Text)
		case diffpatch.DiffDelete:
			deleted += len(d.Text)
		}
	}
	return inserted, deleted
}

// renderDiff styles insertions and deletions and elides long unchanged
// runs down to diffContext characters around each change.
func renderDiff(diffs []diffpatch.Diff) string {
	var b strings.Builder
	for i, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			b.WriteString(styleInsert.Render(d.Text))
		case diffpatch.DiffDelete:
			b.WriteString(styleDelete.Render(d.Text))
		case diffpatch.DiffEqual:
			b.WriteString(elide(d.Text, i > 0, i < len(diffs)-1))
		}
	}
	return b.String()
}

// elide shortens an unchanged run. head keeps its start (a change precedes
// it), tail keeps its end (a change follows it).
func elide(s string, head, tail bool) string {
	keep := 0
	if head {
		keep += diffContext
	}
	if tail {
		keep += diffContext
	}
	r := []rune(s)
	if len(r) <= keep+1 {
		return StyleDim.Render(s)
	}
	var out string
	if head {
		out = string(r[:diffContext])
	}
	out += "…"
	if tail {
		out += string(r[len(r)-diffContext:])
	}
	return StyleDim.Render(out)
}

// printStageDiffs prints the diff of every stage that changed the text.
func printStageDiffs(input string, trace []compliance.StageTrace) {
	for _, ch := range stageChanges(input, trace) {
		if ch.Before == ch.After {
			continue
		}
		diffs := diffText(ch.Before, ch.After)
		ins, del := diffCounts(diffs)
		fmt.Println(StyleTitle.Render(fmt.Sprintf("%s / %s", ch.Trace.Level, ch.Trace.Stage)) +
			StyleDim.Render(fmt.Sprintf("  +%d -%d", ins, del)))
		fmt.Println(renderDiff(diffs))
		printNewline()
	}
}
