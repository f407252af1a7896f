package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/svgbudget/pkg/compliance"
)

func TestStageChanges(t *testing.T) {
	trace := []compliance.StageTrace{
		{Level: "sanitize", Stage: "sanitize", Output: "b"},
		{Level: "L1", Stage: "prune", Output: "b", Skipped: true},
		{Level: "L1", Stage: "precision", Output: "c"},
	}
	got := stageChanges("a", trace)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := [][2]string{{"a", "b"}, {"b", "b"}, {"b", "c"}}
	for i, ch := range got {
		if ch.Before != want[i][0] || ch.After != want[i][1] {
			t.Errorf("change %d = %q → %q, want %q → %q", i, ch.Before, ch.After, want[i][0], want[i][1])
		}
	}
}

func TestDiffCounts(t *testing.T) {
	diffs := diffText(`<path d="M1.2345 2.5"/>`, `<path d="M1.2 2.5"/>`)
	ins, del := diffCounts(diffs)
	if ins != 0 || del != 3 {
		t.Errorf("counts = +%d -%d, want +0 -3", ins, del)
	}

	ins, del = diffCounts(diffText("same", "same"))
	if ins != 0 || del != 0 {
		t.Errorf("identical texts: +%d -%d", ins, del)
	}
}

func TestElide(t *testing.T) {
	long := strings.Repeat("x", 200)
	tests := []struct {
		name       string
		head, tail bool
		wantRunes  int
	}{
		{"between changes", true, true, 2*diffContext + 1},
		{"after last change", true, false, diffContext + 1},
		{"before first change", false, true, diffContext + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := elide(long, tt.head, tt.tail)
			if n := strings.Count(got, "x") + strings.Count(got, "…"); n != tt.wantRunes {
				t.Errorf("kept %d runes, want %d", n, tt.wantRunes)
			}
		})
	}

	short := "abc"
	if got := elide(short, true, true); !strings.Contains(got, short) {
		t.Errorf("short run elided: %q", got)
	}
}

func TestRenderDiffKeepsChanges(t *testing.T) {
	before := strings.Repeat("a", 100) + "OLD" + strings.Repeat("b", 100)
	after := strings.Repeat("a", 100) + "NEW" + strings.Repeat("b", 100)
	out := renderDiff(diffText(before, after))
	for _, want := range []string{"OLD", "NEW", "…"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered diff missing %q", want)
		}
	}
}
