package compliance

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/svgbudget/pkg/errors"
)

func TestBudgetFromKB(t *testing.T) {
	tests := []struct {
		kb      float64
		want    int
		wantErr bool
	}{
		{kb: 1, want: 1024},
		{kb: 0.5, want: 512},
		{kb: 10, want: 10240},
		{kb: 1.0001, want: 1024},
		{kb: 0, wantErr: true},
		{kb: -3, wantErr: true},
		{kb: math.NaN(), wantErr: true},
		{kb: math.Inf(1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.kb), func(t *testing.T) {
			b, err := BudgetFromKB(tt.kb)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidBudget) {
					t.Errorf("BudgetFromKB(%v) error = %v, want INVALID_BUDGET", tt.kb, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BudgetFromKB(%v) error: %v", tt.kb, err)
			}
			if b.MaxBytes != tt.want {
				t.Errorf("MaxBytes = %d, want %d", b.MaxBytes, tt.want)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	b := Budget{MaxBytes: 4}
	if m := b.Measure("abcd"); !m.Compliant || m.Bytes != 4 {
		t.Errorf("Measure(abcd) = %+v", m)
	}
	// "é" is two bytes in UTF-8.
	if m := b.Measure("abcé"); m.Compliant || m.Bytes != 5 {
		t.Errorf("Measure(abcé) = %+v", m)
	}
}

// repetitiveDoc builds an indented document of n identical-style paths with
// long coordinates and an unused gradient.
func repetitiveDoc(n int) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"800\" height=\"600\">\n")
	b.WriteString("  <title>pattern</title>\n")
	b.WriteString("  <defs>\n    <linearGradient id=\"unused\"><stop offset=\"0\" stop-color=\"#fff\"/></linearGradient>\n  </defs>\n")
	b.WriteString("  <g id=\"patterns\">\n")
	for i := range n {
		fmt.Fprintf(&b, "    <path d=\"M %d.123456,%d.654321 L %d.987654,%d.123456\" fill=\"none\" stroke=\"#2266aa\" stroke-width=\"0.5\" opacity=\"1\"/>\n",
			i, i+1, i+2, i+3)
	}
	b.WriteString("  </g>\n</svg>\n")
	return b.String()
}

func TestOptimizeAlreadyCompliant(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg"><!-- note --><rect width="1" height="1"/></svg>`
	r, err := Optimize(in, Budget{MaxBytes: 10 * 1024})
	if err != nil {
		t.Fatal(err)
	}
	if !r.Compliant() {
		t.Fatalf("Status = %s", r.Status)
	}
	if diff := cmp.Diff([]string{LevelSanitize}, r.Levels); diff != "" {
		t.Errorf("Levels mismatch (-want +got):\n%s", diff)
	}
	if r.Text != `<svg xmlns="http://www.w3.org/2000/svg"><rect width="1" height="1"/></svg>` {
		t.Errorf("Text = %s", r.Text)
	}
	if r.Bytes != len(r.Text) {
		t.Errorf("Bytes = %d, len(Text) = %d", r.Bytes, len(r.Text))
	}
}

func TestOptimizeStopsAtFirstCompliantLevel(t *testing.T) {
	in := repetitiveDoc(5)
	sanitized := apply(t, Sanitize(nil), in)
	l1 := apply(t, ReducePrecision(2), apply(t, PruneDefs(), sanitized))
	if len(l1) >= len(sanitized) {
		t.Fatalf("L1 did not shrink the document: %d >= %d", len(l1), len(sanitized))
	}

	r, err := Optimize(in, Budget{MaxBytes: len(l1)})
	if err != nil {
		t.Fatal(err)
	}
	if !r.Compliant() {
		t.Fatalf("Status = %s", r.Status)
	}
	if diff := cmp.Diff([]string{LevelSanitize, "L1"}, r.Levels); diff != "" {
		t.Errorf("Levels mismatch (-want +got):\n%s", diff)
	}
	if r.Text != l1 {
		t.Errorf("Text differs from manual L1 output")
	}
}

func TestOptimizeExhausted(t *testing.T) {
	in := repetitiveDoc(450)
	if len(in) < 50*1024 {
		t.Fatalf("fixture is %d bytes, want at least 50KB", len(in))
	}
	budget, err := BudgetFromKB(1)
	if err != nil {
		t.Fatal(err)
	}

	r, err := Optimize(in, budget)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != StatusExhausted {
		t.Fatalf("Status = %s, want %s", r.Status, StatusExhausted)
	}
	if diff := cmp.Diff([]string{LevelSanitize, "L1", "L2", "L3", "L4", "max"}, r.Levels); diff != "" {
		t.Errorf("Levels mismatch (-want +got):\n%s", diff)
	}
	if r.Bytes != len(r.Text) || r.RawBytes != len(in) {
		t.Errorf("Bytes = %d, RawBytes = %d", r.Bytes, r.RawBytes)
	}

	var l1Bytes int
	for _, tr := range r.Trace {
		if tr.Level == "L1" {
			l1Bytes = tr.BytesOut
		}
		if tr.BytesOut > tr.BytesIn {
			t.Errorf("%s/%s grew the document: %d -> %d", tr.Level, tr.Stage, tr.BytesIn, tr.BytesOut)
		}
		if tr.Skipped {
			t.Errorf("%s/%s skipped on a well-formed document", tr.Level, tr.Stage)
		}
	}
	if r.Bytes > l1Bytes {
		t.Errorf("final size %d exceeds L1 size %d", r.Bytes, l1Bytes)
	}
	if strings.Contains(r.Text, "unused") || strings.Contains(r.Text, "<title>") {
		t.Error("unused gradient or title survived")
	}

	again, err := Optimize(in, budget)
	if err != nil {
		t.Fatal(err)
	}
	if again.Text != r.Text {
		t.Error("Optimize() is not deterministic")
	}
}

func TestOptimizeTranscodedInput(t *testing.T) {
	in := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><defs><linearGradient id=\"g\"/></defs><text>caf\xe9</text></svg>"

	r, err := Optimize(in, Budget{MaxBytes: 10})
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != StatusExhausted {
		t.Fatalf("Status = %s, want %s", r.Status, StatusExhausted)
	}
	for _, tr := range r.Trace {
		if tr.BytesOut > tr.BytesIn {
			t.Errorf("%s/%s grew the document: %d -> %d", tr.Level, tr.Stage, tr.BytesIn, tr.BytesOut)
		}
		if tr.Skipped {
			t.Errorf("%s/%s skipped", tr.Level, tr.Stage)
		}
	}
	if !strings.Contains(r.Text, "<text>café</text>") {
		t.Errorf("text content mangled: %s", r.Text)
	}
	if strings.Contains(r.Text, "encoding") {
		t.Errorf("stale encoding declaration: %s", r.Text)
	}
}

func TestOptimizeMalformedInput(t *testing.T) {
	in := "<svg>\n  <g>\n</svg>"
	r, err := Optimize(in, Budget{MaxBytes: 1})
	if err != nil {
		t.Fatalf("Optimize() error: %v", err)
	}
	if r.Status != StatusExhausted {
		t.Errorf("Status = %s", r.Status)
	}
	if r.Text != "<svg><g></svg>" {
		t.Errorf("Text = %q", r.Text)
	}
	skipped := map[string]bool{}
	for _, tr := range r.Trace {
		skipped[tr.Stage] = tr.Skipped
	}
	want := map[string]bool{
		"sanitize":             true,
		"prune-defs":           true,
		"precision-2":          false,
		"precision-1":          false,
		"remove-default-attrs": true,
		"minify":               false,
		"group-similar":        true,
		"precision-0":          false,
		"remove-nonessential":  true,
		"truncate-numbers":     true,
	}
	if diff := cmp.Diff(want, skipped); diff != "" {
		t.Errorf("skipped stages mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimizePropagatesStageErrors(t *testing.T) {
	boom := errors.New(errors.ErrCodeInternal, "boom")
	p := Profile{
		Name: "failing",
		Levels: []Level{{Name: "L1", Stages: []Stage{{
			Name:  "explode",
			Apply: func(string) (string, error) { return "", boom },
		}}}},
	}
	_, err := Optimize(repetitiveDoc(3), Budget{MaxBytes: 1}, WithProfile(p))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Optimize() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestOptimizeSnapshots(t *testing.T) {
	r, err := Optimize(repetitiveDoc(10), Budget{MaxBytes: 1}, WithSnapshots())
	if err != nil {
		t.Fatal(err)
	}
	last := r.Trace[len(r.Trace)-1]
	if last.Output != r.Text {
		t.Error("last snapshot differs from result text")
	}
	for _, tr := range r.Trace {
		if len(tr.Output) != tr.BytesOut {
			t.Errorf("%s snapshot has %d bytes, trace says %d", tr.Stage, len(tr.Output), tr.BytesOut)
		}
	}
}

func TestOptimizeWithoutGrouping(t *testing.T) {
	r, err := Optimize(repetitiveDoc(10), Budget{MaxBytes: 1}, WithoutGrouping())
	if err != nil {
		t.Fatal(err)
	}
	for _, tr := range r.Trace {
		if tr.Stage == "group-similar" {
			t.Fatal("group-similar ran with grouping disabled")
		}
	}
}

func TestProfileByName(t *testing.T) {
	for _, name := range ProfileNames() {
		p, err := ProfileByName(name, ProfileConfig{})
		if err != nil {
			t.Fatalf("ProfileByName(%q) error: %v", name, err)
		}
		if p.Name != name {
			t.Errorf("Name = %q, want %q", p.Name, name)
		}
	}
	if _, err := ProfileByName("nope", ProfileConfig{}); !errors.Is(err, errors.ErrCodeInvalidProfile) {
		t.Errorf("ProfileByName(nope) error = %v", err)
	}
}

func TestEnsureCompliance(t *testing.T) {
	in := repetitiveDoc(40)
	text, sizeKB, ok, err := EnsureCompliance(in, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("EnsureCompliance() not compliant under a generous budget")
	}
	if got := float64(len(text)) / 1024; got != sizeKB {
		t.Errorf("sizeKB = %v, want %v", sizeKB, got)
	}

	_, _, ok, err = EnsureCompliance(in, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("EnsureCompliance() compliant under a 100 byte budget")
	}
}
