package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/scene"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("stage") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("stage") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("stage") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield the default logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestTopStage(t *testing.T) {
	tests := []struct {
		name  string
		trace []compliance.StageTrace
		want  string
		ok    bool
	}{
		{name: "empty"},
		{
			name: "nothing saved",
			trace: []compliance.StageTrace{
				{Level: "sanitize", Stage: "sanitize", BytesIn: 40, BytesOut: 40},
				{Level: "L1", Stage: "prune-defs", BytesIn: 40, BytesOut: 30, Skipped: true},
			},
		},
		{
			name: "largest saving",
			trace: []compliance.StageTrace{
				{Level: "sanitize", Stage: "sanitize", BytesIn: 100, BytesOut: 90},
				{Level: "L1", Stage: "prune-defs", BytesIn: 90, BytesOut: 50},
				{Level: "L3", Stage: "minify", BytesIn: 50, BytesOut: 20},
			},
			want: "prune-defs",
			ok:   true,
		},
		{
			name: "tie goes to the earlier stage",
			trace: []compliance.StageTrace{
				{Level: "L2", Stage: "precision-1", BytesIn: 60, BytesOut: 50},
				{Level: "L3", Stage: "minify", BytesIn: 50, BytesOut: 40},
			},
			want: "precision-1",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := topStage(tt.trace)
			if ok != tt.ok || got.Stage != tt.want {
				t.Errorf("topStage() = %q, %v; want %q, %v", got.Stage, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRunLogOptimized(t *testing.T) {
	var buf bytes.Buffer
	rlog := newRunLog(newLogger(&buf, log.InfoLevel), "logo.svg")

	rlog.optimized(&compliance.Result{
		RawBytes: 100,
		Bytes:    20,
		Status:   compliance.StatusCompliant,
		Trace: []compliance.StageTrace{
			{Level: "sanitize", Stage: "sanitize", BytesIn: 100, BytesOut: 70},
			{Level: "L3", Stage: "minify", BytesIn: 70, BytesOut: 20},
		},
	}, true)

	out := buf.String()
	for _, want := range []string{"Optimized logo.svg", "saved=80", "top_stage=L3/minify", "top_saved=50", "cached=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q:\n%s", want, out)
		}
	}
}

func TestRunLogOptimizedWithoutSavings(t *testing.T) {
	var buf bytes.Buffer
	rlog := newRunLog(newLogger(&buf, log.InfoLevel), "tiny.svg")

	rlog.optimized(&compliance.Result{RawBytes: 10, Bytes: 10, Status: compliance.StatusCompliant}, false)

	if out := buf.String(); strings.Contains(out, "top_stage") {
		t.Errorf("unexpected top stage:\n%s", out)
	}
}

func TestRunLogRendered(t *testing.T) {
	var buf bytes.Buffer
	rlog := newRunLog(newLogger(&buf, log.InfoLevel), "demo")

	rlog.rendered(&scene.Report{Elements: 42, Bytes: 2048, SizeOK: true}, false)

	out := buf.String()
	for _, want := range []string{"Rendered demo", "elements=42", "bytes=2048", "size_ok=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q:\n%s", want, out)
		}
	}
}
