// Package cli implements the svgbudget command-line interface.
//
// The commands generate SVG scenes, bring documents under a byte budget,
// serve the same pipeline over HTTP and inspect the run history and
// result cache:
//
//   - optimize: bring an SVG document under a size budget
//   - generate: compose a scene file (or the demo scene) and optimize it
//   - serve: run the HTTP API
//   - history: list recorded runs
//   - cache: manage the result cache
//
// Every command accepts --verbose (-v), which adds one debug line per
// optimization stage. The logger travels in the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/scene"
)

// newLogger creates the CLI logger writing to w at level, with
// "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// runLog times one command run and writes its summary line.
type runLog struct {
	logger *log.Logger
	source string
	start  time.Time
}

func newRunLog(l *log.Logger, source string) *runLog {
	return &runLog{logger: l, source: source, start: time.Now()}
}

func (r *runLog) elapsed() time.Duration {
	return time.Since(r.start).Round(time.Millisecond)
}

// optimized logs how much an optimization saved and which stage saved
// the most.
func (r *runLog) optimized(res *compliance.Result, cached bool) {
	fields := []any{
		"saved", res.RawBytes - res.Bytes,
		"bytes", res.Bytes,
		"status", res.Status,
		"cached", cached,
	}
	if top, ok := topStage(res.Trace); ok {
		fields = append(fields, "top_stage", top.Level+"/"+top.Stage, "top_saved", top.Saved())
	}
	fields = append(fields, "elapsed", r.elapsed())
	r.logger.Info("Optimized "+r.source, fields...)
}

// rendered logs a scene composition.
func (r *runLog) rendered(rep *scene.Report, cached bool) {
	r.logger.Info("Rendered "+r.source,
		"elements", rep.Elements,
		"bytes", rep.Bytes,
		"size_ok", rep.SizeOK,
		"cached", cached,
		"elapsed", r.elapsed())
}

// topStage returns the stage that removed the most bytes. Skipped stages
// and stages that saved nothing never qualify; ties go to the earliest.
func topStage(trace []compliance.StageTrace) (compliance.StageTrace, bool) {
	var (
		best  compliance.StageTrace
		found bool
	)
	for _, t := range trace {
		if t.Skipped || t.Saved() <= 0 {
			continue
		}
		if !found || t.Saved() > best.Saved() {
			best, found = t, true
		}
	}
	return best, found
}
