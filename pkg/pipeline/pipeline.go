// Package pipeline runs size-budget optimization and scene generation for
// the CLI and the API.
//
// Centralizing the run here keeps defaults, caching, history and logging
// identical across entry points.
//
// # Stages
//
//  1. Generate (optional): build a scene from a [scene.Spec] and render it.
//  2. Optimize: escalate through a compliance profile until the document
//     fits the byte budget or the profile is exhausted.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, history, logger)
//	defer runner.Close()
//
//	res, err := runner.Optimize(ctx, text, pipeline.Options{BudgetKB: 10})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Optimization.Status, res.Optimization.Bytes)
//
//	res, err = runner.Generate(ctx, scene.Demo(), pipeline.Options{})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgbudget/pkg/cache"
	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/errors"
	"github.com/matzehuels/svgbudget/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBudgetKB is the size ceiling when none is given.
	DefaultBudgetKB = 10.0

	// DefaultProfile is the escalation ladder used when none is given.
	DefaultProfile = compliance.ProfileCompetition

	// DefaultMaxElements caps generated scenes.
	DefaultMaxElements = scene.DefaultMaxElements

	// DefaultWidth is the generated scene width in pixels.
	DefaultWidth = float64(scene.DefaultWidth)

	// DefaultHeight is the generated scene height in pixels.
	DefaultHeight = float64(scene.DefaultHeight)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one run. It decodes from API request bodies.
type Options struct {
	BudgetKB        float64  `json:"budget_kb,omitempty"`
	Profile         string   `json:"profile,omitempty"`
	DisableGrouping bool     `json:"disable_grouping,omitempty"`
	Namespaces      []string `json:"namespaces,omitempty"`

	// Refresh skips cache lookups; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// SkipOptimize makes Generate return the scene as rendered.
	SkipOptimize bool `json:"skip_optimize,omitempty"`

	// Runtime options (not serialized)
	Source    string      `json:"-"` // label recorded in history, e.g. a file name
	Snapshots bool        `json:"-"` // keep per-stage output; disables caching
	Logger    *log.Logger `json:"-"`

	budget    compliance.Budget
	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.BudgetKB == 0 {
		o.BudgetKB = DefaultBudgetKB
	}
	budget, err := compliance.BudgetFromKB(o.BudgetKB)
	if err != nil {
		return err
	}
	o.budget = budget
	if o.Profile == "" {
		o.Profile = DefaultProfile
	}
	if _, err := compliance.ProfileByName(o.Profile, compliance.ProfileConfig{}); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Budget returns the validated byte budget.
func (o *Options) Budget() compliance.Budget { return o.budget }

// CompressOptions translates o into compliance options.
func (o *Options) CompressOptions() ([]compliance.Option, error) {
	profile, err := compliance.ProfileByName(o.Profile, compliance.ProfileConfig{DisableGrouping: o.DisableGrouping})
	if err != nil {
		return nil, err
	}
	opts := []compliance.Option{compliance.WithProfile(profile)}
	if len(o.Namespaces) > 0 {
		opts = append(opts, compliance.WithNamespaces(o.Namespaces))
	}
	if o.Snapshots {
		opts = append(opts, compliance.WithSnapshots())
	}
	return opts, nil
}

// KeyOpts returns the cache key options for an optimization.
func (o *Options) KeyOpts() cache.OptimizeKeyOpts {
	return cache.OptimizeKeyOpts{
		Profile:         o.Profile,
		MaxBytes:        o.budget.MaxBytes,
		DisableGrouping: o.DisableGrouping,
		Namespaces:      o.Namespaces,
	}
}

// ValidateProfile checks that name is a built-in profile.
func ValidateProfile(name string) error {
	_, err := compliance.ProfileByName(name, compliance.ProfileConfig{})
	return err
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of Optimize or Generate.
type Result struct {
	// ID identifies the run in history.
	ID string `json:"id"`

	// Optimization is nil only when Generate ran with SkipOptimize.
	Optimization *compliance.Result `json:"optimization,omitempty"`

	// Scene is set by Generate.
	Scene *scene.Report `json:"scene,omitempty"`

	// Text is the final document.
	Text string `json:"-"`

	CacheInfo CacheInfo     `json:"cache"`
	Duration  time.Duration `json:"duration_ns"`
}

// CacheInfo tracks which steps were served from the cache.
type CacheInfo struct {
	SceneHit    bool `json:"scene_hit,omitempty"`
	OptimizeHit bool `json:"optimize_hit,omitempty"`
}

// Status returns the optimization status, or "rendered" when optimization
// was skipped.
func (r *Result) Status() string {
	if r.Optimization == nil {
		return "rendered"
	}
	return string(r.Optimization.Status)
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, format, args...)
}
