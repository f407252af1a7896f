package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/svgbudget/pkg/cache"
	"github.com/matzehuels/svgbudget/pkg/compliance"
	"github.com/matzehuels/svgbudget/pkg/observability"
	"github.com/matzehuels/svgbudget/pkg/scene"
	"github.com/matzehuels/svgbudget/pkg/store"
)

// Cache key types reported to observability hooks.
const (
	keyTypeOptimize = "optimize"
	keyTypeScene    = "scene"
)

// Runner executes runs with caching and history.
//
// The Runner keeps no per-run state, so one Runner may serve many
// goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	// TTL overrides the per-type cache TTLs when positive.
	TTL time.Duration

	now func() time.Time
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default keyer and a nil store disables history.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if st == nil {
		st = store.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Store: st, Logger: logger, now: time.Now}
}

// Optimize brings text under the budget in opts.
func (r *Runner) Optimize(ctx context.Context, text string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := r.now()
	res := &Result{ID: uuid.NewString()}

	opt, hit, err := r.optimize(ctx, text, &opts)
	if err != nil {
		return nil, err
	}
	res.Optimization = opt
	res.Text = opt.Text
	res.CacheInfo.OptimizeHit = hit
	res.Duration = r.now().Sub(start)

	r.record(ctx, store.KindOptimize, cache.Hash([]byte(text)), &opts, res)
	return res, nil
}

// optimize runs the compliance controller, consulting the cache unless
// snapshots are requested or the caller asked for a refresh.
func (r *Runner) optimize(ctx context.Context, text string, opts *Options) (*compliance.Result, bool, error) {
	logger := r.logger(opts)
	useCache := !opts.Snapshots
	key := r.Keyer.OptimizeKey(cache.Hash([]byte(text)), opts.KeyOpts())

	if useCache && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached compliance.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeOptimize)
				logger.Debug("optimize cache hit", "key", short(key))
				return &cached, true, nil
			}
		} else if err != nil {
			logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeOptimize)
	}

	compressOpts, err := opts.CompressOptions()
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnOptimizeStart(ctx, opts.Profile, len(text))
	start := r.now()
	res, err := compliance.Optimize(text, opts.Budget(), compressOpts...)
	elapsed := r.now().Sub(start)
	if err != nil {
		hooks.OnOptimizeComplete(ctx, opts.Profile, "", 0, elapsed, err)
		return nil, false, fmt.Errorf("optimize: %w", err)
	}
	for _, t := range res.Trace {
		hooks.OnStageComplete(ctx, t.Level, t.Stage, t.BytesIn, t.BytesOut, t.Skipped)
		logger.Debug("stage",
			"level", t.Level,
			"stage", t.Stage,
			"in", t.BytesIn,
			"out", t.BytesOut,
			"skipped", t.Skipped)
	}
	hooks.OnOptimizeComplete(ctx, opts.Profile, string(res.Status), res.Bytes, elapsed, nil)
	logger.Info("optimized",
		"bytes", res.Bytes,
		"budget", res.Budget.MaxBytes,
		"status", res.Status,
		"levels", strings.Join(res.Levels, ","),
		"duration", elapsed)

	if useCache {
		if data, err := json.Marshal(res); err == nil {
			if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLOptimize)); err != nil {
				logger.Warn("cache write failed", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, keyTypeOptimize, len(data))
			}
		}
	}
	return res, false, nil
}

// Generate builds spec into a document and, unless opts.SkipOptimize is
// set, optimizes it. The spec's budget applies when opts leaves it unset.
func (r *Runner) Generate(ctx context.Context, spec *scene.Spec, opts Options) (*Result, error) {
	if spec == nil {
		return nil, invalid("scene spec is required")
	}
	if opts.BudgetKB == 0 && spec.BudgetKB != 0 {
		opts.BudgetKB = spec.BudgetKB
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(&opts)
	start := r.now()
	res := &Result{ID: uuid.NewString()}

	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	specHash := cache.Hash(specJSON)

	raw, report, hit, err := r.render(ctx, spec, specHash, &opts)
	if err != nil {
		return nil, err
	}
	res.Scene = report
	res.Text = raw
	res.CacheInfo.SceneHit = hit

	if !opts.SkipOptimize {
		opt, hit, err := r.optimize(ctx, raw, &opts)
		if err != nil {
			return nil, err
		}
		res.Optimization = opt
		res.Text = opt.Text
		res.CacheInfo.OptimizeHit = hit
	}
	res.Duration = r.now().Sub(start)
	logger.Info("generated",
		"scene", sceneName(spec),
		"elements", report.Elements,
		"raw_bytes", report.Bytes,
		"status", res.Status(),
		"duration", res.Duration)

	r.record(ctx, store.KindGenerate, specHash, &opts, res)
	return res, nil
}

type cachedScene struct {
	Text   string       `json:"text"`
	Report scene.Report `json:"report"`
}

func (r *Runner) render(ctx context.Context, spec *scene.Spec, specHash string, opts *Options) (string, *scene.Report, bool, error) {
	key := r.Keyer.SceneKey(specHash, cache.SceneKeyOpts{})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached cachedScene
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeScene)
				return cached.Text, &cached.Report, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeScene)
	}

	name := sceneName(spec)
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, name)
	start := r.now()
	c, err := scene.Build(ctx, spec)
	if err != nil {
		hooks.OnGenerateComplete(ctx, name, 0, r.now().Sub(start), err)
		return "", nil, false, fmt.Errorf("build scene: %w", err)
	}
	report := c.Validate()
	text := c.Render()
	hooks.OnGenerateComplete(ctx, name, report.Elements, r.now().Sub(start), nil)

	if data, err := json.Marshal(cachedScene{Text: text, Report: report}); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLScene)); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeScene, len(data))
		}
	}
	return text, &report, false, nil
}

// record saves a history entry. History failures are logged, never
// returned.
func (r *Runner) record(ctx context.Context, kind, inputHash string, opts *Options, res *Result) {
	rep := store.Report{
		ID:        res.ID,
		CreatedAt: r.now().UTC(),
		Kind:      kind,
		Source:    opts.Source,
		InputHash: inputHash,
		Profile:   opts.Profile,
		Budget:    opts.Budget().MaxBytes,
		Bytes:     len(res.Text),
		Status:    res.Status(),
		CacheHit:  res.CacheInfo.OptimizeHit,
		Duration:  res.Duration,
	}
	if res.Optimization != nil {
		rep.RawBytes = res.Optimization.RawBytes
		rep.Levels = res.Optimization.Levels
	} else {
		rep.RawBytes = len(res.Text)
	}
	if res.Scene != nil {
		rep.Elements = res.Scene.Elements
	}
	if err := r.Store.Save(ctx, rep); err != nil {
		r.logger(opts).Warn("could not save report", "id", rep.ID, "error", err)
	}
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) logger(opts *Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func sceneName(spec *scene.Spec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return "scene"
}

func short(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 && len(key)-i > 13 {
		return key[:i+13]
	}
	return key
}
