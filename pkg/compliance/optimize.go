package compliance

// Status is the terminal state of an optimization run.
type Status string

const (
	// StatusCompliant means the text fits the budget.
	StatusCompliant Status = "compliant"
	// StatusExhausted means every level ran and the text is still over
	// budget. The result is best effort, not an error.
	StatusExhausted Status = "exhausted"
)

// LevelSanitize names the baseline level in traces.
const LevelSanitize = "sanitize"

// StageTrace records one stage application.
type StageTrace struct {
	Level    string `json:"level"`
	Stage    string `json:"stage"`
	BytesIn  int    `json:"bytes_in"`
	BytesOut int    `json:"bytes_out"`
	Skipped  bool   `json:"skipped,omitempty"`

	// Output is the text after the stage. Only set with WithSnapshots.
	Output string `json:"-"`
}

// Saved returns how many bytes the stage removed.
func (t StageTrace) Saved() int { return t.BytesIn - t.BytesOut }

// Result is the outcome of Optimize.
type Result struct {
	Text     string       `json:"text"`
	Bytes    int          `json:"bytes"`
	SizeKB   float64      `json:"size_kb"`
	Budget   Budget       `json:"budget"`
	Status   Status       `json:"status"`
	Profile  string       `json:"profile"`
	Levels   []string     `json:"levels"`
	Trace    []StageTrace `json:"trace"`
	RawBytes int          `json:"raw_bytes"`
}

// Compliant reports whether the final text fits the budget.
func (r *Result) Compliant() bool { return r.Status == StatusCompliant }

type options struct {
	profile    *Profile
	config     ProfileConfig
	namespaces []string
	snapshots  bool
}

// Option configures Optimize.
type Option func(*options)

// WithProfile selects the escalation ladder. The default is
// Competition(ProfileConfig{}).
func WithProfile(p Profile) Option {
	return func(o *options) { o.profile = &p }
}

// WithoutGrouping drops GroupSimilar from the default profile. It has no
// effect when WithProfile is also given.
func WithoutGrouping() Option {
	return func(o *options) { o.config.DisableGrouping = true }
}

// WithNamespaces sets the editor namespace prefixes the sanitizer strips.
func WithNamespaces(ns []string) Option {
	return func(o *options) { o.namespaces = ns }
}

// WithSnapshots keeps the output text of every stage in the trace.
func WithSnapshots() Option {
	return func(o *options) { o.snapshots = true }
}

// Optimize sanitizes text and escalates through the profile's levels until
// the result fits budget or the profile is exhausted. Parse failures inside
// a stage make that stage a no-op; any other stage error is returned.
func Optimize(text string, budget Budget, opts ...Option) (*Result, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	profile := Competition(o.config)
	if o.profile != nil {
		profile = *o.profile
	}

	r := &Result{Budget: budget, Profile: profile.Name, RawBytes: len(text)}
	run := func(level Level) error {
		for _, s := range level.Stages {
			out, skipped, err := s.Run(text)
			if err != nil {
				return err
			}
			tr := StageTrace{Level: level.Name, Stage: s.Name, BytesIn: len(text), BytesOut: len(out), Skipped: skipped}
			if o.snapshots {
				tr.Output = out
			}
			r.Trace = append(r.Trace, tr)
			text = out
		}
		r.Levels = append(r.Levels, level.Name)
		return nil
	}
	done := func() bool { return budget.Measure(text).Compliant }

	if err := run(Level{Name: LevelSanitize, Stages: []Stage{Sanitize(o.namespaces)}}); err != nil {
		return nil, err
	}
	if !done() {
		for _, level := range profile.Levels {
			if err := run(level); err != nil {
				return nil, err
			}
			if done() {
				break
			}
		}
		if !done() && profile.Maximum != nil {
			if err := run(*profile.Maximum); err != nil {
				return nil, err
			}
		}
	}

	m := budget.Measure(text)
	r.Text = text
	r.Bytes = m.Bytes
	r.SizeKB = m.SizeKB()
	r.Status = StatusExhausted
	if m.Compliant {
		r.Status = StatusCompliant
	}
	return r, nil
}

// EnsureCompliance runs the basic profile against a kilobyte ceiling and
// returns the final text with its size in kilobytes.
func EnsureCompliance(text string, maxKB float64) (string, float64, bool, error) {
	budget, err := BudgetFromKB(maxKB)
	if err != nil {
		return "", 0, false, err
	}
	r, err := Optimize(text, budget, WithProfile(Basic(ProfileConfig{})))
	if err != nil {
		return "", 0, false, err
	}
	return r.Text, r.SizeKB, r.Compliant(), nil
}
