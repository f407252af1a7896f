// Package store keeps a history of optimization and generation runs.
//
// Each run produces one [Report]. Backends:
//   - [FileStore]: append-only JSON lines file, for the CLI
//   - [MongoStore]: MongoDB collection, for API deployments
//   - [Discard]: history disabled
package store

import (
	"context"
	"time"

	"github.com/matzehuels/svgbudget/pkg/errors"
)

// Run kinds.
const (
	KindOptimize = "optimize"
	KindGenerate = "generate"
)

// Report summarizes one run.
type Report struct {
	ID        string        `json:"id" bson:"_id"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Kind      string        `json:"kind" bson:"kind"`
	Source    string        `json:"source,omitempty" bson:"source,omitempty"`
	InputHash string        `json:"input_hash" bson:"input_hash"`
	Profile   string        `json:"profile" bson:"profile"`
	Budget    int           `json:"budget_bytes" bson:"budget_bytes"`
	RawBytes  int           `json:"raw_bytes" bson:"raw_bytes"`
	Bytes     int           `json:"bytes" bson:"bytes"`
	Status    string        `json:"status" bson:"status"`
	Levels    []string      `json:"levels,omitempty" bson:"levels,omitempty"`
	Elements  int           `json:"elements,omitempty" bson:"elements,omitempty"`
	CacheHit  bool          `json:"cache_hit,omitempty" bson:"cache_hit,omitempty"`
	Duration  time.Duration `json:"duration_ns" bson:"duration_ns"`
}

// Saved returns how many bytes the run removed.
func (r Report) Saved() int { return r.RawBytes - r.Bytes }

// DefaultLimit caps List when no limit is given.
const DefaultLimit = 50

// Query filters List.
type Query struct {
	Limit  int    // newest first, default DefaultLimit
	Kind   string // optional
	Status string // optional
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

func (q Query) match(r Report) bool {
	return (q.Kind == "" || r.Kind == q.Kind) && (q.Status == "" || r.Status == q.Status)
}

// Store persists reports.
type Store interface {
	Save(ctx context.Context, r Report) error
	Get(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, q Query) ([]Report, error)
	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "report %q not found", id)
}

// Discard is a Store that keeps nothing.
type Discard struct{}

func (Discard) Save(context.Context, Report) error                { return nil }
func (Discard) Get(_ context.Context, id string) (*Report, error) { return nil, notFound(id) }
func (Discard) List(context.Context, Query) ([]Report, error)     { return nil, nil }
func (Discard) Close() error                                      { return nil }

var _ Store = Discard{}
