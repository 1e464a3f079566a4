// Package results persists completed distance computations as run records,
// so benchmark series can be collected, listed and re-rendered later.
//
// A Run records what was compared (graphs by canonical hash, the metric and
// policy, any pair selection) and what came out (the distance result and
// wall time). Backends implement the Store interface:
//   - file: JSON files in a config directory, for CLI usage
//   - mongo: MongoDB collection, for shared deployments
package results

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/causalbench/adjid/pkg/metrics"
)

// Sentinel errors for run storage.
var (
	// ErrNotFound is returned when a run does not exist.
	ErrNotFound = errors.New("run not found")
)

// Run is one persisted distance computation.
type Run struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	Metric     string `json:"metric" bson:"metric"`
	TruthHash  string `json:"truth_hash" bson:"truth_hash"`
	GuessHash  string `json:"guess_hash" bson:"guess_hash"`
	Treatments []int  `json:"treatments,omitempty" bson:"treatments,omitempty"`
	Effects    []int  `json:"effects,omitempty" bson:"effects,omitempty"`

	Result  metrics.Result `json:"result" bson:"result"`
	Elapsed time.Duration  `json:"elapsed_ns" bson:"elapsed_ns"`
}

// New creates a Run with a fresh ID and the current timestamp.
func New(metric, truthHash, guessHash string, result metrics.Result, elapsed time.Duration) *Run {
	return &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Metric:    metric,
		TruthHash: truthHash,
		GuessHash: guessHash,
		Result:    result,
		Elapsed:   elapsed,
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Save persists a run, replacing any run with the same ID.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
