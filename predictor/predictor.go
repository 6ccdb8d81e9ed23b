// Package predictor wraps the trained model behind a small capability:
// given a requirement feature vector, return a candidate class. Predictors
// are pure; all ledger mutation happens later in the orchestrator, which is
// what makes a prediction safe to retry.
package predictor

import "github.com/pkg/errors"

var (
	// ErrNoCandidate means the model could not produce a usable class.
	ErrNoCandidate = errors.New("no candidate asset")

	// ErrModelUnavailable means the model artifact is missing or unusable.
	// Loading happens once at process start; this error is fatal there,
	// never per-request.
	ErrModelUnavailable = errors.New("model unavailable")
)

// Predictor selects a class index from requirement features. Any capability
// that deterministically ranks assets from features satisfies this.
type Predictor interface {
	Predict(vector []float64) (int, error)
}
