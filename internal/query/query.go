// Package query tracks the lifecycle of a fetched resource. Each Resource
// moves through idle, loading, loaded and error states, and a generation
// counter guarantees that an old in-flight fetch can never clobber the
// result of a newer one.
package query

import "sync"

// State is the lifecycle phase of a Resource.
type State int

const (
	// Idle means no fetch has been started yet.
	Idle State = iota
	// Loading means a fetch is in flight.
	Loading
	// Loaded means the last fetch succeeded and Data is valid.
	Loaded
	// Failed means the last fetch failed; prior Data, if any, is retained.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Resource is a fetchable value of type T with explicit lifecycle state.
// It is safe for concurrent use. Overlapping fetches are fenced: Begin
// returns a generation token, and only the completion carrying the latest
// token changes anything. A stale completion is a no-op, which means a
// failed or superseded load always leaves the previous data in place.
type Resource[T any] struct {
	err        error
	data       T
	mu         sync.Mutex
	generation uint64
	state      State
	hasData    bool
}

// NewResource returns an idle resource.
func NewResource[T any]() *Resource[T] {
	return &Resource[T]{state: Idle}
}

// Begin marks the resource loading and returns the generation token the
// caller must hand back to Complete or Fail.
func (r *Resource[T]) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.state = Loading
	return r.generation
}

// Complete stores data for the fetch identified by gen. If a newer fetch
// has begun since, the result is discarded and Complete reports false.
func (r *Resource[T]) Complete(gen uint64, data T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return false
	}
	r.data = data
	r.hasData = true
	r.err = nil
	r.state = Loaded
	return true
}

// Fail records a fetch failure for the generation gen. Prior data survives;
// a stale failure is discarded and Fail reports false.
func (r *Resource[T]) Fail(gen uint64, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return false
	}
	r.err = err
	r.state = Failed
	return true
}

// State returns the current lifecycle phase.
func (r *Resource[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Data returns the most recently loaded value and whether one exists. Data
// from an earlier successful fetch remains available while a refresh is
// loading or after it fails.
func (r *Resource[T]) Data() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.hasData
}

// Err returns the failure from the most recent completed fetch, or nil.
func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Loading reports whether a fetch is currently in flight.
func (r *Resource[T]) Loading() bool {
	return r.State() == Loading
}
