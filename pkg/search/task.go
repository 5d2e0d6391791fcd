package search

import (
	"context"

	"github.com/google/uuid"
)

// Task is the handle for one background search run.
//
// The UI starts a search with [Engine.Start] and keeps the returned handle;
// the aggregate map is owned exclusively by the run's goroutine until the
// result is published through Wait. Holding state in an explicit handle
// rather than package globals means a stale in-flight search can never race
// a freshly started one: starting a new task cancels the previous handle
// first.
type Task struct {
	// ID uniquely identifies the run, for logging and API callers.
	ID uuid.UUID

	// Filters are the filters this run was started with.
	Filters Filters

	cancel context.CancelFunc
	done   chan struct{}

	result *Result
	err    error
}

// Start launches a search in the background and returns its handle.
//
// Only one task may be in flight at a time: if prev is still running it is
// cancelled and awaited before the new run begins, so the provider never
// sees overlapping request streams from one client.
func (e *Engine) Start(ctx context.Context, f Filters, prev *Task) *Task {
	if prev != nil {
		prev.Cancel()
		<-prev.done
	}

	runCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		ID:      uuid.New(),
		Filters: f,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()
		t.result, t.err = e.Search(runCtx, f)
	}()

	return t
}

// Done returns a channel closed when the run has published its result.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel stops the run. Wait still returns whatever was built before the
// cancellation took effect.
func (t *Task) Cancel() { t.cancel() }

// Wait blocks until the run completes and returns its result.
func (t *Task) Wait() (*Result, error) {
	<-t.done
	return t.result, t.err
}

// Running reports whether the run is still in flight.
func (t *Task) Running() bool {
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}
