package store

import (
	"context"
	"sync"

	"github.com/attestkit/attest/internal/adapter"
)

// Recorder adapts the store to the adapter's event-handler contract.
// The handler signature cannot return errors, so the recorder retains
// the first write error for the caller to inspect after the batch.
//
// A single Recorder may be shared by concurrently-executing tasks.
type Recorder struct {
	store *Store
	runID string

	mu  sync.Mutex
	err error
}

// NewRecorder creates a recorder that writes events under the given run.
func NewRecorder(store *Store, runID string) *Recorder {
	return &Recorder{store: store, runID: runID}
}

// Handle persists one event. Satisfies adapter.EventHandler.
func (r *Recorder) Handle(ev adapter.Event) {
	if err := r.store.WriteEvent(context.Background(), r.runID, ev); err != nil {
		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
	}
}

// Err returns the first write error encountered, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
