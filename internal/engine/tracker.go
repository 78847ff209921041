package engine

import (
	"context"
	"sync"
)

// ReleaseFunc removes a single tracked resource.
type ReleaseFunc func(ctx context.Context) error

type tracked struct {
	desc    string
	release ReleaseFunc
}

// Tracker registers transient resources (containers, images, files)
// as they are created and releases them in reverse order on Close.
// Release errors are collected, not propagated: removing a resource
// that no longer exists must not fail a run.
type Tracker struct {
	mu        sync.Mutex
	resources []tracked
	closed    bool
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Add registers a resource with its release function.
func (t *Tracker) Add(desc string, release ReleaseFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resources = append(t.resources, tracked{desc: desc, release: release})
}

// Remove drops a tracked resource without releasing it. Used when a
// resource is promoted to a final artifact that must survive cleanup.
func (t *Tracker) Remove(desc string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.resources[:0]
	for _, r := range t.resources {
		if r.desc != desc {
			kept = append(kept, r)
		}
	}
	t.resources = kept
}

// Close releases all tracked resources in reverse creation order.
// It never fails; per-resource errors are returned alongside their
// descriptions so the caller can log them. Close is idempotent.
func (t *Tracker) Close(ctx context.Context) map[string]error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	resources := t.resources
	t.resources = nil
	t.mu.Unlock()

	failures := make(map[string]error)
	for i := len(resources) - 1; i >= 0; i-- {
		r := resources[i]
		if err := r.release(ctx); err != nil {
			failures[r.desc] = err
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return failures
}
