package engine

import (
	"sync"

	"github.com/google/uuid"
)

var (
	suffixMu sync.RWMutex
	suffixFn = func() string {
		return uuid.NewString()[:8]
	}
)

// RandomSuffix returns a short random suffix for transient resource
// names, so concurrent unrelated runs never collide on the shared
// engine daemon.
func RandomSuffix() string {
	suffixMu.RLock()
	defer suffixMu.RUnlock()
	return suffixFn()
}

// SetSuffixFunc replaces the suffix generator. Intended for tests.
// Passing nil restores the default.
func SetSuffixFunc(fn func() string) {
	suffixMu.Lock()
	defer suffixMu.Unlock()
	if fn == nil {
		suffixFn = func() string { return uuid.NewString()[:8] }
		return
	}
	suffixFn = fn
}
