package memory

import "sync"

// WorkingMemory holds the current context window: transient key/value state
// for the task in flight. No persistence guarantee; Clear drops everything.
//
// All sharers of a System observe the same working memory. The map is
// guarded by a mutex so truly parallel collaborators stay safe; cross-
// component ordering is still the caller's concern.
type WorkingMemory struct {
	mu      sync.RWMutex
	context map[string]any
}

// NewWorkingMemory creates an empty working memory.
func NewWorkingMemory() *WorkingMemory {
	return &WorkingMemory{context: make(map[string]any)}
}

// Store upserts a key/value pair. Later writes overwrite earlier ones.
func (w *WorkingMemory) Store(key string, value any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.context[key] = value
}

// Retrieve returns the value for key, or (nil, false) when absent.
// A missing key is a soft miss, never an error.
func (w *WorkingMemory) Retrieve(key string) (any, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.context[key]
	return v, ok
}

// Clear empties working memory. Idempotent; no key survives.
func (w *WorkingMemory) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.context = make(map[string]any)
}

// Len returns the number of stored keys.
func (w *WorkingMemory) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.context)
}
