package memory

import "sync"

// SemanticMemory is the persistent knowledge base: facts keyed by string,
// never overwritten by new experiences and never auto-expired. AddFact is
// last-write-wins; there is no versioning and no teardown. Facts live as
// long as the enclosing System.
type SemanticMemory struct {
	mu        sync.RWMutex
	knowledge map[string]any
}

// NewSemanticMemory creates an empty semantic memory.
func NewSemanticMemory() *SemanticMemory {
	return &SemanticMemory{knowledge: make(map[string]any)}
}

// AddFact adds or overwrites a fact.
func (s *SemanticMemory) AddFact(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knowledge[key] = value
}

// RetrieveFact returns the fact for key, or (nil, false) when absent.
func (s *SemanticMemory) RetrieveFact(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.knowledge[key]
	return v, ok
}

// Len returns the number of stored facts.
func (s *SemanticMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.knowledge)
}
