// Package feedback processes action observations and manages what the
// agent keeps of them: each processed observation becomes an episodic
// experience, the latest one stays in working memory, and learnings are
// promoted into semantic facts.
package feedback

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/evoforge/evo-go-sdk/memory"
)

// Keys the loop maintains in working memory.
const (
	KeyLastObservation = "last_observation"
	KeyEpisodicCount   = "episodic_count"
)

// Observation is one processed action outcome.
type Observation struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Result    string `json:"result"`
	Output    string `json:"output"`
	Timestamp string `json:"timestamp"`
}

// Pattern is a recurring action detected across observations.
type Pattern struct {
	Action    string `json:"action"`
	Frequency int    `json:"frequency"`
}

// Loop is the feedback processor. It holds a shared *memory.System by
// reference; it never owns the facade's lifecycle, and every other holder
// of the same System observes its writes.
type Loop struct {
	mem    *memory.System
	logger *log.Logger

	mu           sync.Mutex
	observations []Observation
}

// New creates a feedback loop over a shared memory system.
func New(mem *memory.System) *Loop {
	return &Loop{
		mem:    mem,
		logger: log.Default().With("component", "feedback"),
	}
}

// ProcessObservation extracts the relevant fields from a raw observation
// and accumulates it for pattern detection. Missing fields stay empty.
func (l *Loop) ProcessObservation(raw map[string]any) Observation {
	obs := Observation{
		ID:        uuid.New().String(),
		Action:    stringField(raw, "action"),
		Result:    stringField(raw, "result"),
		Output:    stringField(raw, "output"),
		Timestamp: stringField(raw, "timestamp"),
	}

	l.mu.Lock()
	l.observations = append(l.observations, obs)
	l.mu.Unlock()

	return obs
}

// DetectPatterns reports actions observed at least twice.
func (l *Loop) DetectPatterns() []Pattern {
	l.mu.Lock()
	defer l.mu.Unlock()

	counts := make(map[string]int)
	var order []string
	for _, obs := range l.observations {
		if obs.Action == "" {
			continue
		}
		if counts[obs.Action] == 0 {
			order = append(order, obs.Action)
		}
		counts[obs.Action]++
	}

	var patterns []Pattern
	for _, action := range order {
		if counts[action] >= 2 {
			patterns = append(patterns, Pattern{Action: action, Frequency: counts[action]})
		}
	}
	return patterns
}

// StoreObservation records an observation across the memory tiers: the
// observation itself into episodic memory, the latest observation and a
// running count into working memory.
func (l *Loop) StoreObservation(ctx context.Context, obs Observation) error {
	rec := memory.Record{
		"action":    obs.Action,
		"result":    obs.Result,
		"output":    obs.Output,
		"timestamp": obs.Timestamp,
	}
	id, err := l.mem.Episodic.StoreExperience(ctx, rec)
	if err != nil {
		return fmt.Errorf("store observation: %w", err)
	}

	l.mem.Working.Store(KeyLastObservation, obs)
	l.mem.Working.Store(KeyEpisodicCount, l.EpisodicCount()+1)

	l.logger.Debug("observation stored", "id", id, "action", obs.Action)
	return nil
}

// EpisodicCount returns the running count of stored observations.
func (l *Loop) EpisodicCount() int {
	v, ok := l.mem.Working.Retrieve(KeyEpisodicCount)
	if !ok {
		return 0
	}
	count, ok := v.(int)
	if !ok {
		return 0
	}
	return count
}

// WorkingSize returns the number of keys currently in working memory.
func (l *Loop) WorkingSize() int {
	return l.mem.Working.Len()
}

// UpdateSemanticMemory promotes a learning into a persistent fact.
func (l *Loop) UpdateSemanticMemory(key string, value any) {
	l.mem.Semantic.AddFact(key, value)
}

// SemanticFact returns a previously promoted fact, or (nil, false).
func (l *Loop) SemanticFact(key string) (any, bool) {
	return l.mem.Semantic.RetrieveFact(key)
}

func stringField(raw map[string]any, key string) string {
	if raw == nil {
		return ""
	}
	s, _ := raw[key].(string)
	return s
}
