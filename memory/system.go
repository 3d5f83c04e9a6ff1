package memory

import (
	"context"

	"github.com/charmbracelet/log"
)

// System is the memory facade collaborators share by reference: one working
// memory, one episodic memory (and therefore one backend), one semantic
// memory. The creator owns the lifecycle; planners and feedback loops
// receive the same instance and observe the same state.
//
// Cleanup is asymmetric on purpose: it tears down only the episodic
// backend. Working and semantic memory survive; callers wanting a full
// reset call Working.Clear() themselves.
type System struct {
	Working  *WorkingMemory
	Episodic *EpisodicMemory
	Semantic *SemanticMemory

	logger *log.Logger
}

// NewSystem constructs an independent memory system. cfg may be nil for
// defaults. When cfg requests an index and its opener fails, the fallback
// store is substituted silently (logged at warn level) — construction never
// fails over backend availability.
func NewSystem(ctx context.Context, cfg *Config) *System {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	collection := cfg.Collection
	if collection == "" {
		collection = DefaultCollection
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("collection", collection)
	sysLogger := logger.With("component", "memory")

	var store Store = NewFallbackStore()
	if cfg.UseIndex {
		if cfg.OpenIndex == nil {
			sysLogger.Warn("index requested without opener, using fallback store")
		} else if indexed, err := cfg.OpenIndex(ctx, collection); err != nil {
			sysLogger.Warn("indexed backend unavailable, using fallback store", "err", err)
		} else {
			store = indexed
		}
	}
	sysLogger.Debug("backend selected", "backend", store.Kind())

	return &System{
		Working:  NewWorkingMemory(),
		Episodic: NewEpisodicMemory(store, cfg.DefaultK, logger),
		Semantic: NewSemanticMemory(),
		logger:   sysLogger,
	}
}

// Cleanup releases episodic backend resources only. Working and semantic
// state remain readable afterwards, and the episodic store is immediately
// reusable.
func (s *System) Cleanup(ctx context.Context) error {
	return s.Episodic.Cleanup(ctx)
}
