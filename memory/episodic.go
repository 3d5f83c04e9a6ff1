package memory

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// EpisodicMemory stores experience records behind one similarity backend,
// selected once at construction and never switched mid-lifetime. It does
// not serialize concurrent writers itself; the backends carry their own
// locks where mutation needs them.
type EpisodicMemory struct {
	store    Store
	defaultK int
	logger   *log.Logger
}

// NewEpisodicMemory wraps a backend. defaultK <= 0 uses DefaultRetrieveK.
func NewEpisodicMemory(store Store, defaultK int, logger *log.Logger) *EpisodicMemory {
	if defaultK <= 0 {
		defaultK = DefaultRetrieveK
	}
	if logger == nil {
		logger = log.Default()
	}
	return &EpisodicMemory{
		store:    store,
		defaultK: defaultK,
		logger:   logger.With("component", "episodic"),
	}
}

// StoreExperience persists one record and returns its content-derived id.
// This is the only write path into episodic memory.
func (e *EpisodicMemory) StoreExperience(ctx context.Context, rec Record) (string, error) {
	id, err := e.store.Add(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("store experience: %w", err)
	}
	e.logger.Debug("stored experience", "id", id, "backend", e.store.Kind())
	return id, nil
}

// RetrieveSimilar returns up to k records relevant to query. k < 0 uses the
// configured default; k == 0 returns an empty result. Repeated calls with
// varying query or k have no side effects.
func (e *EpisodicMemory) RetrieveSimilar(ctx context.Context, query string, k int) ([]Record, error) {
	if k < 0 {
		k = e.defaultK
	}
	recs, err := e.store.Query(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve similar: %w", err)
	}
	e.logger.Debug("retrieved experiences", "count", len(recs), "k", k)
	return recs, nil
}

// Cleanup tears down the backend's resources. The store holds zero records
// afterwards and StoreExperience keeps working; reuse after cleanup is part
// of the contract.
func (e *EpisodicMemory) Cleanup(ctx context.Context) error {
	if err := e.store.Teardown(ctx); err != nil {
		return fmt.Errorf("episodic cleanup: %w", err)
	}
	e.logger.Debug("cleaned up", "backend", e.store.Kind())
	return nil
}

// Backend exposes the selected store variant, mainly for diagnostics.
func (e *EpisodicMemory) Backend() Store {
	return e.store
}
