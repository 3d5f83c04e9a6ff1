package memory

import "context"

// Store is the similarity backend behind EpisodicMemory.
// Implementations: chromem.Store (embedded vector index), qdrant.Store
// (remote vector index), FallbackStore (linear scan, no ranking).
//
// Add, Query and Teardown are suspension points: they may block on I/O and
// must honor context cancellation. A cancelled Add must not leave a
// partially-indexed record retrievable under its id.
type Store interface {
	// Add persists the record under its content-derived id and returns the
	// id. Persistence failures surface as ErrBackendUnavailable; records
	// the canonical serializer rejects surface as ErrMalformedRecord.
	Add(ctx context.Context, rec Record) (string, error)

	// Query returns up to k records relevant to text. Indexed backends rank
	// by similarity, descending, ties broken by earliest insertion. The
	// fallback backend returns records in insertion order with no ranking —
	// a documented degraded mode, not an error. k <= 0 returns nothing.
	// Query has no side effects and may be repeated freely.
	Query(ctx context.Context, text string, k int) ([]Record, error)

	// Teardown releases backend resources and drops all records. The
	// backend remains usable afterwards: subsequent Adds start from an
	// empty namespace.
	Teardown(ctx context.Context) error

	// Kind identifies the backend variant ("chromem", "qdrant", "fallback").
	Kind() string
}

// Embedder converts text to vector embeddings for indexed backends.
// Implementations: hash.Embedder (deterministic feature hashing, no model
// files), onnx.Embedder (all-MiniLM-L6-v2, build tag onnx), cached.Embedder
// (ristretto cache in front of another Embedder).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// StoreOpener constructs an indexed Store for a collection. NewSystem uses
// it to build the episodic backend; a constructor error triggers the silent
// substitution of the fallback store.
type StoreOpener func(ctx context.Context, collection string) (Store, error)
