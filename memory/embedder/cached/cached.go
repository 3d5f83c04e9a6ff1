// Package cached decorates an Embedder with a ristretto cache. The feedback
// loop re-embeds near-identical observation text constantly; caching keeps
// the ONNX path off the hot loop.
package cached

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/evoforge/evo-go-sdk/memory"
)

// Embedder caches embeddings by exact text. Admission is best-effort:
// ristretto may drop or delay entries, which only costs a recomputation.
type Embedder struct {
	inner memory.Embedder
	cache *ristretto.Cache
}

// New wraps inner with a cache holding up to maxBytes of embedding data.
// maxBytes <= 0 defaults to 16 MiB.
func New(inner memory.Embedder, maxBytes int64) (*Embedder, error) {
	if maxBytes <= 0 {
		maxBytes = 16 << 20
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}
	return &Embedder{inner: inner, cache: cache}, nil
}

// Embed returns the cached vector when present, otherwise delegates and
// caches the result. Cached vectors are shared; callers must not mutate
// returned slices.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := e.cache.Get(text); ok {
		if emb, ok := v.([]float32); ok {
			return emb, nil
		}
	}

	emb, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Set(text, emb, int64(len(emb)*4))
	return emb, nil
}

// Dimensions returns the inner embedder's vector size.
func (e *Embedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Wait blocks until pending cache writes are applied. Mostly for tests.
func (e *Embedder) Wait() {
	e.cache.Wait()
}

// Close releases the cache.
func (e *Embedder) Close() {
	e.cache.Close()
}
