// Package hash provides a deterministic, dependency-free embedder based on
// feature hashing. Each token is hashed into a pseudo-random direction and
// the directions are summed, so texts sharing tokens land close together
// under cosine similarity. No model files, no network.
//
// It is the local-SDK default and the test embedder; swap in the ONNX
// embedder for real semantic similarity.
package hash

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultDimensions is the embedding size used by New.
const DefaultDimensions = 256

// Embedder generates token-overlap-sensitive embeddings.
type Embedder struct {
	dimensions int
}

// New creates a hash embedder with DefaultDimensions.
func New() *Embedder {
	return NewWithDimensions(DefaultDimensions)
}

// NewWithDimensions creates a hash embedder with a custom vector size.
func NewWithDimensions(dims int) *Embedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &Embedder{dimensions: dims}
}

// Embed converts text to a unit vector. Tokens are lowercased alphanumeric
// runs, so JSON punctuation in serialized records does not pollute the
// token set.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embedding := make([]float32, e.dimensions)
	for _, token := range tokenize(text) {
		addTokenDirection(embedding, token)
	}
	return normalize(embedding), nil
}

// Dimensions returns the embedding size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// tokenize splits text into lowercase alphanumeric runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// addTokenDirection accumulates the token's pseudo-random unit direction,
// seeded by its FNV hash and expanded with an LCG.
func addTokenDirection(embedding []float32, token string) {
	h := fnv.New64a()
	h.Write([]byte(token))
	seed := h.Sum64()

	for i := range embedding {
		seed = seed*6364136223846793005 + 1442695040888963407
		embedding[i] += float32(int64(seed)) / float32(math.MaxInt64)
	}
}

// normalize converts the vector to unit length.
func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = float32(math.Sqrt(float64(norm)))
	for i, v := range vec {
		vec[i] = v / norm
	}
	return vec
}
