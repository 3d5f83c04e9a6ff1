package hash_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evoforge/evo-go-sdk/memory/embedder/hash"
)

func cosine(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

func TestEmbedder_Deterministic(t *testing.T) {
	ctx := context.Background()
	e := hash.New()

	a, err := e.Embed(ctx, "search the web for golang")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "search the web for golang")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, e.Dimensions())
}

func TestEmbedder_ProducesUnitVectors(t *testing.T) {
	ctx := context.Background()
	e := hash.New()

	emb, err := e.Embed(ctx, "some text with several tokens")
	require.NoError(t, err)

	var norm float64
	for _, v := range emb {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-4)
}

func TestEmbedder_TokenOverlapRaisesSimilarity(t *testing.T) {
	ctx := context.Background()
	e := hash.New()

	query, err := e.Embed(ctx, "search")
	require.NoError(t, err)
	searchRecord, err := e.Embed(ctx, `{"action":"search","query":"golang tutorials"}`)
	require.NoError(t, err)
	emailRecord, err := e.Embed(ctx, `{"action":"email","recipient":"alice"}`)
	require.NoError(t, err)

	assert.Greater(t, cosine(query, searchRecord), cosine(query, emailRecord))
}

func TestEmbedder_TokenizationIgnoresPunctuationAndCase(t *testing.T) {
	ctx := context.Background()
	e := hash.New()

	a, err := e.Embed(ctx, `{"action":"search"}`)
	require.NoError(t, err)
	b, err := e.Embed(ctx, "ACTION search")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEmbedder_EmptyTextIsZeroVector(t *testing.T) {
	ctx := context.Background()
	e := hash.New()

	emb, err := e.Embed(ctx, "")
	require.NoError(t, err)
	for _, v := range emb {
		assert.Zero(t, v)
	}
}

func TestNewWithDimensions(t *testing.T) {
	e := hash.NewWithDimensions(32)
	assert.Equal(t, 32, e.Dimensions())

	e = hash.NewWithDimensions(0)
	assert.Equal(t, hash.DefaultDimensions, e.Dimensions())
}
