package feedback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evoforge/evo-go-sdk/feedback"
	"github.com/evoforge/evo-go-sdk/memory"
)

func newLoop(ctx context.Context) (*feedback.Loop, *memory.System) {
	sys := memory.NewSystem(ctx, &memory.Config{Collection: "feedback"})
	return feedback.New(sys), sys
}

func TestLoop_ProcessObservationExtractsFields(t *testing.T) {
	loop, _ := newLoop(context.Background())

	obs := loop.ProcessObservation(map[string]any{
		"action":    "search",
		"result":    "success",
		"output":    "3 hits",
		"timestamp": "2026-08-30T10:00:00Z",
		"extra":     "dropped",
	})

	assert.NotEmpty(t, obs.ID)
	assert.Equal(t, "search", obs.Action)
	assert.Equal(t, "success", obs.Result)
	assert.Equal(t, "3 hits", obs.Output)
	assert.Equal(t, "2026-08-30T10:00:00Z", obs.Timestamp)
}

func TestLoop_ProcessObservationToleratesMissingFields(t *testing.T) {
	loop, _ := newLoop(context.Background())

	obs := loop.ProcessObservation(map[string]any{"action": "search"})
	assert.Equal(t, "search", obs.Action)
	assert.Empty(t, obs.Result)

	obs = loop.ProcessObservation(nil)
	assert.Empty(t, obs.Action)
}

func TestLoop_DetectPatternsNeedsTwoOccurrences(t *testing.T) {
	loop, _ := newLoop(context.Background())

	loop.ProcessObservation(map[string]any{"action": "search"})
	loop.ProcessObservation(map[string]any{"action": "email"})
	assert.Empty(t, loop.DetectPatterns())

	loop.ProcessObservation(map[string]any{"action": "search"})
	patterns := loop.DetectPatterns()
	require.Len(t, patterns, 1)
	assert.Equal(t, "search", patterns[0].Action)
	assert.Equal(t, 2, patterns[0].Frequency)
}

func TestLoop_StoreObservationWritesAllTiers(t *testing.T) {
	ctx := context.Background()
	loop, sys := newLoop(ctx)

	obs := loop.ProcessObservation(map[string]any{
		"action": "search",
		"result": "success",
	})
	require.NoError(t, loop.StoreObservation(ctx, obs))

	last, ok := sys.Working.Retrieve(feedback.KeyLastObservation)
	require.True(t, ok)
	assert.Equal(t, obs, last)
	assert.Equal(t, 1, loop.EpisodicCount())

	similar, err := sys.Episodic.RetrieveSimilar(ctx, "search", 5)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "search", similar[0]["action"])
}

func TestLoop_EpisodicCountAccumulates(t *testing.T) {
	ctx := context.Background()
	loop, _ := newLoop(ctx)

	for i := 0; i < 3; i++ {
		obs := loop.ProcessObservation(map[string]any{"action": "search", "output": string(rune('a' + i))})
		require.NoError(t, loop.StoreObservation(ctx, obs))
	}
	assert.Equal(t, 3, loop.EpisodicCount())
	assert.Equal(t, 2, loop.WorkingSize()) // last_observation + episodic_count
}

func TestLoop_SemanticFacts(t *testing.T) {
	loop, sys := newLoop(context.Background())

	loop.UpdateSemanticMemory("search_works", "use quotes for exact match")

	v, ok := loop.SemanticFact("search_works")
	assert.True(t, ok)
	assert.Equal(t, "use quotes for exact match", v)

	// The fact lives on the shared system, visible to every sharer.
	v, ok = sys.Semantic.RetrieveFact("search_works")
	assert.True(t, ok)
	assert.Equal(t, "use quotes for exact match", v)
}

func TestLoop_SharedSystemSurvivesFacadeCleanup(t *testing.T) {
	ctx := context.Background()
	loop, sys := newLoop(ctx)

	obs := loop.ProcessObservation(map[string]any{"action": "search"})
	require.NoError(t, loop.StoreObservation(ctx, obs))
	loop.UpdateSemanticMemory("lesson", "keep queries short")

	require.NoError(t, sys.Cleanup(ctx))

	// Episodic is gone, working and semantic state remain.
	similar, err := sys.Episodic.RetrieveSimilar(ctx, "search", 5)
	require.NoError(t, err)
	assert.Empty(t, similar)
	assert.Equal(t, 1, loop.EpisodicCount())
	_, ok := loop.SemanticFact("lesson")
	assert.True(t, ok)
}
