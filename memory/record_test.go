package memory_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evoforge/evo-go-sdk/memory"
)

func TestRecordID_DeterministicAcrossInsertionOrder(t *testing.T) {
	r1 := memory.Record{}
	r1["action"] = "search"
	r1["result"] = "success"
	r1["attempts"] = 3

	r2 := memory.Record{}
	r2["attempts"] = 3
	r2["result"] = "success"
	r2["action"] = "search"

	id1, err := r1.ID()
	require.NoError(t, err)
	id2, err := r2.ID()
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
}

func TestRecordID_DiffersForDifferentContent(t *testing.T) {
	base := memory.Record{"action": "search", "result": "success"}
	differentValue := memory.Record{"action": "search", "result": "failure"}
	differentKey := memory.Record{"action": "search", "outcome": "success"}

	baseID, err := base.ID()
	require.NoError(t, err)

	for _, other := range []memory.Record{differentValue, differentKey} {
		otherID, err := other.ID()
		require.NoError(t, err)
		assert.NotEqual(t, baseID, otherID)
	}
}

func TestRecordID_NoCollisionsAcrossRandomizedRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	seen := make(map[string]string, 10000)

	for i := 0; i < 10000; i++ {
		rec := memory.Record{
			"action":  fmt.Sprintf("action_%d", rng.Intn(1000)),
			"result":  fmt.Sprintf("result_%d", rng.Intn(1000)),
			"attempt": rng.Intn(100),
			"nonce":   i, // guarantees distinct content per sample
		}
		id, err := rec.ID()
		require.NoError(t, err)

		canonical, err := rec.CanonicalJSON()
		require.NoError(t, err)
		if prior, ok := seen[id]; ok {
			t.Fatalf("id collision between %s and %s", prior, canonical)
		}
		seen[id] = string(canonical)
	}
}

func TestRecordCanonicalJSON_RejectsUnserializableValues(t *testing.T) {
	rec := memory.Record{"action": "search", "channel": make(chan int)}

	_, err := rec.CanonicalJSON()
	assert.ErrorIs(t, err, memory.ErrMalformedRecord)

	_, err = rec.ID()
	assert.ErrorIs(t, err, memory.ErrMalformedRecord)
}

func TestDecodeRecord_ReturnsIndependentCopy(t *testing.T) {
	original := memory.Record{"action": "search", "result": "success"}
	data, err := original.CanonicalJSON()
	require.NoError(t, err)

	decoded, err := memory.DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	decoded["action"] = "mutated"
	assert.Equal(t, "search", original["action"])
}
