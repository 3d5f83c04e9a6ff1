package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evoforge/evo-go-sdk/memory"
)

func TestWorkingMemory_StoreAndRetrieve(t *testing.T) {
	w := memory.NewWorkingMemory()

	w.Store("user_input", "hello, world")

	v, ok := w.Retrieve("user_input")
	assert.True(t, ok)
	assert.Equal(t, "hello, world", v)
}

func TestWorkingMemory_RetrieveMissingKeyIsSoftMiss(t *testing.T) {
	w := memory.NewWorkingMemory()

	v, ok := w.Retrieve("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestWorkingMemory_OverwriteKeepsLatestValue(t *testing.T) {
	w := memory.NewWorkingMemory()

	w.Store("mode", "explore")
	w.Store("mode", "respond")

	v, _ := w.Retrieve("mode")
	assert.Equal(t, "respond", v)
}

func TestWorkingMemory_ClearRemovesEverything(t *testing.T) {
	w := memory.NewWorkingMemory()
	w.Store("key1", "value1")
	w.Store("key2", 2)

	w.Clear()

	assert.Equal(t, 0, w.Len())
	_, ok := w.Retrieve("key1")
	assert.False(t, ok)
	_, ok = w.Retrieve("key2")
	assert.False(t, ok)
}

func TestWorkingMemory_ClearOnFreshInstanceIsIdempotent(t *testing.T) {
	w := memory.NewWorkingMemory()

	w.Clear()
	w.Clear()

	// Indistinguishable from a brand-new instance.
	fresh := memory.NewWorkingMemory()
	for _, key := range []string{"", "a", "last_observation"} {
		_, okCleared := w.Retrieve(key)
		_, okFresh := fresh.Retrieve(key)
		assert.Equal(t, okFresh, okCleared)
	}
	assert.Equal(t, fresh.Len(), w.Len())
}
