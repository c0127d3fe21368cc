package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry()

	id := registry.Create()
	require.NotEmpty(t, id)

	snapshot, ok := registry.Get(id)
	require.True(t, ok)
	require.Equal(t, StateRunning, snapshot.State)
	require.Empty(t, snapshot.Artifact)

	require.NoError(t, registry.Complete(id, "store_id,...\n"))

	snapshot, ok = registry.Get(id)
	require.True(t, ok)
	require.Equal(t, StateComplete, snapshot.State)
	require.Equal(t, "store_id,...\n", snapshot.Artifact)
}

func TestRegistryUnknownID(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Get("nope")
	require.False(t, ok)

	require.Error(t, registry.Complete("nope", ""))
	require.Error(t, registry.Fail("nope", errors.New("boom")))
}

func TestRegistryFail(t *testing.T) {
	registry := NewRegistry()
	id := registry.Create()

	require.NoError(t, registry.Fail(id, errors.New("dataset unavailable")))

	snapshot, ok := registry.Get(id)
	require.True(t, ok)
	require.Equal(t, StateFailed, snapshot.State)
	require.Equal(t, "dataset unavailable", snapshot.Diagnostic)
}

func TestRegistryTransitionsAtMostOnce(t *testing.T) {
	registry := NewRegistry()
	id := registry.Create()

	require.NoError(t, registry.Complete(id, "csv"))
	require.Error(t, registry.Complete(id, "csv again"))
	require.Error(t, registry.Fail(id, errors.New("late failure")))

	snapshot, _ := registry.Get(id)
	require.Equal(t, StateComplete, snapshot.State)
	require.Equal(t, "csv", snapshot.Artifact)
}

func TestRegistryDistinctIDs(t *testing.T) {
	registry := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := registry.Create()
		require.False(t, seen[id])
		seen[id] = true
	}
}
