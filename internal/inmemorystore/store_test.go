package inmemorystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/specialistvlad/axiomgrid/internal/unit"
	"github.com/specialistvlad/axiomgrid/internal/unitid"
	"github.com/specialistvlad/axiomgrid/internal/unitstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetStatus(t *testing.T) {
	s := New()
	ctx := context.Background()
	id := unitid.MustParse("core.models")

	// Untouched units are pending.
	status, err := s.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, unit.StatusPending, status)

	require.NoError(t, s.SetStatus(ctx, id, unit.StatusRepairing))

	status, err = s.GetStatus(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, unit.StatusRepairing, status)
}

func TestSetAndGetArtifact(t *testing.T) {
	s := New()
	ctx := context.Background()
	id := unitid.MustParse("core.models")

	_, ok, err := s.GetArtifact(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	expected := unitstore.Artifact{Path: "core/models.py", Content: "x = 1\n", Language: "python", Passed: true}
	require.NoError(t, s.SetArtifact(ctx, id, expected))

	got, ok, err := s.GetArtifact(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, expected, got)
}

func TestSetAndGetError(t *testing.T) {
	s := New()
	ctx := context.Background()
	id := unitid.MustParse("core.models")

	got, err := s.GetError(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	expected := errors.New("retries exceeded")
	require.NoError(t, s.SetError(ctx, id, expected))

	got, err = s.GetError(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestIndex_KeepsFirstIndexingOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Index(ctx, unitstore.IndexEntry{ID: "b", Passed: false}))
	require.NoError(t, s.Index(ctx, unitstore.IndexEntry{ID: "a", Passed: true}))
	// Re-indexing replaces the entry but keeps its position.
	require.NoError(t, s.Index(ctx, unitstore.IndexEntry{ID: "b", Passed: true}))

	ids, err := s.IndexedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []unitid.ID{"b", "a"}, ids)

	e, ok, err := s.Indexed(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, e.Passed)

	_, ok, err = s.Indexed(ctx, "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestStore_ConcurrentAccess verifies that the store can be safely accessed by
// multiple goroutines simultaneously without data races or lost writes.
func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()
	numGoroutines := 100
	var wg sync.WaitGroup

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			id := unitid.ID(fmt.Sprintf("unit.n%d", i))
			s.SetStatus(ctx, id, unit.StatusPassed)
			s.SetArtifact(ctx, id, unitstore.Artifact{Content: fmt.Sprint(i)})
			s.Index(ctx, unitstore.IndexEntry{ID: id})
		}(i)
	}
	wg.Wait()

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			id := unitid.ID(fmt.Sprintf("unit.n%d", i))

			status, err := s.GetStatus(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, unit.StatusPassed, status)

			a, ok, err := s.GetArtifact(ctx, id)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, fmt.Sprint(i), a.Content)
		}(i)
	}
	wg.Wait()

	ids, err := s.IndexedIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, numGoroutines)
}
