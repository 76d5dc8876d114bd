package visits

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegalab/omegaboard/internal/logging"
	"github.com/omegalab/omegaboard/internal/storage"
)

func TestCounterIncrements(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c := NewCounter(store, logging.NewJSON(io.Discard))

	n, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for want := 1; want <= 3; want++ {
		n, err = c.Increment(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	// Stored as a decimal string.
	raw, err := store.Get(ctx, storage.KeyVisitCount)
	require.NoError(t, err)
	assert.Equal(t, "3", string(raw))
}

func TestCounterSharedAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	log := logging.NewJSON(io.Discard)

	_, err := NewCounter(store, log).Increment(ctx)
	require.NoError(t, err)

	n, err := NewCounter(store, log).Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCounterRestartsOnCorruption(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyVisitCount, []byte("not a number")))

	c := NewCounter(store, logging.NewJSON(io.Discard))
	n, err := c.Increment(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
