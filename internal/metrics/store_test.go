package metrics

import (
	"path/filepath"
	"testing"

	"github.com/mauv0809/crease/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) MetricsStore {
	t.Helper()

	db, closeDB, err := database.InitDB(filepath.Join(t.TempDir(), "metrics.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(closeDB)
	return New(db)
}

func TestCounterStore(t *testing.T) {
	store := newTestStore(t)

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	store.Add(KeyDeliveriesRecorded, 1)
	store.Add(KeyDeliveriesRecorded, 1)
	store.Add(KeyRunsScored, 6)
	store.Add(KeyRunsScored, 4)
	store.Add(KeyMatchesCompleted, 0)

	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyDeliveriesRecorded: 2,
		KeyRunsScored:         10,
	}, counters)

	t.Run("negative delta reverses an undone delivery", func(t *testing.T) {
		store.Add(KeyRunsScored, -4)
		store.Add(KeyDeliveriesRecorded, -1)

		counters, err := store.GetAll()
		require.NoError(t, err)
		assert.Equal(t, 6, counters[KeyRunsScored])
		assert.Equal(t, 1, counters[KeyDeliveriesRecorded])
	})
}
