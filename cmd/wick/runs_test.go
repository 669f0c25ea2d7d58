package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondq/wick/internal/runstore"
)

func openSeededStore(t *testing.T) *runstore.Store {
	t.Helper()
	store, err := runstore.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, rec := range []runstore.Record{
		{RunID: "cafe0001-0000-7000-8000-000000000001", Molecule: "h2", Method: "exact", TotalEnergy: -1.137306},
		{RunID: "cafe0002-0000-7000-8000-000000000002", Molecule: "h2", Method: "vqe", TotalEnergy: -1.137304},
		{RunID: "beef0001-0000-7000-8000-000000000003", Molecule: "heh+", Method: "exact", TotalEnergy: -2.862181},
	} {
		_, err := store.Save(rec)
		require.NoError(t, err)
	}
	return store
}

func TestResolveRun(t *testing.T) {
	store := openSeededStore(t)

	t.Run("full id", func(t *testing.T) {
		rec, err := resolveRun(store, "beef0001-0000-7000-8000-000000000003")
		require.NoError(t, err)
		assert.Equal(t, "heh+", rec.Molecule)
	})

	t.Run("unique prefix", func(t *testing.T) {
		rec, err := resolveRun(store, "beef")
		require.NoError(t, err)
		assert.Equal(t, "heh+", rec.Molecule)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := resolveRun(store, "cafe")
		assert.ErrorIs(t, err, runstore.ErrInvalidID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := resolveRun(store, "dead")
		assert.ErrorIs(t, err, runstore.ErrNotFound)
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "cafe0001", shortID("cafe0001-0000-7000-8000-000000000001"))
	assert.Equal(t, "short", shortID("short"))
}
