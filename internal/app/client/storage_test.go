package client

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sticky/internal/infrastructure/migration"
)

func TestStorage_SessionRoundTrip(t *testing.T) {
	sqlite, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	storages := map[string]Storage{
		"sqlite": sqlite,
		"memory": NewMemoryStorage(),
	}

	for name, storage := range storages {
		t.Run(name, func(t *testing.T) {
			_, ok, err := storage.LoadSession()
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, storage.SaveSession(SessionState{Email: "a@b.com", APIBaseURL: "http://x"}))
			require.NoError(t, storage.SaveSession(SessionState{Email: "c@d.com", APIBaseURL: "http://y"}))

			state, ok, err := storage.LoadSession()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "c@d.com", state.Email, "выигрывает последняя запись")
			assert.Equal(t, "http://y", state.APIBaseURL)
			assert.WithinDuration(t, time.Now(), state.UpdatedAt, time.Minute)
		})
	}
}

func TestSQLiteStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveSession(SessionState{Email: "a@b.com"}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	defer second.Close()

	state, ok, err := second.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", state.Email)
}

func TestSQLiteStorage_MigrationError(t *testing.T) {
	engine := func(string) (migration.Migrator, error) {
		return nil, errors.New("engine crash")
	}

	_, err := newSQLiteStorage(filepath.Join(t.TempDir(), "state.db"), engine)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine crash")
}
