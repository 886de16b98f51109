package migration

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMigrator - мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)

	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotURL string
	engine := func(databaseURL string) (Migrator, error) {
		gotURL = databaseURL
		return mockM, nil
	}

	mg := NewMigration("/tmp/state.db", engine)
	err := mg.Up()

	assert.NoError(t, err)
	assert.Equal(t, "sqlite3:///tmp/state.db", gotURL)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(string) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration("state.db", engine).Up()

	assert.NoError(t, err)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_Error(t *testing.T) {
	mockM := new(MockMigrator)
	upErr := errors.New("dirty database")

	mockM.On("Up").Return(upErr)
	mockM.On("Close").Return(nil, errors.New("close failed"))

	engine := func(string) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration("state.db", engine).Up()

	require.Error(t, err)
	assert.ErrorIs(t, err, upErr)
	assert.Contains(t, err.Error(), "close failed")
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration("state.db", engine).Up()

	assert.Error(t, err)
	assert.Equal(t, "engine crash", err.Error())
}

func TestMigration_DefaultEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	mg := NewMigration(path, DefaultEngine)
	require.NoError(t, mg.Up())
	// повторный запуск ничего не меняет
	require.NoError(t, mg.Up())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO session_state (id, email, api_base_url) VALUES (1, 'a@b.com', 'http://x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO session_state (id, email) VALUES (2, 'c@d.com')`)
	assert.Error(t, err, "в таблице одна строка")
}
