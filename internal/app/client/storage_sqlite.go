package client

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"sticky/internal/infrastructure/migration"
)

type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage открывает файл состояния и применяет миграции
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	return newSQLiteStorage(path, migration.DefaultEngine)
}

func newSQLiteStorage(path string, engine migration.MigrationEngine) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога состояния: %w", err)
	}

	if err := migration.NewMigration(path, engine).Up(); err != nil {
		return nil, fmt.Errorf("ошибка миграции базы данных: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) SaveSession(state SessionState) error {
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO session_state (id, email, api_base_url, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			api_base_url = excluded.api_base_url,
			updated_at = excluded.updated_at
	`, state.Email, state.APIBaseURL, state.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) LoadSession() (SessionState, bool, error) {
	var state SessionState
	err := s.db.QueryRow(`
		SELECT email, api_base_url, updated_at FROM session_state WHERE id = 1
	`).Scan(&state.Email, &state.APIBaseURL, &state.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return SessionState{}, false, nil
	}
	if err != nil {
		return SessionState{}, false, fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	return state, true, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
