package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jwebster45206/tower-engine/pkg/state"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	slot     TEXT PRIMARY KEY,
	data     TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStorage persists sessions in a SQLite file.
type SQLiteStorage struct {
	sqlDB  *sql.DB
	logger *slog.Logger
}

var _ storage.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens the database at path and creates its tables.
func NewSQLiteStorage(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStorage, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultStorePath
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return &SQLiteStorage{sqlDB: sqlDB, logger: logger}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sqlite db: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStorage) SaveSession(ctx context.Context, slot string, snap *state.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO sessions (slot, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		slot, string(data), time.Now().UTC().UnixMilli())
	if err != nil {
		s.logger.Error("Failed to save session", "slot", slot, "error", err)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) LoadSession(ctx context.Context, slot string) (*state.Snapshot, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM sessions WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return decodeSnapshot([]byte(data))
}

func (s *SQLiteStorage) DeleteSession(ctx context.Context, slot string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) SaveAge(ctx context.Context, age int) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('age', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(age))
	if err != nil {
		return fmt.Errorf("save age: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) LoadAge(ctx context.Context) (int, bool, error) {
	var value string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'age'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load age: %w", err)
	}
	age, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("load age: %w", err)
	}
	return age, true, nil
}
