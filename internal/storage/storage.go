// Package storage holds the save backends behind pkg/storage.Storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/tower-engine/pkg/state"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown save backend")

// Options selects and configures a backend.
type Options struct {
	Backend   string
	SavePath  string // file backend: session file for the default slot
	AgePath   string // file backend: age file
	StorePath string // bolt and sqlite database file
	RedisURL  string
}

// Open builds the backend named by opts.Backend and checks it is reachable.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (storage.Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		s   storage.Storage
		err error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		s, err = NewFileStorage(opts.SavePath, opts.AgePath, logger)
	case BackendBolt:
		s, err = NewBoltStorage(opts.StorePath, logger)
	case BackendSQLite:
		s, err = NewSQLiteStorage(ctx, opts.StorePath, logger)
	case BackendRedis:
		s, err = NewRedisStorage(opts.RedisURL, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	logger.Debug("Save backend ready", "backend", opts.Backend)
	return s, nil
}

type ageRecord struct {
	Age int `json:"age"`
}

func encodeSnapshot(snap *state.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, errors.New("snapshot cannot be nil")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*state.Snapshot, error) {
	var snap state.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snap, nil
}

func encodeAge(age int) ([]byte, error) {
	data, err := json.Marshal(ageRecord{Age: age})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal age: %w", err)
	}
	return data, nil
}

func decodeAge(data []byte) (int, error) {
	var rec ageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("failed to unmarshal age: %w", err)
	}
	return rec.Age, nil
}
