package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jwebster45206/tower-engine/pkg/state"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

// Default file locations, relative to the working directory.
const (
	DefaultSavePath = "savegame.json"
	DefaultAgePath  = "age.json"
)

// FileStorage keeps each slot in its own JSON file next to the default save
// file and the age in a separate file.
type FileStorage struct {
	mu       sync.Mutex
	savePath string
	agePath  string
	logger   *slog.Logger
}

var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates a file-backed store. Empty paths use the defaults.
func NewFileStorage(savePath, agePath string, logger *slog.Logger) (*FileStorage, error) {
	if savePath == "" {
		savePath = DefaultSavePath
	}
	if agePath == "" {
		agePath = DefaultAgePath
	}
	return &FileStorage{
		savePath: filepath.Clean(savePath),
		agePath:  filepath.Clean(agePath),
		logger:   logger,
	}, nil
}

// Ping checks that the save directory exists.
func (f *FileStorage) Ping(ctx context.Context) error {
	dir := filepath.Dir(f.savePath)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save directory unavailable: %s is not a directory", dir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

// slotPath maps "default" to the save file itself and any other slot to
// a sibling file, e.g. savegame-two.json.
func (f *FileStorage) slotPath(slot string) string {
	if slot == "" || slot == storage.DefaultSlot {
		return f.savePath
	}
	ext := filepath.Ext(f.savePath)
	return strings.TrimSuffix(f.savePath, ext) + "-" + slot + ext
}

func (f *FileStorage) SaveSession(ctx context.Context, slot string, snap *state.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	path := f.slotPath(slot)
	if err := writeFileAtomic(path, data); err != nil {
		f.logger.Error("Failed to save session", "slot", slot, "path", path, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (f *FileStorage) LoadSession(ctx context.Context, slot string) (*state.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.slotPath(slot)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug("Session not found", "slot", slot, "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return decodeSnapshot(data)
}

func (f *FileStorage) DeleteSession(ctx context.Context, slot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.slotPath(slot)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (f *FileStorage) SaveAge(ctx context.Context, age int) error {
	data, err := encodeAge(age)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := writeFileAtomic(f.agePath, data); err != nil {
		return fmt.Errorf("failed to save age: %w", err)
	}
	return nil
}

func (f *FileStorage) LoadAge(ctx context.Context) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.agePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read age: %w", err)
	}
	age, err := decodeAge(data)
	if err != nil {
		return 0, false, err
	}
	return age, true, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
