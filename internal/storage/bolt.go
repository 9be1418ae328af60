package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/jwebster45206/tower-engine/pkg/state"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

// DefaultStorePath is the database file for the bolt and sqlite backends.
const DefaultStorePath = "tower.db"

var (
	bucketSessions = []byte("sessions")
	bucketMeta     = []byte("meta")
	keyAge         = []byte("age")
)

// BoltStorage keeps sessions and the age in a single bbolt file.
type BoltStorage struct {
	db     *bbolt.DB
	logger *slog.Logger
}

var _ storage.Storage = (*BoltStorage)(nil)

// NewBoltStorage opens or creates the database and ensures its buckets.
func NewBoltStorage(path string, logger *slog.Logger) (*BoltStorage, error) {
	if path == "" {
		path = DefaultStorePath
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSessions, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: create buckets: %w", err)
	}

	return &BoltStorage{db: db, logger: logger}, nil
}

func (b *BoltStorage) Ping(ctx context.Context) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketSessions) == nil {
			return fmt.Errorf("bolt: missing bucket %s", bucketSessions)
		}
		return nil
	})
}

func (b *BoltStorage) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *BoltStorage) SaveSession(ctx context.Context, slot string, snap *state.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(slot), data)
	})
	if err != nil {
		b.logger.Error("Failed to save session", "slot", slot, "error", err)
		return fmt.Errorf("bolt: save session: %w", err)
	}
	return nil
}

func (b *BoltStorage) LoadSession(ctx context.Context, slot string) (*state.Snapshot, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		// Bytes returned by Get are only valid inside the transaction.
		if v := tx.Bucket(bucketSessions).Get([]byte(slot)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return decodeSnapshot(data)
}

func (b *BoltStorage) DeleteSession(ctx context.Context, slot string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Delete([]byte(slot))
	})
}

func (b *BoltStorage) SaveAge(ctx context.Context, age int) error {
	data, err := encodeAge(age)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keyAge, data)
	})
	if err != nil {
		return fmt.Errorf("bolt: save age: %w", err)
	}
	return nil
}

func (b *BoltStorage) LoadAge(ctx context.Context) (int, bool, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get(keyAge); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("bolt: load age: %w", err)
	}
	if data == nil {
		return 0, false, nil
	}
	age, err := decodeAge(data)
	if err != nil {
		return 0, false, err
	}
	return age, true, nil
}
