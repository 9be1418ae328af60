package storage

import (
	"context"

	"github.com/jwebster45206/tower-engine/pkg/state"
)

// DefaultSlot is the slot the game saves to.
const DefaultSlot = "default"

// Storage defines a unified interface for everything the game persists:
// saved sessions keyed by slot and the player's verified age.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations. LoadSession returns (nil, nil) for an empty slot.
	SaveSession(ctx context.Context, slot string, snap *state.Snapshot) error
	LoadSession(ctx context.Context, slot string) (*state.Snapshot, error)
	DeleteSession(ctx context.Context, slot string) error

	// Age operations. LoadAge reports ok=false when no age was stored.
	SaveAge(ctx context.Context, age int) error
	LoadAge(ctx context.Context) (age int, ok bool, err error)
}
