package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSnapshot wraps every reason a saved session is rejected.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the persisted form of a play session.
type Snapshot struct {
	ID       uuid.UUID   `json:"id"`
	Location Location    `json:"location"`
	Player   PlayerState `json:"player"`
	SavedAt  time.Time   `json:"saved_at"`
}

// NewSnapshot captures a copy of ps at loc.
func NewSnapshot(id uuid.UUID, loc Location, ps *PlayerState) *Snapshot {
	return &Snapshot{
		ID:       id,
		Location: loc,
		Player:   *ps.Clone(),
		SavedAt:  time.Now().UTC(),
	}
}

// Validate rejects snapshots the engine cannot resume from.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: empty", ErrInvalidSnapshot)
	}
	if !s.Location.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidSnapshot, ErrUnknownLocation, s.Location)
	}
	if s.Location.Terminal() {
		return fmt.Errorf("%w: terminal location %q", ErrInvalidSnapshot, s.Location)
	}
	if s.Player.Currency < 0 {
		return fmt.Errorf("%w: negative currency %d", ErrInvalidSnapshot, s.Player.Currency)
	}
	return nil
}

// Restore returns the location and a fresh copy of the saved player.
func (s *Snapshot) Restore() (Location, *PlayerState) {
	ps := s.Player.Clone()
	ps.Normalize()
	return s.Location, ps
}

// DefaultSession is what a failed or missing load degrades to.
func DefaultSession() (Location, *PlayerState) {
	return InitialLocation, NewPlayerState()
}
