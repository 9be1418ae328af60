package scenario

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/tower-engine/pkg/overlay"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

// ErrIncomplete is returned when a Store does not cover every location.
var ErrIncomplete = errors.New("scenario incomplete")

// Store is the read-only content the engine plays: the scene graph plus the
// overlay table.
type Store struct {
	Name    string
	scenes  map[state.Location]*Scene
	overlay *overlay.Table
}

// NewStore validates scenes and builds a Store. Every non-terminal location
// needs exactly one scene with a renderer, and every rule must point at a
// declared location.
func NewStore(name string, scenes []*Scene, table *overlay.Table) (*Store, error) {
	if table == nil {
		table = overlay.Empty()
	}
	s := &Store{
		Name:    name,
		scenes:  make(map[state.Location]*Scene, len(scenes)),
		overlay: table,
	}

	var errs []error
	for _, sc := range scenes {
		if sc == nil {
			continue
		}
		if !sc.Location.Valid() || sc.Location.Terminal() {
			errs = append(errs, fmt.Errorf("scene for %q: not a playable location", sc.Location))
			continue
		}
		if _, dup := s.scenes[sc.Location]; dup {
			errs = append(errs, fmt.Errorf("scene for %q: defined twice", sc.Location))
			continue
		}
		if sc.Render == nil {
			errs = append(errs, fmt.Errorf("scene for %q: no renderer", sc.Location))
		}
		for _, r := range sc.Rules {
			if r.Command == "" {
				errs = append(errs, fmt.Errorf("scene for %q: rule without command", sc.Location))
			}
			if r.Go != "" && !r.Go.Valid() {
				errs = append(errs, fmt.Errorf("scene for %q: rule %q goes to unknown %q", sc.Location, r.Command, r.Go))
			}
			if r.Price < 0 {
				errs = append(errs, fmt.Errorf("scene for %q: rule %q has negative price", sc.Location, r.Command))
			}
		}
		s.scenes[sc.Location] = sc
	}

	for _, loc := range state.Locations() {
		if loc.Terminal() {
			continue
		}
		if _, ok := s.scenes[loc]; !ok {
			errs = append(errs, fmt.Errorf("no scene for %q", loc))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrIncomplete, name, errors.Join(errs...))
	}
	return s, nil
}

// Scene returns the scene for loc.
func (s *Store) Scene(loc state.Location) (*Scene, bool) {
	sc, ok := s.scenes[loc]
	return sc, ok
}

// Overlay returns the substitution table.
func (s *Store) Overlay() *overlay.Table {
	return s.overlay
}

// Len returns the number of scenes.
func (s *Store) Len() int {
	return len(s.scenes)
}
