package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/jwebster45206/tower-engine/pkg/overlay"
	"github.com/jwebster45206/tower-engine/pkg/scenario"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

// Render narrates loc and returns its auto-advance successor, or the zero
// Location when the scene waits for a command.
func (e *Engine) Render(ctx context.Context, loc state.Location, ps *state.PlayerState) (state.Location, error) {
	sc, ok := e.store.Scene(loc)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoScene, loc)
	}

	e.out.Break()
	st := &stage{ctx: ctx, e: e, loc: loc}
	next := sc.Render(st, ps)
	if st.err != nil {
		return "", st.err
	}
	if next != "" && !next.Valid() {
		return "", fmt.Errorf("render %q: successor %w: %q", loc, state.ErrUnknownLocation, next)
	}
	return next, nil
}

// Settle renders loc and keeps rendering while scenes auto-advance. It
// stops at the first scene that waits for a command or at a terminal
// location, which is returned without being rendered.
func (e *Engine) Settle(ctx context.Context, loc state.Location, ps *state.PlayerState) (state.Location, error) {
	limit := e.store.Len() + 1
	for range limit {
		if loc.Terminal() {
			return loc, nil
		}
		next, err := e.Render(ctx, loc, ps)
		if err != nil {
			return "", err
		}
		if next == "" {
			return loc, nil
		}
		e.logger.Debug("auto-advance", "from", loc, "to", next)
		loc = next
	}
	return "", fmt.Errorf("%w after %d scenes, last %q", ErrAdvanceLoop, limit, loc)
}

// say prints lines as narration for loc.
func (e *Engine) say(loc state.Location, lines ...string) {
	for _, l := range lines {
		e.out.Say(e.sweeten(loc, l))
	}
}

func (e *Engine) sweeten(loc state.Location, text string) string {
	return overlay.Render(e.store.Overlay(), e.overlay, string(loc), text)
}

// stage is the scenario.Stage handed to one render call. The first input
// error sticks and silences the rest of the render.
type stage struct {
	ctx context.Context
	e   *Engine
	loc state.Location
	err error
}

func (s *stage) Say(lines ...string) {
	if s.err != nil {
		return
	}
	s.e.say(s.loc, lines...)
}

func (s *stage) Pause(d time.Duration) {
	if s.err != nil {
		return
	}
	s.e.out.Pause(d)
}

func (s *stage) ChooseTwo(c scenario.Choice) bool {
	if s.err != nil {
		return false
	}
	picked, err := s.e.chooseTwo(s.ctx, s.loc, c)
	if err != nil {
		s.err = err
		return false
	}
	return picked
}
