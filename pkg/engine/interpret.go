package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwebster45206/tower-engine/pkg/scenario"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

// Outcome is the result of one command. State may be a different pointer
// than the one passed in after a load or a debug session.
type Outcome struct {
	Next  state.Location
	State *state.PlayerState
}

const (
	msgNoArt  = "Could not load CN Tower art."
	msgSaved  = "Game saved."
	msgLoaded = "Game loaded."
	msgNoSave = "No saved game found. Starting new game."
)

// Interpret applies one raw command at loc. Scene rules are tried first,
// then the universal commands; anything else prints the scene's invalid
// line and changes nothing.
func (e *Engine) Interpret(ctx context.Context, loc state.Location, raw string, ps *state.PlayerState) (Outcome, error) {
	sc, ok := e.store.Scene(loc)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNoScene, loc)
	}

	cmd := state.NormalizeCommand(raw)
	stay := Outcome{Next: loc, State: ps}
	e.logger.Debug("command", "session_id", e.sessionID, "location", loc, "command", cmd)

	if r, ok := sc.Match(cmd, ps); ok {
		return e.applyRule(ctx, loc, r, ps), nil
	}

	switch cmd {
	case state.CmdInventory:
		e.out.Notice(ps.Describe())
		return stay, nil
	case state.CmdExit:
		return Outcome{Next: state.Exit, State: ps}, nil
	case state.CmdRestart:
		return Outcome{Next: state.Restart, State: ps}, nil
	case state.CmdSave:
		e.save(ctx, loc, ps)
		return stay, nil
	case state.CmdLoad:
		next, loaded := e.load(ctx)
		return Outcome{Next: next, State: loaded}, nil
	case state.CmdDebug:
		return e.runDebug(ctx, loc, ps)
	}

	e.say(loc, sc.InvalidLine())
	return stay, nil
}

func (e *Engine) applyRule(ctx context.Context, loc state.Location, r *scenario.Rule, ps *state.PlayerState) Outcome {
	if r.IsTransaction() {
		if err := ps.Spend(r.Price); err != nil {
			broke := r.Broke
			if len(broke) == 0 {
				broke = []string{scenario.DefaultBroke}
			}
			e.say(loc, broke...)
			e.logger.Debug("transaction declined", "location", loc, "command", r.Command, "error", err)
			return Outcome{Next: loc, State: ps}
		}
	}

	r.Effect.Apply(ps)

	if r.ShowBanner {
		e.showBanner(ctx)
	}
	e.say(loc, r.Say...)

	next := r.Go
	if next == "" {
		next = loc
	}
	return Outcome{Next: next, State: ps}
}

func (e *Engine) showBanner(ctx context.Context) {
	if e.banner != nil {
		if art, ok := e.banner.FetchBanner(ctx); ok {
			e.out.Say(art)
			return
		}
	}
	e.out.Notice(msgNoArt)
}

func (e *Engine) save(ctx context.Context, loc state.Location, ps *state.PlayerState) {
	if e.saves == nil {
		e.out.Notice("Error saving game: no save store configured")
		return
	}
	snap := state.NewSnapshot(e.sessionID, loc, ps)
	if err := e.saves.SaveSession(ctx, e.slot, snap); err != nil {
		e.logger.Error("Failed to save session", "session_id", e.sessionID, "slot", e.slot, "error", err)
		e.out.Notice(fmt.Sprintf("Error saving game: %v", err))
		return
	}
	e.logger.Info("Session saved", "session_id", e.sessionID, "slot", e.slot, "location", loc)
	e.out.Notice(msgSaved)
}

// load never fails: anything short of a valid snapshot degrades to the
// default session with a notice.
func (e *Engine) load(ctx context.Context) (state.Location, *state.PlayerState) {
	if e.saves == nil {
		e.out.Notice(msgNoSave)
		return state.DefaultSession()
	}

	snap, err := e.saves.LoadSession(ctx, e.slot)
	if err == nil && snap != nil {
		err = snap.Validate()
	}

	switch {
	case err != nil:
		e.logger.Warn("Failed to load session", "slot", e.slot, "error", err)
		if errors.Is(err, state.ErrInvalidSnapshot) {
			e.out.Notice(msgNoSave)
		} else {
			e.out.Notice(fmt.Sprintf("Error loading game: %v. Starting new game.", err))
		}
		return state.DefaultSession()
	case snap == nil:
		e.out.Notice(msgNoSave)
		return state.DefaultSession()
	}

	e.out.Notice(msgLoaded)
	e.logger.Info("Session loaded", "slot", e.slot, "saved_id", snap.ID, "location", snap.Location)
	return snap.Restore()
}

func (e *Engine) runDebug(ctx context.Context, loc state.Location, ps *state.PlayerState) (Outcome, error) {
	out := Outcome{Next: loc, State: ps}
	if e.debug == nil {
		e.say(loc, scenario.DefaultInvalid)
		return out, nil
	}

	res, err := e.debug.Run(ctx, ps, e.overlay, e.restricted)
	if err != nil {
		return out, fmt.Errorf("debug console: %w", err)
	}

	if res.State != nil {
		out.State = res.State
	}
	if res.Jump != "" {
		out.Next = res.Jump
	}
	e.overlay = res.Overlay
	e.logger.Info("Debug console closed", "location", out.Next, "overlay", e.overlay)
	return out, nil
}
