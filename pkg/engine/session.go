package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

const (
	msgWelcome    = "Welcome to the CN Tower Experience Simulator!"
	msgHelpHint   = `Type "Help" for commands.`
	msgGoodbye    = "Thanks for playing!"
	msgRestarting = "Restarting the game..."
)

// Run plays sessions until the player exits. Restart begins a new session
// with a fresh player. Running out of input counts as exit.
func (e *Engine) Run(ctx context.Context) error {
	for {
		again, err := e.play(ctx)
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// play runs one session and reports whether the player asked to restart.
func (e *Engine) play(ctx context.Context) (bool, error) {
	e.sessionID = uuid.New()
	log := e.logger.With("session_id", e.sessionID)
	log.Info("Session started", "scenario", e.store.Name, "overlay", e.overlay, "restricted", e.restricted)

	e.out.Clear()
	e.out.Notice(msgWelcome)
	e.out.Notice(msgHelpHint)

	loc, ps := state.DefaultSession()
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		settled, err := e.Settle(ctx, loc, ps)
		if errors.Is(err, io.EOF) {
			settled, err = state.Exit, nil
		}
		if err != nil {
			return false, fmt.Errorf("render %q: %w", loc, err)
		}

		switch settled {
		case state.Exit:
			e.out.Notice(msgGoodbye)
			log.Info("Session ended", "currency", ps.Currency)
			return false, nil
		case state.Restart:
			e.out.Notice(msgRestarting)
			log.Info("Session restarted")
			return true, nil
		}
		loc = settled

		line, err := e.in.ReadLine(ctx, CommandPrompt)
		if errors.Is(err, io.EOF) {
			line, err = state.CmdExit, nil
		}
		if err != nil {
			return false, fmt.Errorf("read command: %w", err)
		}

		out, err := e.Interpret(ctx, loc, line, ps)
		if errors.Is(err, io.EOF) {
			out, err = Outcome{Next: state.Exit, State: ps}, nil
		}
		if err != nil {
			return false, fmt.Errorf("interpret at %q: %w", loc, err)
		}
		loc, ps = out.Next, out.State
	}
}
