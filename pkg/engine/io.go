package engine

import (
	"context"
	"time"

	"github.com/jwebster45206/tower-engine/pkg/state"
)

// Output is where the engine writes. Say carries narration that may have
// been through the overlay, Notice carries system messages that never are.
type Output interface {
	Say(line string)
	Notice(line string)
	Pause(d time.Duration)
	Break()
	Clear()
}

// Prompter reads one line of player input. It returns io.EOF when input is
// exhausted.
type Prompter interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// SessionStore persists snapshots by slot. LoadSession returns (nil, nil)
// when the slot is empty.
type SessionStore interface {
	SaveSession(ctx context.Context, slot string, snap *state.Snapshot) error
	LoadSession(ctx context.Context, slot string) (*state.Snapshot, error)
}

// BannerSource supplies the tower art shown at the information booth.
type BannerSource interface {
	FetchBanner(ctx context.Context) (string, bool)
}

// DebugConsole is the developer menu reached with the "debug" command.
type DebugConsole interface {
	Run(ctx context.Context, ps *state.PlayerState, overlay, restricted bool) (DebugResult, error)
}

// DebugResult is what the debug menu hands back. A zero Jump keeps the
// current location and a nil State keeps the current player.
type DebugResult struct {
	Jump    state.Location
	State   *state.PlayerState
	Overlay bool
}
