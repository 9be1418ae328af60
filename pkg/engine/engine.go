// Package engine plays a scenario: it renders locations, interprets player
// commands against each scene's rules and drives the session loop.
package engine

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tower-engine/pkg/scenario"
)

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = "default"

// CommandPrompt is shown before every command read.
const CommandPrompt = "> "

var (
	// ErrNoScene is returned when the store has nothing for a location.
	ErrNoScene = errors.New("no scene for location")
	// ErrAdvanceLoop is returned when auto-advancing scenes never settle.
	ErrAdvanceLoop = errors.New("auto-advance did not settle")
)

// Config wires an Engine. Store, Out and In are required.
type Config struct {
	Store  *scenario.Store
	Out    Output
	In     Prompter
	Saves  SessionStore
	Debug  DebugConsole
	Banner BannerSource
	Rand   *rand.Rand
	Logger *slog.Logger

	Slot       string
	Overlay    bool // initial sweet mode
	Restricted bool // disables sweet mode for the whole process
}

// Engine holds everything a session needs besides the player state, which
// the session loop owns.
type Engine struct {
	store  *scenario.Store
	out    Output
	in     Prompter
	saves  SessionStore
	debug  DebugConsole
	banner BannerSource
	rng    *rand.Rand
	logger *slog.Logger

	slot       string
	overlay    bool
	restricted bool
	sessionID  uuid.UUID
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.New("engine: store is required")
	}
	if cfg.Out == nil || cfg.In == nil {
		return nil, errors.New("engine: output and input are required")
	}

	e := &Engine{
		store:      cfg.Store,
		out:        cfg.Out,
		in:         cfg.In,
		saves:      cfg.Saves,
		debug:      cfg.Debug,
		banner:     cfg.Banner,
		rng:        cfg.Rand,
		logger:     cfg.Logger,
		slot:       cfg.Slot,
		overlay:    cfg.Overlay && !cfg.Restricted,
		restricted: cfg.Restricted,
		sessionID:  uuid.New(),
	}
	if e.rng == nil {
		now := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(now, now>>17))
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.slot == "" {
		e.slot = DefaultSlot
	}
	return e, nil
}

// OverlayEnabled reports whether sweet mode is currently on.
func (e *Engine) OverlayEnabled() bool {
	return e.overlay
}

// SessionID identifies the session in progress.
func (e *Engine) SessionID() uuid.UUID {
	return e.sessionID
}
