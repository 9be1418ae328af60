package engine_test

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jwebster45206/tower-engine/pkg/engine"
	"github.com/jwebster45206/tower-engine/pkg/overlay"
	"github.com/jwebster45206/tower-engine/pkg/scenario/cntower"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	eng   *engine.Engine
	out   *engine.Transcript
	in    *engine.ScriptedInput
	saves *storage.MockStorage
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newFixture builds an engine over the CN Tower content with a recording
// output and scripted input. cfg fields left zero get test defaults.
func newFixture(t *testing.T, cfg engine.Config, lines ...string) *fixture {
	t.Helper()

	if cfg.Store == nil {
		store, err := cntower.New(overlay.Empty())
		require.NoError(t, err)
		cfg.Store = store
	}
	f := &fixture{
		out:   engine.NewTranscript(),
		in:    engine.NewScriptedInput(lines...),
		saves: storage.NewMockStorage(),
	}
	cfg.Out = f.out
	if cfg.In == nil {
		cfg.In = f.in
	}
	if cfg.Saves == nil {
		cfg.Saves = f.saves
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(1, 2))
	}
	cfg.Logger = quietLogger()

	eng, err := engine.New(cfg)
	require.NoError(t, err)
	f.eng = eng
	return f
}

func TestNew_RequiresCollaborators(t *testing.T) {
	store, err := cntower.New(nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  engine.Config
	}{
		{"no store", engine.Config{Out: engine.NewTranscript(), In: engine.NewScriptedInput()}},
		{"no output", engine.Config{Store: store, In: engine.NewScriptedInput()}},
		{"no input", engine.Config{Store: store, Out: engine.NewTranscript()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.New(tt.cfg)
			require.Error(t, err)
		})
	}
}

func TestNew_RestrictedDisablesOverlay(t *testing.T) {
	f := newFixture(t, engine.Config{Overlay: true, Restricted: true})
	require.False(t, f.eng.OverlayEnabled())

	f = newFixture(t, engine.Config{Overlay: true})
	require.True(t, f.eng.OverlayEnabled())
}
