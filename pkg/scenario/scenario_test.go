package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/tower-engine/pkg/conditionals"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

func waitRender(st Stage, ps *state.PlayerState) state.Location { return "" }

// completeScenes returns one trivial scene per playable location.
func completeScenes() []*Scene {
	var scenes []*Scene
	for _, loc := range state.Locations() {
		if loc.Terminal() {
			continue
		}
		scenes = append(scenes, &Scene{Location: loc, Render: waitRender})
	}
	return scenes
}

func TestNewStore_Complete(t *testing.T) {
	store, err := NewStore("test", completeScenes(), nil)
	require.NoError(t, err)
	assert.Equal(t, 26, store.Len())
	assert.NotNil(t, store.Overlay())

	sc, ok := store.Scene(state.Lookout)
	require.True(t, ok)
	assert.Equal(t, state.Lookout, sc.Location)

	_, ok = store.Scene(state.Exit)
	assert.False(t, ok)
}

func TestNewStore_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(scenes []*Scene) []*Scene
	}{
		{
			name:   "missing location",
			mutate: func(scenes []*Scene) []*Scene { return scenes[1:] },
		},
		{
			name: "duplicate location",
			mutate: func(scenes []*Scene) []*Scene {
				return append(scenes, &Scene{Location: state.Base, Render: waitRender})
			},
		},
		{
			name: "terminal scene",
			mutate: func(scenes []*Scene) []*Scene {
				return append(scenes, &Scene{Location: state.Exit, Render: waitRender})
			},
		},
		{
			name: "no renderer",
			mutate: func(scenes []*Scene) []*Scene {
				scenes[0].Render = nil
				return scenes
			},
		},
		{
			name: "unknown target",
			mutate: func(scenes []*Scene) []*Scene {
				scenes[0].Rules = []Rule{{Command: "go up", Go: "moon"}}
				return scenes
			},
		},
		{
			name: "negative price",
			mutate: func(scenes []*Scene) []*Scene {
				scenes[0].Rules = []Rule{{Command: "buy", Price: -1}}
				return scenes
			},
		},
		{
			name: "empty command",
			mutate: func(scenes []*Scene) []*Scene {
				scenes[0].Rules = []Rule{{Go: state.Base}}
				return scenes
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore("broken", tt.mutate(completeScenes()), nil)
			require.ErrorIs(t, err, ErrIncomplete)
		})
	}
}

func TestScene_Match(t *testing.T) {
	sc := &Scene{
		Location: state.JustAChillGuy,
		Rules: []Rule{
			{Command: "use mask", When: conditionals.Items(state.ItemMask), Go: state.Corner},
			{Command: "use mask", Say: []string{"no mask"}},
			{Command: "back", Go: state.GlassFloor},
		},
	}

	ps := state.NewPlayerState()
	r, ok := sc.Match("use mask", ps)
	require.True(t, ok)
	assert.Equal(t, []string{"no mask"}, r.Say)

	ps.Grant(state.ItemMask)
	r, ok = sc.Match("use mask", ps)
	require.True(t, ok)
	assert.Equal(t, state.Corner, r.Go)

	_, ok = sc.Match("fly", ps)
	assert.False(t, ok)
}

func TestScene_InvalidLine(t *testing.T) {
	assert.Equal(t, DefaultInvalid, (&Scene{}).InvalidLine())
	assert.Equal(t, "custom", (&Scene{Invalid: "custom"}).InvalidLine())
}

func TestRule_IsTransaction(t *testing.T) {
	assert.True(t, (&Rule{Price: 5}).IsTransaction())
	assert.False(t, (&Rule{}).IsTransaction())
}
