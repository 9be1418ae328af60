package conditionals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/tower-engine/pkg/state"
)

func TestWhen_Holds(t *testing.T) {
	forty := 40

	tests := []struct {
		name     string
		when     *When
		setup    func(ps *state.PlayerState)
		expected bool
	}{
		{"nil holds", nil, func(ps *state.PlayerState) {}, true},
		{"empty holds", &When{}, func(ps *state.PlayerState) {}, true},
		{
			name:     "has items all held",
			when:     Items(state.ItemMask, state.ItemBible),
			setup:    func(ps *state.PlayerState) { ps.Grant(state.ItemMask); ps.Grant(state.ItemBible) },
			expected: true,
		},
		{
			name:     "has items one missing",
			when:     Items(state.ItemMask, state.ItemBible),
			setup:    func(ps *state.PlayerState) { ps.Grant(state.ItemMask) },
			expected: false,
		},
		{
			name:     "lacks item",
			when:     &When{LacksItems: []state.Item{state.ItemMask}},
			setup:    func(ps *state.PlayerState) { ps.Grant(state.ItemMask) },
			expected: false,
		},
		{
			name:     "flag unset reads default",
			when:     FlagIs(state.FlagMetPatrick, true, true),
			setup:    func(ps *state.PlayerState) {},
			expected: true,
		},
		{
			name:     "flag explicit false overrides default",
			when:     FlagIs(state.FlagMetPatrick, true, true),
			setup:    func(ps *state.PlayerState) { ps.SetFlag(state.FlagMetPatrick, false) },
			expected: false,
		},
		{
			name:     "unset fails once the flag is set to anything",
			when:     &When{Unset: []state.Flag{state.FlagWorkerTask}},
			setup:    func(ps *state.PlayerState) { ps.SetFlag(state.FlagWorkerTask, false) },
			expected: false,
		},
		{
			name:     "min currency met",
			when:     &When{MinCurrency: &forty},
			setup:    func(ps *state.PlayerState) {},
			expected: true,
		},
		{
			name:     "min currency short",
			when:     &When{MinCurrency: &forty},
			setup:    func(ps *state.PlayerState) { ps.Currency = 39 },
			expected: false,
		},
		{
			name: "all fields combined",
			when: &When{
				HasItems:    []state.Item{state.ItemTicket},
				LacksItems:  []state.Item{state.ItemEdgeWalkTicket},
				Flags:       []FlagCheck{{Flag: state.FlagMetAlex, Want: true}},
				Unset:       []state.Flag{state.FlagUsedMask},
				MinCurrency: &forty,
			},
			setup: func(ps *state.PlayerState) {
				ps.Grant(state.ItemTicket)
				ps.SetFlag(state.FlagMetAlex, true)
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := state.NewPlayerState()
			tt.setup(ps)
			assert.Equal(t, tt.expected, tt.when.Holds(ps))
		})
	}
}

func TestWhen_IsEmpty(t *testing.T) {
	var w *When
	assert.True(t, w.IsEmpty())
	assert.True(t, (&When{}).IsEmpty())
	assert.False(t, Items(state.ItemMask).IsEmpty())
	assert.False(t, (&When{Unset: []state.Flag{state.FlagUsedBible}}).IsEmpty())
}
