package state

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    *Snapshot
		wantErr bool
	}{
		{"nil", nil, true},
		{"ok", &Snapshot{Location: Lookout, Player: PlayerState{Currency: 5}}, false},
		{"unknown location", &Snapshot{Location: "moon"}, true},
		{"terminal location", &Snapshot{Location: Exit}, true},
		{"negative currency", &Snapshot{Location: Base, Player: PlayerState{Currency: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSnapshot)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSnapshot_JSONRestore(t *testing.T) {
	ps := NewPlayerState()
	ps.Currency = 12
	ps.Grant(ItemAlexPhone)
	ps.SetFlag(FlagUsedMask, false)

	snap := NewSnapshot(uuid.New(), PhoneFound, ps)
	ps.Grant(ItemTicket)

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, decoded.Validate())

	loc, restored := decoded.Restore()
	assert.Equal(t, PhoneFound, loc)
	assert.Equal(t, 12, restored.Currency)
	assert.Equal(t, []Item{ItemAlexPhone}, restored.Items)
	v, set := restored.Flag(FlagUsedMask)
	assert.False(t, v)
	assert.True(t, set)
	assert.Equal(t, snap.ID, decoded.ID)
}

func TestDefaultSession(t *testing.T) {
	loc, ps := DefaultSession()
	assert.Equal(t, Base, loc)
	assert.Equal(t, StartingCurrency, ps.Currency)
	assert.Empty(t, ps.Items)
	assert.Empty(t, ps.Flags)
}
