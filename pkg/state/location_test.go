package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    Location
		wantErr bool
	}{
		{"base", Base, false},
		{"Patrick", Patrick, false},
		{"patrick", Patrick, false},
		{"  glass_floor ", GlassFloor, false},
		{"EDGEWALK", EdgeWalk, false},
		{"exit", Exit, false},
		{"moon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocation(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownLocation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocations(t *testing.T) {
	all := Locations()
	assert.Len(t, all, 28)
	assert.Equal(t, Base, InitialLocation)

	terminal := 0
	for _, l := range all {
		assert.True(t, l.Valid(), l)
		if l.Terminal() {
			terminal++
		}
	}
	assert.Equal(t, 2, terminal)

	all[0] = "mutated"
	assert.Equal(t, Base, Locations()[0])
}

func TestNormalizeCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Go North", "go north"},
		{"  go   NORTH  ", "go north"},
		{"BUY\tEdgeWalk  ticket", "buy edgewalk ticket"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCommand(tt.in), "input %q", tt.in)
	}

	assert.True(t, IsUniversal("inventory"))
	assert.True(t, IsUniversal("debug"))
	assert.False(t, IsUniversal("help"))
}

func TestNormalizeCommand_Concurrent(t *testing.T) {
	inputs := []string{"Go North", "  BUY   Ticket ", "İnventory", "Straße"}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = NormalizeCommand(in)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(inputs)*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				for i, in := range inputs {
					if got := NormalizeCommand(in); got != want[i] {
						errs <- got
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	var bad []string
	for got := range errs {
		bad = append(bad, got)
	}
	assert.Empty(t, bad)
}
