package engine_test

import (
	"context"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/tower-engine/pkg/engine"
	"github.com/jwebster45206/tower-engine/pkg/scenario/cntower"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

type promptFunc func(ctx context.Context, prompt string) (string, error)

func (f promptFunc) ReadLine(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestShuffleWithGuarantee_BestAlwaysPresent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 2000 {
		got := engine.ShuffleWithGuarantee(cntower.SupportOptions, cntower.BestSupport, rng)
		require.Len(t, got, len(cntower.SupportOptions), "trial %d", i)
		require.Contains(t, got, cntower.BestSupport, "trial %d", i)
		require.ElementsMatch(t, cntower.SupportOptions, got, "trial %d", i)
	}
}

func TestShuffleWithGuarantee_ForcesMissingBestIntoLastSlot(t *testing.T) {
	opts := []string{"a", "b", "c"}
	rng := rand.New(rand.NewPCG(3, 5))

	for range 100 {
		got := engine.ShuffleWithGuarantee(opts, "best", rng)
		require.Len(t, got, 3)
		assert.Equal(t, "best", got[2])
	}
	assert.Equal(t, []string{"a", "b", "c"}, opts, "input must not be modified")
}

func TestShuffleWithGuarantee_Empty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	assert.Empty(t, engine.ShuffleWithGuarantee(nil, "best", rng))
}

func metAlex() *state.PlayerState {
	ps := state.NewPlayerState()
	ps.SetFlag(state.FlagMetAlex, true)
	return ps
}

func TestChooseTwo_RejectsBadInputWithoutConsumingSlots(t *testing.T) {
	f := newFixture(t, engine.Config{}, "abc", "0", "6", "1", "1", " 2 ")
	ps := metAlex()

	next, err := f.eng.Render(context.Background(), state.AlexRivers, ps)
	require.NoError(t, err)
	assert.Equal(t, state.Location(""), next)

	assert.Equal(t, []string{
		"Enter choice 1: ",
		"Enter choice 1: ",
		"Enter choice 1: ",
		"Enter choice 1: ",
		"Enter choice 2: ",
		"Enter choice 2: ",
	}, f.in.Prompts())
	assert.Zero(t, f.in.Remaining())

	lines := f.out.Lines()
	assert.Contains(t, lines, "Invalid input. Enter a number, please.")
	assert.Contains(t, lines, "Invalid choice. Pick a number from the list.")
	assert.Contains(t, lines, "You already picked that one. Choose another.")
	assert.Contains(t, lines, "You say:")
	assert.Equal(t, 4*time.Second, f.out.Paused())
}

// bestPicker answers the choice prompts by reading the numbered list from
// out: the first pick is the best option when pickBest is set, otherwise
// two options that are not the best.
func bestPicker(out **engine.Transcript, pickBest bool) promptFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		var bestNum int
		var others []int
		for _, l := range (*out).Said() {
			num, text, ok := strings.Cut(l, ". ")
			if !ok {
				continue
			}
			n, err := strconv.Atoi(num)
			if err != nil {
				continue
			}
			if text == cntower.BestSupport {
				bestNum = n
			} else {
				others = append(others, n)
			}
		}
		slices.Sort(others)

		switch prompt {
		case "Enter choice 1: ":
			if pickBest {
				return strconv.Itoa(bestNum), nil
			}
			return strconv.Itoa(others[0]), nil
		default:
			return strconv.Itoa(others[1]), nil
		}
	}
}

func TestChooseTwo_Reward(t *testing.T) {
	tests := []struct {
		name     string
		pickBest bool
		currency int
		items    []state.Item
		reply    string
	}{
		{
			name:     "best picked",
			pickBest: true,
			currency: state.StartingCurrency + cntower.RewardAlexSupport,
			items:    []state.Item{state.ItemMask, state.ItemTicket},
			reply:    `Alex: "Wow, you think so? That's awesome! Here, take $40. Also i'll give you a ticket and a mask"`,
		},
		{
			name:     "best missed",
			pickBest: false,
			currency: state.StartingCurrency,
			items:    nil,
			reply:    `Alex: "Thanks! Every little bit helps."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out *engine.Transcript
			f := newFixture(t, engine.Config{In: bestPicker(&out, tt.pickBest)})
			out = f.out
			ps := metAlex()

			_, err := f.eng.Render(context.Background(), state.AlexRivers, ps)
			require.NoError(t, err)

			assert.Equal(t, tt.currency, ps.Currency)
			assert.Equal(t, tt.items, ps.Items)
			assert.Contains(t, f.out.Said(), tt.reply)
		})
	}
}

func TestChooseTwo_EOFEndsRender(t *testing.T) {
	f := newFixture(t, engine.Config{}, "1")
	ps := metAlex()

	_, err := f.eng.Render(context.Background(), state.AlexRivers, ps)
	require.Error(t, err)
	assert.Equal(t, state.StartingCurrency, ps.Currency)
	assert.NotContains(t, f.out.Said(), "Hints: 'Compliment Alex', 'Ignore', 'Exit', 'Restart'.")
}
