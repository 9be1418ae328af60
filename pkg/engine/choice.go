package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/jwebster45206/tower-engine/pkg/scenario"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

const (
	choiceOutOfRange = "Invalid choice. Pick a number from the list."
	choiceNotNumber  = "Invalid input. Enter a number, please."
	choiceRepeated   = "You already picked that one. Choose another."
)

// ShuffleWithGuarantee returns a shuffled copy of opts. If best is not in
// the result it replaces the final slot, so the player can always pick it.
func ShuffleWithGuarantee(opts []string, best string, rng *rand.Rand) []string {
	out := slices.Clone(opts)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if best != "" && len(out) > 0 && !slices.Contains(out, best) {
		out[len(out)-1] = best
	}
	return out
}

// chooseTwo runs the two-of-N interaction for loc and reports whether the
// best option was picked.
func (e *Engine) chooseTwo(ctx context.Context, loc state.Location, c scenario.Choice) (bool, error) {
	opts := make([]string, len(c.Options))
	for i, o := range c.Options {
		opts[i] = e.sweeten(loc, o)
	}
	best := e.sweeten(loc, c.Best)
	opts = ShuffleWithGuarantee(opts, best, e.rng)

	e.out.Say(c.Header)
	for i, o := range opts {
		e.out.Say(fmt.Sprintf("%d. %s", i+1, o))
	}

	picks := make([]int, 0, 2)
	for len(picks) < 2 {
		line, err := e.in.ReadLine(ctx, fmt.Sprintf("Enter choice %d: ", len(picks)+1))
		if err != nil {
			return false, fmt.Errorf("read choice: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			e.out.Notice(choiceNotNumber)
		case n < 1 || n > len(opts):
			e.out.Notice(choiceOutOfRange)
		case slices.Contains(picks, n-1):
			e.out.Notice(choiceRepeated)
		default:
			picks = append(picks, n-1)
		}
	}

	e.out.Say(c.Echo)
	picked := false
	for _, i := range picks {
		e.out.Say("- " + opts[i])
		e.out.Pause(c.EchoPause)
		if opts[i] == best {
			picked = true
		}
	}
	e.logger.Debug("two-of-n choice", "location", loc, "picks", picks, "best", picked)
	return picked, nil
}
