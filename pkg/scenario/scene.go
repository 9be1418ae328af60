package scenario

import (
	"time"

	"github.com/jwebster45206/tower-engine/pkg/conditionals"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

// DefaultInvalid is printed when no rule and no universal command matches.
const DefaultInvalid = "Invalid command. Check the hints."

// DefaultBroke is printed when a transaction cannot be paid for.
const DefaultBroke = "Not enough money."

// Stage is what a scene renderer narrates through. The engine implements it
// and applies the overlay for the scene's location to every Say line.
type Stage interface {
	Say(lines ...string)
	Pause(d time.Duration)
	// ChooseTwo runs the two-of-N sub-interaction and reports whether the
	// best option was among the two picks. Input errors are kept by the
	// stage and end the session after the render returns.
	ChooseTwo(c Choice) bool
}

// Choice describes one two-of-N interaction.
type Choice struct {
	Header    string        // printed above the numbered list
	Options   []string      // presented in shuffled order
	Best      string        // always present after shuffling
	Echo      string        // printed before the picks are repeated back
	EchoPause time.Duration // pause after each repeated pick
}

// RenderFunc narrates a location. Returning the zero Location means the
// scene waits for a command; anything else is an auto-advance successor.
type RenderFunc func(st Stage, ps *state.PlayerState) state.Location

// Rule is one entry of a location's transition table. Rules are tried in
// order and the first one whose Command matches and whose When holds fires.
type Rule struct {
	Command    string
	When       *conditionals.When
	Price      int            // > 0 makes the rule a transaction
	Effect     state.Delta    // applied after the price is paid
	ShowBanner bool           // print the fetched tower art first
	Say        []string       // narration on success
	Broke      []string       // narration when Currency < Price
	Go         state.Location // zero stays put
}

// IsTransaction reports whether the rule charges currency.
func (r *Rule) IsTransaction() bool {
	return r.Price > 0
}

// Scene is the record kept for each location: how to narrate it and how to
// react to commands there.
type Scene struct {
	Location state.Location
	Render   RenderFunc
	Rules    []Rule
	Invalid  string // defaults to DefaultInvalid
}

// InvalidLine returns the line printed for an unrecognized command.
func (s *Scene) InvalidLine() string {
	if s.Invalid == "" {
		return DefaultInvalid
	}
	return s.Invalid
}

// Match returns the first rule for cmd whose guard holds.
func (s *Scene) Match(cmd string, ps *state.PlayerState) (*Rule, bool) {
	for i := range s.Rules {
		r := &s.Rules[i]
		if r.Command != cmd {
			continue
		}
		if !r.When.Holds(ps) {
			continue
		}
		return r, true
	}
	return nil, false
}
