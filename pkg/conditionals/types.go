package conditionals

import "github.com/jwebster45206/tower-engine/pkg/state"

// FlagCheck compares a flag against Want, reading Default when the flag was
// never set. Each call site picks its own Default.
type FlagCheck struct {
	Flag    state.Flag `json:"flag"`
	Want    bool       `json:"want"`
	Default bool       `json:"default,omitempty"`
}

// When defines the conditions a rule needs. A nil or empty When always
// holds; every populated field must hold.
type When struct {
	HasItems    []state.Item `json:"has_items,omitempty"`    // all must be held
	LacksItems  []state.Item `json:"lacks_items,omitempty"`  // none may be held
	Flags       []FlagCheck  `json:"flags,omitempty"`        // all must match
	Unset       []state.Flag `json:"unset,omitempty"`        // none may ever have been set
	MinCurrency *int         `json:"min_currency,omitempty"` // Currency >= this value
}

// IsEmpty reports whether the When places no constraint.
func (w *When) IsEmpty() bool {
	return w == nil || (len(w.HasItems) == 0 &&
		len(w.LacksItems) == 0 &&
		len(w.Flags) == 0 &&
		len(w.Unset) == 0 &&
		w.MinCurrency == nil)
}

// Holds evaluates w against ps.
func (w *When) Holds(ps *state.PlayerState) bool {
	if w.IsEmpty() {
		return true
	}

	for _, it := range w.HasItems {
		if !ps.Has(it) {
			return false
		}
	}

	for _, it := range w.LacksItems {
		if ps.Has(it) {
			return false
		}
	}

	for _, fc := range w.Flags {
		if ps.FlagOr(fc.Flag, fc.Default) != fc.Want {
			return false
		}
	}

	for _, f := range w.Unset {
		if ps.FlagSet(f) {
			return false
		}
	}

	if w.MinCurrency != nil && ps.Currency < *w.MinCurrency {
		return false
	}

	return true
}

// Items is shorthand for a When that needs every listed item.
func Items(items ...state.Item) *When {
	return &When{HasItems: items}
}

// FlagIs is shorthand for a single flag comparison.
func FlagIs(f state.Flag, want, def bool) *When {
	return &When{Flags: []FlagCheck{{Flag: f, Want: want, Default: def}}}
}
