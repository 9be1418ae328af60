package state

// Delta is a compact description of what a transition does to the player.
// Rules carry one and the interpreter applies it after any price is paid.
type Delta struct {
	Currency    int           `json:"currency,omitempty"`
	AddItems    []Item        `json:"add_items,omitempty"`
	RemoveItems []Item        `json:"remove_items,omitempty"`
	SetFlags    map[Flag]bool `json:"set_flags,omitempty"`
}

// IsEmpty checks if the Delta changes nothing
func (d *Delta) IsEmpty() bool {
	return d == nil || (d.Currency == 0 &&
		len(d.AddItems) == 0 &&
		len(d.RemoveItems) == 0 &&
		len(d.SetFlags) == 0)
}

// Apply mutates ps. Removals run before additions so a delta can swap an
// item for itself without losing it.
func (d *Delta) Apply(ps *PlayerState) {
	if d.IsEmpty() {
		return
	}
	ps.Earn(d.Currency)
	for _, it := range d.RemoveItems {
		ps.Revoke(it)
	}
	for _, it := range d.AddItems {
		ps.Grant(it)
	}
	for f, v := range d.SetFlags {
		ps.SetFlag(f, v)
	}
}
