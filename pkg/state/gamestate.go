package state

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StartingCurrency is what every fresh session begins with.
const StartingCurrency = 40

// ErrInsufficientFunds is returned by Spend when the player cannot pay.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Item is something the player can hold. Presence is all that matters.
type Item string

const (
	ItemTicket         Item = "ticket"
	ItemMask           Item = "mask"
	ItemEdgeWalkTicket Item = "edgewalk_ticket"
	ItemPostcards      Item = "postcards"
	ItemSouvenir       Item = "souvenir"
	ItemBible          Item = "bible"
	ItemAlexPhone      Item = "alex_phone"
)

// Items lists the items the game can hand out. The debug console uses it as
// its whitelist.
func Items() []Item {
	return []Item{ItemTicket, ItemMask, ItemEdgeWalkTicket, ItemPostcards, ItemSouvenir, ItemBible, ItemAlexPhone}
}

// Flag is a story milestone. Unlike items, an unset flag and a flag set to
// false are different states; guards choose their own default per check.
type Flag string

const (
	FlagMetAlex    Flag = "met_alex"
	FlagMetPatrick Flag = "met_Patrick"
	FlagWorkerTask Flag = "worker_task"
	FlagUsedMask   Flag = "used_mask"
	FlagUsedBible  Flag = "used_bible"
)

// PlayerState is the mutable record owned by the engine for one session.
type PlayerState struct {
	Currency int           `json:"currency"`
	Items    []Item        `json:"items,omitempty"` // sorted, unique
	Flags    map[Flag]bool `json:"flags,omitempty"`
}

// NewPlayerState returns the state every session starts from.
func NewPlayerState() *PlayerState {
	return &PlayerState{
		Currency: StartingCurrency,
		Flags:    make(map[Flag]bool),
	}
}

// Has reports whether the player holds item.
func (ps *PlayerState) Has(item Item) bool {
	_, found := slices.BinarySearch(ps.Items, item)
	return found
}

// Grant adds item, keeping Items sorted. Granting a held item is a no-op.
func (ps *PlayerState) Grant(item Item) {
	i, found := slices.BinarySearch(ps.Items, item)
	if found {
		return
	}
	ps.Items = slices.Insert(ps.Items, i, item)
}

// Revoke removes item if held.
func (ps *PlayerState) Revoke(item Item) {
	if i, found := slices.BinarySearch(ps.Items, item); found {
		ps.Items = slices.Delete(ps.Items, i, i+1)
	}
}

// Flag returns the flag value and whether it has ever been set.
func (ps *PlayerState) Flag(f Flag) (value, set bool) {
	value, set = ps.Flags[f]
	return value, set
}

// FlagOr returns the flag value, or def when the flag was never set.
func (ps *PlayerState) FlagOr(f Flag, def bool) bool {
	if v, ok := ps.Flags[f]; ok {
		return v
	}
	return def
}

// FlagSet reports whether f has been set to any value.
func (ps *PlayerState) FlagSet(f Flag) bool {
	_, ok := ps.Flags[f]
	return ok
}

func (ps *PlayerState) SetFlag(f Flag, v bool) {
	if ps.Flags == nil {
		ps.Flags = make(map[Flag]bool)
	}
	ps.Flags[f] = v
}

// Spend deducts amount only when the player can cover it.
func (ps *PlayerState) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("spend: negative amount %d", amount)
	}
	if ps.Currency < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, ps.Currency, amount)
	}
	ps.Currency -= amount
	return nil
}

func (ps *PlayerState) Earn(amount int) {
	ps.Currency += amount
}

// Clone returns a deep copy.
func (ps *PlayerState) Clone() *PlayerState {
	out := &PlayerState{
		Currency: ps.Currency,
		Items:    slices.Clone(ps.Items),
		Flags:    maps.Clone(ps.Flags),
	}
	if out.Flags == nil {
		out.Flags = make(map[Flag]bool)
	}
	return out
}

// Normalize restores the sorted-unique invariant on Items, e.g. after JSON
// decoding.
func (ps *PlayerState) Normalize() {
	slices.Sort(ps.Items)
	ps.Items = slices.Compact(ps.Items)
	if ps.Flags == nil {
		ps.Flags = make(map[Flag]bool)
	}
}

// Describe renders the inventory line shown by the "inventory" command.
func (ps *PlayerState) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inventory: $%d", ps.Currency)

	if len(ps.Items) == 0 {
		b.WriteString(" | items: none")
	} else {
		title := cases.Title(language.English)
		names := make([]string, 0, len(ps.Items))
		for _, it := range ps.Items {
			names = append(names, title.String(strings.ReplaceAll(string(it), "_", " ")))
		}
		b.WriteString(" | items: " + strings.Join(names, ", "))
	}

	if len(ps.Flags) > 0 {
		keys := slices.Sorted(maps.Keys(ps.Flags))
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%t", k, ps.Flags[k]))
		}
		b.WriteString(" | flags: " + strings.Join(parts, ", "))
	}
	return b.String()
}
