// Package cntower is the CN Tower adventure: every location's narration and
// transition table.
package cntower

import (
	"time"

	"github.com/jwebster45206/tower-engine/pkg/overlay"
	"github.com/jwebster45206/tower-engine/pkg/scenario"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

// Name identifies the scenario in logs.
const Name = "cn_tower"

// Title is printed on the startup banner.
const Title = "CN Tower"

// Prices, in dollars.
const (
	PriceTicket         = 40
	PriceEdgeWalkTicket = 195
	PricePostcards      = 5
	PriceSouvenir       = 15
	PriceMask           = 20
	PriceBribe          = 50
)

// Rewards, in dollars.
const (
	RewardAlexSupport = 40
	RewardWorker      = 20
	StolenMoney       = 40
)

const (
	whatNow    = "What do you want to do?"
	noTicket   = "Invalid command or no ticket. Check the hints."
	noEWTicket = "Invalid command or no EdgeWalk ticket. Check the hints."
)

// BestSupport is the compliment Alex rewards.
const BestSupport = "You're doing a great job promoting this place, Alex!"

// SupportOptions are the lines offered when meeting Alex again.
var SupportOptions = []string{
	"This tower is truly a marvel of engineering!",
	"The view from up here is absolutely breathtaking!",
	BestSupport,
	"I've never seen anything like this before!",
	"This is the best day of my life!",
}

// New builds the scenario with the given overlay table.
func New(table *overlay.Table) (*scenario.Store, error) {
	return scenario.NewStore(Name, Scenes(), table)
}

// Scenes returns a fresh copy of every scene.
func Scenes() []*scenario.Scene {
	return append(groundScenes(), towerScenes()...)
}

func sec(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func goTo(cmd string, to state.Location) scenario.Rule {
	return scenario.Rule{Command: cmd, Go: to}
}

func buy(cmd string, price int, item state.Item, bought string) scenario.Rule {
	return scenario.Rule{
		Command: cmd,
		Price:   price,
		Effect:  state.Delta{AddItems: []state.Item{item}},
		Say:     []string{bought},
	}
}
