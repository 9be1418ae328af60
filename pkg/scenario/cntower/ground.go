package cntower

import (
	"fmt"

	"github.com/jwebster45206/tower-engine/pkg/conditionals"
	"github.com/jwebster45206/tower-engine/pkg/scenario"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

func groundScenes() []*scenario.Scene {
	return []*scenario.Scene{
		baseScene(),
		alexScene(),
		patrickScene(),
		entranceScene(),
		ticketBoothScene(),
		securityScene(),
		giftShopScene(),
		workerScene(),
		openBoxScene(),
		caughtStealingScene(),
		policeStationScene(),
		storageRoomScene(),
	}
}

// workerVisible gates both the worker line at base and the "go south" rule.
var workerVisible = &conditionals.When{
	Unset: []state.Flag{state.FlagWorkerTask},
	Flags: []conditionals.FlagCheck{{Flag: state.FlagMetPatrick, Want: false, Default: false}},
}

func baseScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Base,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're at the base of the CN Tower. It's huge!",
				"Entrance is North. Gift shop is East.",
			)
			if !ps.FlagOr(state.FlagMetAlex, false) {
				st.Say("You see a person who looks like they want to talk (West).")
			}
			if workerVisible.Holds(ps) {
				st.Say("A worker is struggling with some boxes (South).")
			}
			// Defaults to true on purpose: the club member shows up even
			// before met_Patrick is ever set.
			if ps.FlagOr(state.FlagMetPatrick, true) {
				st.Say("You see a strange guy, he looks like a club member (West)")
			}
			st.Say(
				whatNow,
				"Hints: 'Go North', 'Go East', 'Go West', 'Go South', 'Look Around', 'Inventory', 'Help', 'Exit', 'Restart', 'Debug', 'Save', 'Load'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			goTo("go north", state.Entrance),
			goTo("go east", state.GiftShop),
			{Command: "go west", When: conditionals.FlagIs(state.FlagMetAlex, false, false), Go: state.AlexRivers},
			{Command: "go west", Go: state.Patrick},
			{Command: "go south", When: workerVisible, Go: state.Worker},
			{Command: "look around", Say: []string{"You see people taking pictures and the tower."}},
			{Command: "help", Say: []string{
				"Use 'Go' + direction (North, South, East, West) to move.",
				"Use 'Look Around' to see more.",
				"Interact with things using commands like 'Buy Ticket', 'Ask About History'.",
				"'Inventory' shows your items and money.",
				"'Exit' - quit game, 'Restart' - start new game",
			}},
		},
	}
}

// alexScene is a two-state machine keyed on met_alex: the first visit is a
// fixed monologue that always advances, later visits offer the compliment
// game.
func alexScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.AlexRivers,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			if !ps.FlagOr(state.FlagMetAlex, false) {
				return alexFirstVisit(st, ps)
			}
			alexRepeatVisit(st, ps)
			return ""
		},
		Rules: []scenario.Rule{
			{Command: "compliment alex", Go: state.Base, Say: []string{
				`Alex: "You're too kind! It's always nice to meet a fan."`,
				"Alex doesn't give you anything",
			}},
			{Command: "ignore", Go: state.Base, Say: []string{"You ignore Alex and continue."}},
		},
	}
}

func alexFirstVisit(st scenario.Stage, ps *state.PlayerState) state.Location {
	st.Say(
		"You go to the person. They say their name is Alex Rivers.",
		`"Hey! Nice day to visit the CN Tower, right?"`,
	)
	st.Pause(sec(3))
	st.Say(`Alex checks their watch. "It's 17:46. I have 5 minutes to record a video for my social media channel."`)
	st.Pause(sec(5))
	st.Say("Alex talks a lot about the weather, the view, and their love for the CN Tower.")
	for i := range 5 {
		st.Say(fmt.Sprintf("...blah, blah, blah! (%d minutes)", 5-i))
		st.Pause(sec(3))
	}
	st.Say(
		"...Alex looks at their watch.",
		`"Oh no! I lost track of time. Gotta run!"`,
	)
	st.Pause(sec(2))
	st.Say(
		"You wasted a lot of time.",
		"You continue your tour.",
	)
	ps.SetFlag(state.FlagMetAlex, true)

	if !ps.Has(state.ItemTicket) {
		st.Say("Also, you don't have much time, so you didn't buy a ticket.")
		return state.Base
	}
	return state.Security
}

func alexRepeatVisit(st scenario.Stage, ps *state.PlayerState) {
	st.Say(
		"It's Alex Rivers again. Still talking about the CN Tower.",
		`Alex: "Oh, it's you! Enjoying the tower? It's great, right?"`,
		whatNow,
	)

	picked := st.ChooseTwo(scenario.Choice{
		Header:    "Choose two ways to support Alex:",
		Options:   SupportOptions,
		Best:      BestSupport,
		Echo:      "You say:",
		EchoPause: sec(2),
	})

	if picked {
		st.Say(`Alex: "Wow, you think so? That's awesome! Here, take $40. Also i'll give you a ticket and a mask"`)
		ps.Earn(RewardAlexSupport)
		ps.Grant(state.ItemMask)
		ps.Grant(state.ItemTicket)
	} else {
		st.Say(`Alex: "Thanks! Every little bit helps."`)
	}
	st.Say("Hints: 'Compliment Alex', 'Ignore', 'Exit', 'Restart'.")
}

func patrickScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Patrick,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You go to the strange guy. He says his name is Patrick.",
				`"Hey! You look like you've got energy. Join our quadrobics club?"`,
			)
			st.Pause(sec(3))
			st.Say(
				"Patrick shows some quadrobics moves.",
				whatNow,
				"Hints: 'Join', 'Decline', 'Back', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			{Command: "join", Go: state.Exit, Say: []string{
				"You join Patrick's quadrobics club.",
				"You spend a year practicing, forgetting about the CN Tower.",
				"One day, you're mistaken for a stray cat and taken to a shelter.",
				"You're adopted and live a comfy but meaningless life.",
				"You become useless. (Bad Ending)",
			}},
			{Command: "decline", Go: state.Base, Say: []string{"You decline Patrick's offer."}},
			goTo("back", state.Base),
		},
	}
}

func entranceScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Entrance,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say("You're at the entrance. There's a long line for tickets.")
			if ps.Has(state.ItemTicket) {
				st.Say("You have a ticket! Go to security check (North).")
			} else {
				st.Say("You need a ticket. Buy one at the ticket booth (West).")
			}
			st.Say(whatNow, "Hints: 'Go North' (with ticket), 'Go West', 'Back', 'Exit', 'Restart'.")
			return ""
		},
		Rules: []scenario.Rule{
			{Command: "go north", When: conditionals.Items(state.ItemTicket), Go: state.Security},
			goTo("go west", state.TicketBooth),
			goTo("back", state.Base),
		},
		Invalid: noTicket,
	}
}

func ticketBoothScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.TicketBooth,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're at the ticket booth. Tickets are $40.",
				whatNow,
				"Hints: 'Buy Ticket', 'Back', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			buy("buy ticket", PriceTicket, state.ItemTicket, "You bought a ticket for $40."),
			goTo("back", state.Entrance),
		},
	}
}

func securityScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Security,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say("You're at the security check. They're checking bags and tickets.")
			if ps.Has(state.ItemTicket) {
				st.Say("The guard checks your ticket and lets you through to the elevator (North).")
			} else {
				st.Say("You need a ticket to go through.")
			}
			st.Say(whatNow, "Hints: 'Go North' (with ticket), 'Back', 'Exit', 'Restart'.")
			return ""
		},
		Rules: []scenario.Rule{
			{Command: "go north", When: conditionals.Items(state.ItemTicket), Go: state.Elevator},
			goTo("back", state.Entrance),
		},
		Invalid: noTicket,
	}
}

func giftShopScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.GiftShop,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say("You're in the gift shop. They have souvenirs, postcards, and CN Tower stuff.")
			if !ps.Has(state.ItemMask) {
				st.Say("You see a disguise kit for $20.")
			}
			st.Say(whatNow, "Hints: 'Buy Postcards', 'Buy Souvenir', 'Buy Mask' (with enough money), 'Back', 'Exit', 'Restart'.")
			return ""
		},
		Rules: []scenario.Rule{
			buy("buy postcards", PricePostcards, state.ItemPostcards, "You bought postcards for $5."),
			buy("buy souvenir", PriceSouvenir, state.ItemSouvenir, "You bought a CN Tower souvenir for $15."),
			buy("buy mask", PriceMask, state.ItemMask, "You bought a mask for $20"),
			goTo("back", state.Base),
		},
	}
}

func workerScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Worker,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You go to the worker. He looks tired.",
				`"Hey, can you help me? I need to move these boxes to the storage room."`,
			)
			st.Pause(sec(2))
			st.Say("You start helping.")
			for i := 1; i < 5; i++ {
				st.Say(fmt.Sprintf("You carry box %d to the storage room...", i))
				st.Pause(sec(2))
			}
			st.Say(
				"You pick up the 5th box. It's open a bit.",
				whatNow,
				"Hints: 'Look Inside', 'Continue', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			goTo("help worker", state.OpenBox),
			goTo("back", state.Base),
			goTo("look inside", state.OpenBox),
			goTo("continue", state.StorageRoom),
		},
	}
}

func openBoxScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.OpenBox,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You look inside. You see money, a book, and a mask.",
				whatNow,
				"Hints: 'Take Nothing', 'Take Money', 'Take Book', 'Take Mask', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			{Command: "take nothing", Go: state.StorageRoom, Say: []string{"You leave the box alone and continue helping."}},
			{
				Command: "take money",
				Effect:  state.Delta{Currency: StolenMoney},
				Say:     []string{"You take the money."},
				Go:      state.CaughtStealing,
			},
			{
				Command: "take book",
				Effect:  state.Delta{AddItems: []state.Item{state.ItemBible}},
				Say:     []string{"You take the book. It's a Bible."},
				Go:      state.StorageRoom,
			},
			{
				Command: "take mask",
				Effect:  state.Delta{AddItems: []state.Item{state.ItemMask}},
				Say:     []string{"You take the mask."},
				Go:      state.StorageRoom,
			},
		},
	}
}

// policeRules are shared by the caught-stealing scene and the police
// station, which offer the same three choices.
func policeRules() []scenario.Rule {
	return []scenario.Rule{
		{
			Command: "tell truth",
			Effect: state.Delta{SetFlags: map[state.Flag]bool{
				state.FlagMetAlex:    true,
				state.FlagMetPatrick: true,
			}},
			Say: []string{
				"You tell the truth.",
				"The police let you go with a warning.",
				"Next day, you go to the CN Tower again, but missed Alex Rivers and a chance for a free ticket.",
				"You see a strange guy near the entrance.",
			},
			Go: state.Base,
		},
		{
			Command: "bribe",
			Price:   PriceBribe,
			Say: []string{
				"You bribe the officer.",
				`Officer: "Alright, get back to the CN Tower."`,
			},
			Broke: []string{"Not enough money to bribe."},
			Go:    state.Base,
		},
		{Command: "lie", Go: state.Exit, Say: []string{
			"You lie, but the police don't believe you.",
			"You're deported. No more CN Tower. (Bad Ending)",
		}},
	}
}

func caughtStealingScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.CaughtStealing,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"The worker sees you!",
				`Worker: "Hey! What are you doing?!"`,
			)
			st.Pause(sec(2))
			st.Say(
				"He calls security. You're taken to the police.",
				whatNow,
				"Hints: 'Tell Truth', 'Bribe', 'Lie', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: policeRules(),
	}
}

func policeStationScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.PoliceStation,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're at the police station. The officer is asking you questions.",
				whatNow,
				"Hints: 'Tell Truth', 'Bribe', 'Lie', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: policeRules(),
	}
}

// storageRoomScene pays on every visit; only the hidden worker path leads
// here more than once.
func storageRoomScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.StorageRoom,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're in the storage room with the worker.",
				`Worker: "Thanks a lot! Here's $20."`,
			)
			ps.Earn(RewardWorker)
			ps.SetFlag(state.FlagWorkerTask, true)
			st.Say(
				"You got $20.",
				whatNow,
				"Hints: 'Back', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			goTo("back", state.Base),
		},
	}
}
