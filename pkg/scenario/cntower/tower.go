package cntower

import (
	"github.com/jwebster45206/tower-engine/pkg/conditionals"
	"github.com/jwebster45206/tower-engine/pkg/scenario"
	"github.com/jwebster45206/tower-engine/pkg/state"
)

func towerScenes() []*scenario.Scene {
	return []*scenario.Scene{
		elevatorScene(),
		lookoutScene(),
		glassFloorScene(),
		informationBoothScene(),
		edgeWalkRegistrationScene(),
		edgeWalkPreparationScene(),
		edgeWalkScene(),
		chillGuyScene(),
		cornerScene(),
		quadrobicsBaseScene(),
		alexQuadrobicsScene(),
		scareAlexScene(),
		phoneFoundScene(),
		roofScene(),
	}
}

func elevatorScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Elevator,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say("You're in the elevator. The doors close.")
			st.Pause(sec(2))
			st.Say("Going up fast...")
			st.Pause(sec(3))
			st.Say("Your ears pop.")
			st.Pause(sec(2))
			st.Say("Ding! LookOut level.")
			return state.Lookout
		},
	}
}

func lookoutScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Lookout,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're on the LookOut level! Great view of Toronto.",
				"You see the city, the lake, and Niagara Falls far away.",
				"Stairs to Glass Floor (Down). Info booth (East).",
				whatNow,
				"Hints: 'Go Down', 'Go East', 'Look Around', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			goTo("go down", state.GlassFloor),
			goTo("go east", state.InformationBooth),
			{Command: "look around", Say: []string{"You take in the view, taking pictures."}},
		},
	}
}

func glassFloorScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.GlassFloor,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're on the Glass Floor! It's scary to look down.",
				"You see the ground 342 meters below.",
				"Stairs up to LookOut level. EdgeWalk sign (West).",
				whatNow,
				"Hints: 'Go Up', 'Go West', 'Look Down', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			goTo("go up", state.Lookout),
			goTo("go west", state.EdgeWalkRegistration),
			{Command: "look down", Say: []string{"It's a long way down! You feel dizzy."}},
		},
	}
}

func informationBoothScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.InformationBooth,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're at the info booth. Brochures about the CN Tower are here.",
				"A staff member is answering questions.",
				whatNow,
				"Hints: 'Ask About History', 'Ask About Building', 'Back', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			{Command: "ask about history", ShowBanner: true, Say: []string{
				"CN Tower: Built in 1976, once the tallest structure (553.3 m).",
				"Built by Canadian National Railway. Now a tourist spot.",
				"It can handle earthquakes and winds. Has a core with elevators and stairs.",
			}},
			{Command: "ask about building", ShowBanner: true, Say: []string{
				"It took 40 months to build with work done 24/7.",
				"A big helicopter lifted the antenna. Built with a 'slipform' method.",
				"Foundation is 15 m deep, with 7,000 cubic meters of concrete.",
			}},
			goTo("back", state.Lookout),
		},
	}
}

func edgeWalkRegistrationScene() *scenario.Scene {
	bought := "You bought an EdgeWalk ticket for $195."
	return &scenario.Scene{
		Location: state.EdgeWalkRegistration,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say("You're at the EdgeWalk desk.")
			if ps.Has(state.ItemEdgeWalkTicket) {
				st.Say("You have a ticket! The guide is preparing the gear (North).")
			} else {
				st.Say("You need a ticket for EdgeWalk. It's $195. Buy one here.")
			}
			st.Say(whatNow, "Hints: 'Buy Ticket', 'Go North' (with ticket), 'Back', 'Exit', 'Restart'.")
			return ""
		},
		Rules: []scenario.Rule{
			buy("buy edgewalk ticket", PriceEdgeWalkTicket, state.ItemEdgeWalkTicket, bought),
			buy("buy ticket", PriceEdgeWalkTicket, state.ItemEdgeWalkTicket, bought),
			{Command: "go north", When: conditionals.Items(state.ItemEdgeWalkTicket), Go: state.EdgeWalkPreparation},
			goTo("back", state.GlassFloor),
		},
		Invalid: noEWTicket,
	}
}

func edgeWalkPreparationScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.EdgeWalkPreparation,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're in the EdgeWalk prep area. The guide helps you put on a harness.",
				"You're excited and nervous.",
			)
			st.Pause(sec(5))
			st.Say("The guide checks your harness. Thumbs up!")
			return state.EdgeWalk
		},
	}
}

func edgeWalkScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.EdgeWalk,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You're outside on the EdgeWalk! Wind is blowing. You're walking around the CN Tower!",
				"It's the most exciting thing ever!",
				"Congrats! You did the EdgeWalk! (Win)",
			)
			return state.Exit
		},
	}
}

var maskAndBible = conditionals.Items(state.ItemMask, state.ItemBible)

func chillGuyScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.JustAChillGuy,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say("You see Just a Chill Guy. He's laughing, looking at a corner.")
			switch {
			case maskAndBible.Holds(ps):
				st.Say(
					"You have a mask and a Bible. You're ready to scare Alex Rivers!",
					"Hints: 'Go West', 'Back', 'Exit', 'Restart'.",
				)
			case ps.Has(state.ItemBible):
				st.Say(
					`Just a Chill Guy: "Now that the quadrobists ran away, you can scare Alex using the mask."`,
					whatNow,
					"Hints: 'Use Mask', 'Go Forward', 'Ask About Corner', 'Back', 'Exit', 'Restart'.",
				)
			case ps.FlagOr(state.FlagUsedBible, false):
				st.Say(
					`Just a Chill Guy: "You scared the quadrobists good, now you can scare Alex."`,
					whatNow,
					"Hints: 'Use Mask',  'Go Forward', 'Ask About Corner', 'Back', 'Exit', 'Restart'.",
				)
			default:
				st.Say(
					whatNow,
					"Hints: 'Use Mask', 'Use Bible', 'Go Forward', 'Ask About Corner', 'Back', 'Exit', 'Restart'.",
				)
			}
			return ""
		},
		Rules: []scenario.Rule{
			{
				Command: "use mask",
				When:    conditionals.Items(state.ItemMask),
				Effect:  state.Delta{SetFlags: map[state.Flag]bool{state.FlagUsedMask: true}},
				Go:      state.Corner,
			},
			{Command: "use mask", Say: []string{"You don't have a mask."}},
			{
				Command: "use bible",
				When:    conditionals.Items(state.ItemBible),
				Effect:  state.Delta{SetFlags: map[state.Flag]bool{state.FlagUsedBible: true}},
				Say:     []string{"You wave the Bible. The quadrobists run away scared."},
				Go:      state.JustAChillGuy,
			},
			{Command: "use bible", Say: []string{"You don't have a Bible."}},
			goTo("go forward", state.Corner),
			{Command: "ask about corner", Say: []string{
				`Just a Chill Guy: "Just quadrobists. No worries... unless you're scared."`,
			}},
			{Command: "scare quadrobists", Say: []string{
				"You try to scare them from behind the wall.",
				"It works! They run away.",
			}},
			{Command: "go west", When: maskAndBible, Go: state.ScareAlex},
			goTo("back", state.GlassFloor),
		},
	}
}

// cornerScene always advances, so it has no rules. The peek branch is the
// far end of the used_mask dependency set by "use mask" next door.
func cornerScene() *scenario.Scene {
	peeked := &conditionals.When{
		HasItems: []state.Item{state.ItemMask},
		Flags:    []conditionals.FlagCheck{{Flag: state.FlagUsedMask, Want: true}},
	}
	return &scenario.Scene{
		Location: state.Corner,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			if peeked.Holds(ps) {
				st.Say(
					"You use your mask and peek around the corner. You see quadrobists practicing.",
					"They don't see you. You go back to Just a Chill Guy.",
				)
				return state.JustAChillGuy
			}
			st.Say(
				"You go to the corner, and quadrobists see you!",
				"They make you join their quadrobics training.",
			)
			st.Pause(sec(3))
			st.Say("Now you're a quadrobist. You must scare Alex Rivers.")
			return state.QuadrobicsBase
		},
	}
}

func quadrobicsBaseScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.QuadrobicsBase,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You move like a quadrobist. Alex is West.",
				"Hints: 'Go West', 'Exit', 'Restart'.",
			)
			return ""
		},
		Rules: []scenario.Rule{
			goTo("go west", state.AlexRiversQuadrobics),
		},
	}
}

func alexQuadrobicsScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.AlexRiversQuadrobics,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You go to Alex Rivers, moving like a quadrobist.",
				"Alex gets scared, drops their phone, and ruins their recording.",
				"You ruined their day. (Bad Ending)",
			)
			return state.Exit
		},
	}
}

func scareAlexScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.ScareAlex,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You successfully scared Alex Rivers using the mask and the Bible!",
				"Alex runs away, dropping their phone. You see your chance!",
				"Hints: 'Take Phone', 'Leave Phone', 'Exit', 'Restart'",
			)
			return ""
		},
		Rules: []scenario.Rule{
			{
				Command: "take phone",
				Effect:  state.Delta{AddItems: []state.Item{state.ItemAlexPhone}},
				Say:     []string{"You took Alex's phone. It's yours now!"},
				Go:      state.PhoneFound,
			},
			{Command: "leave phone", Go: state.Exit, Say: []string{
				"You leave the phone. What were you thinking?",
				"(Bad Ending)",
			}},
		},
	}
}

func phoneFoundScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.PhoneFound,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say(
				"You take the phone and run to the edge of the roof. There are no obstacles in front of you.",
				whatNow,
				"Hints: 'Jump', 'Go Back' to the Glass Floor, 'Exit', 'Restart'",
			)
			return ""
		},
		Rules: []scenario.Rule{
			{Command: "jump", Go: state.Roof, Say: []string{"You jump from the roof"}},
			goTo("go back", state.GlassFloor),
		},
	}
}

func roofScene() *scenario.Scene {
	return &scenario.Scene{
		Location: state.Roof,
		Render: func(st scenario.Stage, ps *state.PlayerState) state.Location {
			st.Say("You jumped from the roof. The last thing you see is blue sky")
			return state.Exit
		},
	}
}
