package state

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLocation is returned when a string does not name a Location.
var ErrUnknownLocation = errors.New("unknown location")

// Location is one narrative state of the tower. The set is closed: every
// valid value is declared below and listed in allLocations.
type Location string

const (
	Base                  Location = "base"
	AlexRivers            Location = "alex_rivers"
	Patrick               Location = "Patrick" // capitalised in the overlay data
	Entrance              Location = "entrance"
	TicketBooth           Location = "ticket_booth"
	Security              Location = "security"
	Elevator              Location = "elevator"
	Lookout               Location = "lookout"
	GlassFloor            Location = "glass_floor"
	EdgeWalkRegistration  Location = "edgewalk_registration"
	EdgeWalkPreparation   Location = "edgewalk_preparation"
	EdgeWalk              Location = "edgewalk"
	GiftShop              Location = "gift_shop"
	InformationBooth      Location = "information_booth"
	Worker                Location = "worker"
	OpenBox               Location = "open_box"
	CaughtStealing        Location = "caught_stealing"
	PoliceStation         Location = "police_station"
	StorageRoom           Location = "storage_room"
	JustAChillGuy         Location = "just_a_chill_guy"
	Corner                Location = "corner"
	QuadrobicsBase        Location = "quadrobics_base"
	AlexRiversQuadrobics  Location = "alex_rivers_quadrobics"
	ScareAlex             Location = "scare_alex"
	PhoneFound            Location = "phone_found"
	Roof                  Location = "roof"
	Exit                  Location = "exit"
	Restart               Location = "restart"
	InitialLocation                = Base
)

var allLocations = []Location{
	Base, AlexRivers, Patrick, Entrance, TicketBooth, Security, Elevator,
	Lookout, GlassFloor, EdgeWalkRegistration, EdgeWalkPreparation, EdgeWalk,
	GiftShop, InformationBooth, Worker, OpenBox, CaughtStealing, PoliceStation,
	StorageRoom, JustAChillGuy, Corner, QuadrobicsBase, AlexRiversQuadrobics,
	ScareAlex, PhoneFound, Roof, Exit, Restart,
}

var locationIndex = func() map[string]Location {
	m := make(map[string]Location, len(allLocations))
	for _, l := range allLocations {
		m[string(l)] = l
	}
	return m
}()

// Locations returns every declared location in declaration order.
func Locations() []Location {
	out := make([]Location, len(allLocations))
	copy(out, allLocations)
	return out
}

// ParseLocation resolves an identifier to a Location. Matching is exact
// first, then case-insensitive so "patrick" still finds Patrick.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if l, ok := locationIndex[s]; ok {
		return l, nil
	}
	for _, l := range allLocations {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLocation, s)
}

// Valid reports whether l is one of the declared locations.
func (l Location) Valid() bool {
	_, ok := locationIndex[string(l)]
	return ok
}

// Terminal reports whether the session loop must intercept l instead of
// rendering it.
func (l Location) Terminal() bool {
	return l == Exit || l == Restart
}

func (l Location) String() string {
	return string(l)
}
