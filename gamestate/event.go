package gamestate

import (
	"fmt"
	"sort"

	"github.com/timpalpant/alphaspy/cards"
)

// EventType is the kind of public event emitted by the GameState.
type EventType uint8

const (
	_ EventType = iota
	DiscardEvent
	DuelEvent
	SpyEvent
	ReshuffleEvent
	EliminatedEvent
)

var allEvents = []EventType{
	DiscardEvent,
	DuelEvent,
	SpyEvent,
	ReshuffleEvent,
	EliminatedEvent,
}

var eventTypeStr = [...]string{
	"Invalid",
	"Discard",
	"Duel",
	"Spy",
	"Reshuffle",
	"Eliminated",
}

const numEventTypes = len(eventTypeStr)

func (t EventType) String() string {
	if int(t) >= numEventTypes {
		return "Invalid"
	}

	return eventTypeStr[t]
}

// Event is a publicly observable change to the game.
// All players see every Event.
type Event interface {
	Type() EventType
}

// Discard is emitted when a player moves one card from their hand
// face-up onto the discard pile.
type Discard struct {
	Player Player
	Card   cards.Card
}

func (Discard) Type() EventType { return DiscardEvent }

// Duel is emitted once a duel has been resolved.
//
// Discarded cards left the participant's hand for the discard pile.
// Retained cards were revealed and kept. Trapped[t][v] are the cards that
// trapper t took from victim v's hand.
type Duel struct {
	Challenger Player
	Defender   Player
	Discarded  map[Player]cards.Set
	Retained   map[Player]cards.Set
	Trapped    map[Player]map[Player]cards.Set
}

func (Duel) Type() EventType { return DuelEvent }

// Trappers returns the players who trapped cards in the duel,
// in ascending order.
func (d Duel) Trappers() []Player {
	result := make([]Player, 0, len(d.Trapped))
	for p := range d.Trapped {
		result = append(result, p)
	}
	sortPlayers(result)
	return result
}

func (d Duel) String() string {
	return fmt.Sprintf("%v vs. %v: discarded %v, retained %v, trapped %v",
		d.Challenger, d.Defender, d.Discarded, d.Retained, d.Trapped)
}

// Spy is emitted each time one card is taken from the Spied player's hand
// by the Spying player. Only the two participants learn which card moved.
type Spy struct {
	Spying Player
	Spied  Player
	// Remaining is the number of cards left in the Spied player's hand.
	Remaining int
}

func (Spy) Type() EventType { return SpyEvent }

// Reshuffle is emitted when the draw pile is exhausted, immediately
// before the discard pile is shuffled to form the new draw pile.
type Reshuffle struct {
	Discarded cards.Set
}

func (Reshuffle) Type() EventType { return ReshuffleEvent }

// Eliminated is emitted when a player runs out of cards and leaves the game.
type Eliminated struct {
	Player Player
}

func (Eliminated) Type() EventType { return EliminatedEvent }

// SortedPlayers returns the keys of m in ascending order.
func SortedPlayers(m map[Player]cards.Set) []Player {
	result := make([]Player, 0, len(m))
	for p := range m {
		result = append(result, p)
	}
	sortPlayers(result)
	return result
}

func sortPlayers(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		return players[i] < players[j]
	})
}
