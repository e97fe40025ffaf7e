package gamestate

import (
	"fmt"

	"github.com/timpalpant/alphaspy/cards"
)

// ActionType is the type of action a player performed in the game's history.
type ActionType uint8

const (
	_ ActionType = iota
	DrawCard
	DiscardCard
	PlaySpy
	PlaySpymaster
	PlayDuelist
)

var allActions = []ActionType{
	DrawCard,
	DiscardCard,
	PlaySpy,
	PlaySpymaster,
	PlayDuelist,
}

var actionTypeStr = [...]string{
	"Invalid",
	"DrawCard",
	"DiscardCard",
	"PlaySpy",
	"PlaySpymaster",
	"PlayDuelist",
}

func (t ActionType) String() string {
	if int(t) >= len(actionTypeStr) {
		return "Invalid"
	}

	return actionTypeStr[t]
}

// playedCard is the card that is discarded to take each targeted action.
var playedCard = map[ActionType]cards.Card{
	PlaySpy:       cards.Spy,
	PlaySpymaster: cards.Spymaster,
	PlayDuelist:   cards.Duelist,
}

// numSpied is the number of cards taken by each spy action.
var numSpied = map[ActionType]int{
	PlaySpy:       1,
	PlaySpymaster: 2,
}

// Action records each player choice in the game history.
type Action struct {
	Player Player
	Type   ActionType
	Card   cards.Card // Only for DiscardCard.
	Target Player     // Only for PlaySpy, PlaySpymaster, PlayDuelist.
}

// IsTargeted returns whether the action is played against another player.
func (a Action) IsTargeted() bool {
	_, ok := playedCard[a.Type]
	return ok
}

func (a Action) String() string {
	s := fmt.Sprintf("%s:%s", a.Player, a.Type)
	if a.Type == DiscardCard {
		s += ":" + a.Card.String()
	}
	if a.IsTargeted() {
		s += ":" + a.Target.String()
	}
	return s
}

// History records the actions taken to reach the current state.
type History []Action

func (h History) Len() int {
	return len(h)
}

func (h History) String() string {
	return fmt.Sprintf("%v", []Action(h))
}
