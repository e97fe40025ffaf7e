package alphaspy

import (
	"fmt"

	"github.com/timpalpant/alphaspy/cards"
	"github.com/timpalpant/alphaspy/gamestate"
)

// Player is a seat at the table: it holds a Strategy for choosing actions
// and a CardTracker following what it can deduce about its opponents.
type Player struct {
	id       gamestate.Player
	game     *gamestate.GameState
	strategy Strategy
	tracker  *CardTracker
}

var _ gamestate.Seat = &Player{}

// NewPlayer seats a new Player at position id in game. It must be called
// before the first action is applied to the game.
func NewPlayer(game *gamestate.GameState, id gamestate.Player, strategy Strategy) *Player {
	p := &Player{
		id:       id,
		game:     game,
		strategy: strategy,
	}

	p.tracker = NewCardTracker(game, id, p.Hand)
	game.Sit(id, p)
	return p
}

func (p *Player) ID() gamestate.Player {
	return p.id
}

// Hand returns the cards currently in this player's hand.
func (p *Player) Hand() cards.Set {
	return p.game.Hand(p.id)
}

func (p *Player) Tracker() *CardTracker {
	return p.tracker
}

// ReceiveSpyCard implements gamestate.Seat.
func (p *Player) ReceiveSpyCard(card cards.Card, from gamestate.Player) {
	p.tracker.ReceiveSpyCard(card, from)
}

// CardStolen implements gamestate.Seat.
func (p *Player) CardStolen(card cards.Card, by gamestate.Player) {
	p.tracker.CardStolen(card, by)
}

// ChooseAction selects one of the given legal actions with this
// player's Strategy.
func (p *Player) ChooseAction(legal []gamestate.Action) gamestate.Action {
	if len(legal) == 0 {
		panic(fmt.Errorf("%v has no legal actions to choose from", p.id))
	}

	return legal[p.strategy.Select(len(legal))]
}

func (p *Player) String() string {
	return fmt.Sprintf("%v (hand: %v, %v)", p.id, p.Hand(), p.tracker)
}
