package gamestate

import (
	"github.com/golang/glog"

	"github.com/timpalpant/alphaspy/cards"
)

// drawCard moves the top card of the draw pile into the player's hand.
// An exhausted draw pile is first replenished from the discard pile.
// If both are empty there is nothing to draw.
func (gs *GameState) drawCard(player Player) {
	if gs.drawPile.Len() == 0 {
		if gs.discardPile.Len() == 0 {
			glog.V(2).Infof("%v cannot draw: draw and discard piles are empty", player)
			return
		}

		gs.reshuffle()
	}

	gs.hands[player].Add(gs.drawPile.DrawTop())
}

// reshuffle announces the discard pile's contents and then shuffles it
// to form the new draw pile. Only called once the draw pile is empty,
// so at that moment every card is either discarded or in an active hand.
func (gs *GameState) reshuffle() {
	discarded := gs.discardPile.AsSet()
	gs.bus.Emit(Reshuffle{Discarded: discarded})

	glog.V(1).Infof("Reshuffling %d discarded cards into the draw pile", discarded.Len())
	gs.drawPile = gs.discardPile
	gs.discardPile = cards.NewStack()
	gs.drawPile.Shuffle(gs.rng)
}
