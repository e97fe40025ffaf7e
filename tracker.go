package alphaspy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/alphaspy/cards"
	"github.com/timpalpant/alphaspy/gamestate"
)

// Game is the view of the game state a CardTracker observes.
// *gamestate.GameState implements Game.
type Game interface {
	// Subscribe registers handler to be called synchronously with every
	// public event of type t, in the order the events occur.
	Subscribe(t gamestate.EventType, handler func(gamestate.Event))
	// NumPlayers is the number of players dealt into the game.
	NumPlayers() int
	// ActivePlayers are the players who have not been eliminated.
	ActivePlayers() []gamestate.Player
	// DiscardPile is the set of cards currently face-up in the discard pile.
	DiscardPile() cards.Set
	// Deck is every card in the game.
	Deck() cards.Set
}

// CardTracker reconstructs, from the public events of a game, which cards
// each opponent is certain to hold.
//
// The known cards for an opponent are always a sub-multiset of the cards
// they actually hold: every card is only added once it is proven to be in
// their hand, and any event that makes a card's whereabouts uncertain
// removes it. Deductions that would require reasoning across several
// events are deliberately not made, so the picture is incomplete:
//   - When a Spymaster takes both cards from a two-card hand, the second
//     card is not inferred from the first.
//   - With three or more players left, a hand that happens to be fully
//     determined by elimination is not recognized.
//   - A card revealed in a duel is not counted again if the player already
//     had that many known copies, even if they drew more since.
type CardTracker struct {
	game   Game
	player gamestate.Player
	hand   func() cards.Set

	// known[p] holds the cards we are certain opponent p has in hand.
	// There is an entry for every player except our own.
	known map[gamestate.Player]*cards.Set
}

// NewCardTracker creates a CardTracker for player and subscribes it to the
// events of game. It must be created before the first event is emitted.
// hand returns the cards currently in player's own hand.
func NewCardTracker(game Game, player gamestate.Player, hand func() cards.Set) *CardTracker {
	n := game.NumPlayers()
	if int(player) >= n {
		panic(fmt.Errorf("%v is not in a game of %d players", player, n))
	}

	ct := &CardTracker{
		game:   game,
		player: player,
		hand:   hand,
		known:  make(map[gamestate.Player]*cards.Set, n-1),
	}

	for i := 0; i < n; i++ {
		if p := gamestate.Player(i); p != player {
			known := cards.NewSet()
			ct.known[p] = &known
		}
	}

	game.Subscribe(gamestate.DiscardEvent, func(e gamestate.Event) {
		ct.onDiscard(e.(gamestate.Discard))
	})
	game.Subscribe(gamestate.DuelEvent, func(e gamestate.Event) {
		ct.onDuel(e.(gamestate.Duel))
	})
	game.Subscribe(gamestate.SpyEvent, func(e gamestate.Event) {
		ct.onSpy(e.(gamestate.Spy))
	})
	game.Subscribe(gamestate.ReshuffleEvent, func(e gamestate.Event) {
		ct.onReshuffle(e.(gamestate.Reshuffle))
	})
	game.Subscribe(gamestate.EliminatedEvent, func(e gamestate.Event) {
		ct.onEliminated(e.(gamestate.Eliminated))
	})

	return ct
}

// Player returns the player whose point of view this CardTracker holds.
func (ct *CardTracker) Player() gamestate.Player {
	return ct.player
}

// Known returns a copy of the cards known to be in each opponent's hand.
func (ct *CardTracker) Known() map[gamestate.Player]cards.Set {
	result := make(map[gamestate.Player]cards.Set, len(ct.known))
	for p, known := range ct.known {
		result[p] = *known
	}

	return result
}

// KnownFor returns the cards known to be in opponent p's hand.
// KnownFor panics if p is our own player or not in the game.
func (ct *CardTracker) KnownFor(p gamestate.Player) cards.Set {
	return *ct.knownFor(p)
}

// UnknownCards returns every card whose location is not known: either in
// the draw pile or in an opponent's hand without having been identified.
func (ct *CardTracker) UnknownCards() cards.Set {
	allKnown := cards.NewSet()
	for _, known := range ct.known {
		allKnown.AddAll(*known)
	}

	return ct.game.Deck().
		Subtract(ct.hand()).
		Subtract(ct.game.DiscardPile()).
		Subtract(allKnown)
}

// ReceiveSpyCard must be called whenever our player takes a card from
// another player's hand with a spy. Only we know which card moved, so the
// public Spy event is ignored when we are involved.
func (ct *CardTracker) ReceiveSpyCard(card cards.Card, from gamestate.Player) {
	ct.knownFor(from).Discard(card)
}

// CardStolen must be called whenever another player takes a card from our
// hand with a spy.
func (ct *CardTracker) CardStolen(card cards.Card, by gamestate.Player) {
	ct.knownFor(by).Add(card)
}

// Validate checks the known cards of each opponent against the cards they
// actually hold, as returned by hand.
func (ct *CardTracker) Validate(hand func(gamestate.Player) cards.Set) error {
	for _, p := range ct.opponents() {
		if err := validateKnown(*ct.known[p], hand(p)); err != nil {
			return errors.Wrapf(err, "%v known cards for %v invalid", ct.player, p)
		}
	}

	return nil
}

func validateKnown(known, actual cards.Set) error {
	for _, card := range known.Distinct() {
		if known.CountOf(card) > actual.CountOf(card) {
			return errors.Errorf("%d %v known but only %d held (known %v, held %v)",
				known.CountOf(card), card, actual.CountOf(card), known, actual)
		}
	}

	return nil
}

// String implements Stringer.
func (ct *CardTracker) String() string {
	result := make([]string, 0, len(ct.known))
	for _, p := range ct.opponents() {
		result = append(result, fmt.Sprintf("%v: %v", p, *ct.known[p]))
	}

	return fmt.Sprintf("%v knows [%s]", ct.player, strings.Join(result, ", "))
}

func (ct *CardTracker) opponents() []gamestate.Player {
	result := make([]gamestate.Player, 0, len(ct.known))
	for p := range ct.known {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

func (ct *CardTracker) knownFor(p gamestate.Player) *cards.Set {
	known, ok := ct.known[p]
	if !ok {
		panic(fmt.Errorf("%v does not track %v in a game of %d players",
			ct.player, p, ct.game.NumPlayers()))
	}

	return known
}

// removeKnown removes cards from p's known cards one-for-one.
// Cards we did not know p held are ignored.
func (ct *CardTracker) removeKnown(p gamestate.Player, removed cards.Set) {
	known := ct.knownFor(p)
	*known = known.Subtract(removed)
}

func (ct *CardTracker) onDiscard(e gamestate.Discard) {
	if e.Player == ct.player {
		return
	}

	ct.knownFor(e.Player).Discard(e.Card)
}

func (ct *CardTracker) onDuel(e gamestate.Duel) {
	for _, p := range gamestate.SortedPlayers(e.Discarded) {
		if p != ct.player {
			ct.removeKnown(p, e.Discarded[p])
		}
	}

	// Nobody can reveal more copies of a card than they hold.
	for _, p := range gamestate.SortedPlayers(e.Retained) {
		if p == ct.player {
			continue
		}

		known := ct.knownFor(p)
		e.Retained[p].Iter(func(card cards.Card, observed uint8) {
			if n := known.CountOf(card); observed > n {
				known.AddN(card, int(observed-n))
			}
		})
	}

	for _, trapper := range e.Trappers() {
		victims := e.Trapped[trapper]
		for _, victim := range gamestate.SortedPlayers(victims) {
			trapped := victims[victim]
			if victim != ct.player {
				ct.removeKnown(victim, trapped)
			}
			if trapper != ct.player {
				ct.knownFor(trapper).AddAll(trapped)
			}
		}
	}
}

func (ct *CardTracker) onSpy(e gamestate.Spy) {
	if e.Spying == ct.player || e.Spied == ct.player {
		// We learn exactly which card moved from ReceiveSpyCard or CardStolen.
		return
	}

	spied := ct.knownFor(e.Spied)
	if e.Remaining == 0 && spied.Len() == 1 {
		// They only held one card, and we knew what it was.
		card := spied.Distinct()[0]
		ct.knownFor(e.Spying).Add(card)
		glog.V(2).Infof("%v: %v took %v from %v", ct.player, e.Spying, card, e.Spied)
	}

	// Any card could have been taken, so we no longer know what is left.
	*spied = cards.NewSet()
}

// onReshuffle runs before the discard pile is shuffled back in, while the
// draw pile is empty.
func (ct *CardTracker) onReshuffle(e gamestate.Reshuffle) {
	var others []gamestate.Player
	for _, p := range ct.game.ActivePlayers() {
		if p != ct.player {
			others = append(others, p)
		}
	}

	if len(others) != 1 {
		return
	}

	// The draw pile is empty when it is replenished, so every card that is
	// neither being reshuffled nor in our hand is in the last opponent's hand.
	opponent := others[0]
	*ct.knownFor(opponent) = ct.game.Deck().Subtract(e.Discarded.Union(ct.hand()))
	glog.V(2).Infof("%v: %v must hold %v", ct.player, opponent, *ct.known[opponent])
}

func (ct *CardTracker) onEliminated(e gamestate.Eliminated) {
	if e.Player == ct.player {
		return
	}

	*ct.knownFor(e.Player) = cards.NewSet()
}
