package gamestate

import (
	"math/rand"

	"github.com/timpalpant/alphaspy/cards"
)

// ResolveDuel decides the outcome of a duel between challenger and defender,
// given the cards each holds once the challenger's Duelist has been played.
//
// Each participant with cards discards one at random, then reveals a random
// subset of what is left. A participant still holding a Trapper then takes one
// card the other participant did not reveal (never a Trapper). Both traps are
// chosen from the hands as they were before either trap, so the outcome can be
// applied as discards followed by simultaneous traps.
func ResolveDuel(rng *rand.Rand, challenger Player, challengerHand cards.Set,
	defender Player, defenderHand cards.Set) Duel {
	duel := Duel{
		Challenger: challenger,
		Defender:   defender,
		Discarded:  make(map[Player]cards.Set),
		Retained:   make(map[Player]cards.Set),
		Trapped:    make(map[Player]map[Player]cards.Set),
	}

	hands := map[Player]cards.Set{
		challenger: challengerHand,
		defender:   defenderHand,
	}

	participants := []Player{challenger, defender}
	for _, p := range participants {
		hand := hands[p]
		if hand.IsEmpty() {
			continue
		}

		lost := randomCard(rng, hand)
		hand.Remove(lost)
		duel.Discarded[p] = cards.NewSetFromCards([]cards.Card{lost})
		if retained := randomSubset(rng, hand); !retained.IsEmpty() {
			duel.Retained[p] = retained
		}
		hands[p] = hand
	}

	for i, trapper := range participants {
		victim := participants[1-i]
		if !hands[trapper].Contains(cards.Trapper) {
			continue
		}

		candidates := hands[victim].Subtract(duel.Retained[victim])
		candidates[cards.Trapper] = 0
		if candidates.IsEmpty() {
			continue
		}

		card := randomCard(rng, candidates)
		duel.Trapped[trapper] = map[Player]cards.Set{
			victim: cards.NewSetFromCards([]cards.Card{card}),
		}
	}

	return duel
}

func randomCard(rng *rand.Rand, hand cards.Set) cards.Card {
	cs := hand.AsSlice()
	return cs[rng.Intn(len(cs))]
}

func randomSubset(rng *rand.Rand, hand cards.Set) cards.Set {
	result := cards.NewSet()
	for _, card := range hand.AsSlice() {
		if rng.Intn(2) == 0 {
			result.Add(card)
		}
	}

	return result
}
