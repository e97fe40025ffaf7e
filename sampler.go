package alphaspy

import (
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/timpalpant/alphaspy/gamestate"
)

// Result summarizes a game played to completion (or until the turn limit).
//
// A finished game may have no winner: a duel can eliminate both players.
type Result struct {
	Winner    gamestate.Player
	HasWinner bool
	// ReachedTurnLimit is set if the game was stopped before it was over.
	ReachedTurnLimit bool
	Turns            int
	History          gamestate.History
	// KnownFraction is the average, over every check made during the game,
	// of the fraction of opponents' cards that each player could identify.
	KnownFraction float64
}

// NewRandomGame deals a new game with the given config and seats a
// Player with a RandomStrategy at every position.
func NewRandomGame(config gamestate.Config, seed int64) (*gamestate.GameState, []*Player, error) {
	rng := rand.New(rand.NewSource(seed))
	game, err := gamestate.New(config, rng)
	if err != nil {
		return nil, nil, err
	}

	players := make([]*Player, config.NumPlayers)
	for i := range players {
		strategy := NewRandomStrategy(rand.New(rand.NewSource(rng.Int63())))
		players[i] = NewPlayer(game, gamestate.Player(i), strategy)
	}

	return game, players, nil
}

// PlayGame plays game until at most one player is left or maxTurns turns
// have been taken. Players take turns in seat order, skipping eliminated
// players: each turn the player draws a card and then takes one action.
// If check is non-nil it is called after every action, and the game stops
// with its error if it fails.
func PlayGame(game *gamestate.GameState, players []*Player, maxTurns int, check func() error) (Result, error) {
	if len(players) != game.NumPlayers() {
		return Result{}, errors.Errorf("%d players for a game of %d", len(players), game.NumPlayers())
	}

	var result Result
	var knownSum float64
	var nChecks int
	afterAction := func() error {
		if check != nil {
			if err := check(); err != nil {
				return err
			}
		}

		if f, ok := knownFraction(game, players); ok {
			knownSum += f
			nChecks++
		}

		return nil
	}

	current := gamestate.Player(0)
	for !game.IsOver() && result.Turns < maxTurns {
		player := players[current]
		if err := game.Apply(gamestate.Action{Player: current, Type: gamestate.DrawCard}); err != nil {
			return result, err
		}
		if err := afterAction(); err != nil {
			return result, errors.Wrapf(err, "after %v drew on turn %d", current, result.Turns)
		}

		action := player.ChooseAction(game.LegalActions(current))
		if err := game.Apply(action); err != nil {
			return result, err
		}
		if err := afterAction(); err != nil {
			return result, errors.Wrapf(err, "after %v on turn %d", action, result.Turns)
		}

		result.Turns++
		current = nextPlayer(game, current)
	}

	result.Winner, result.HasWinner = game.Winner()
	result.ReachedTurnLimit = !game.IsOver()
	result.History = game.History()
	if nChecks > 0 {
		result.KnownFraction = knownSum / float64(nChecks)
	}

	glog.V(1).Infof("Game finished after %d turns, winner: %v (%v)",
		result.Turns, result.Winner, result.HasWinner)
	return result, nil
}

// nextPlayer returns the next active player after p, in seat order.
func nextPlayer(game *gamestate.GameState, p gamestate.Player) gamestate.Player {
	n := game.NumPlayers()
	for i := 1; i <= n; i++ {
		next := gamestate.Player((int(p) + i) % n)
		if game.IsActive(next) {
			return next
		}
	}

	return p
}

// knownFraction returns the fraction of cards in opponents' hands that
// players' trackers have identified, pooled over all active players.
func knownFraction(game *gamestate.GameState, players []*Player) (float64, bool) {
	var known, held int
	for _, player := range players {
		if !game.IsActive(player.ID()) {
			continue
		}

		for _, opponent := range game.ActivePlayers() {
			if opponent != player.ID() {
				known += player.Tracker().KnownFor(opponent).Len()
				held += game.Hand(opponent).Len()
			}
		}
	}

	if held == 0 {
		return 0, false
	}

	return float64(known) / float64(held), true
}

// Validate checks the game's own consistency, and that every player's
// tracker is consistent with the true hands.
func Validate(game *gamestate.GameState, players []*Player) error {
	if err := game.Validate(); err != nil {
		return err
	}

	for _, player := range players {
		tracker := player.Tracker()
		if err := tracker.Validate(game.Hand); err != nil {
			return err
		}

		// Every card not in our hand or the discard pile is either in the
		// draw pile or in an opponent's hand, identified or not.
		expected := game.DrawPile().Len()
		for p, known := range tracker.Known() {
			expected += game.Hand(p).Len() - known.Len()
		}

		if n := tracker.UnknownCards().Len(); n != expected {
			return errors.Errorf("%v has %d unknown cards, expected %d (%v)",
				player.ID(), n, expected, tracker)
		}
	}

	return nil
}
