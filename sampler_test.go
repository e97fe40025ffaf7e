package alphaspy

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/timpalpant/alphaspy/cards"
	"github.com/timpalpant/alphaspy/gamestate"
)

const maxTurns = 500

type randomStrategy struct {
	rng *rand.Rand
}

func (s randomStrategy) Select(n int) int {
	return s.rng.Intn(n)
}

func TestPlayGame(t *testing.T) {
	for numPlayers := 2; numPlayers <= 5; numPlayers++ {
		for seed := int64(0); seed < 200; seed++ {
			game, players, err := NewRandomGame(gamestate.DefaultConfig(numPlayers), seed)
			if err != nil {
				t.Fatal(err)
			}

			result, err := PlayGame(game, players, maxTurns, func() error {
				return Validate(game, players)
			})
			if err != nil {
				t.Fatalf("%d players, seed %d: %v\nhistory: %v", numPlayers, seed, err, game.History())
			}

			active := game.ActivePlayers()
			if result.HasWinner != (len(active) == 1) {
				t.Errorf("%d players, seed %d: has winner %v, but active players %v",
					numPlayers, seed, result.HasWinner, active)
			}
			if result.ReachedTurnLimit == game.IsOver() {
				t.Errorf("%d players, seed %d: reached turn limit %v, but game over %v",
					numPlayers, seed, result.ReachedTurnLimit, game.IsOver())
			}
			if result.ReachedTurnLimit && result.Turns != maxTurns {
				t.Errorf("%d players, seed %d: stopped at the turn limit after %d turns",
					numPlayers, seed, result.Turns)
			}
			if result.HasWinner && !game.IsActive(result.Winner) {
				t.Errorf("%d players, seed %d: winner %v is not active", numPlayers, seed, result.Winner)
			}
			if result.KnownFraction < 0 || result.KnownFraction > 1 {
				t.Errorf("%d players, seed %d: known fraction %v out of range",
					numPlayers, seed, result.KnownFraction)
			}
			if len(result.History) < result.Turns {
				t.Errorf("%d players, seed %d: %d actions in history for %d turns",
					numPlayers, seed, len(result.History), result.Turns)
			}
		}
	}
}

func TestPlayGame_TurnLimit(t *testing.T) {
	game, players, err := NewRandomGame(gamestate.DefaultConfig(3), 0)
	if err != nil {
		t.Fatal(err)
	}

	result, err := PlayGame(game, players, 2, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !result.ReachedTurnLimit || result.HasWinner || result.Turns != 2 {
		t.Errorf("got %+v, expected to stop at the turn limit after 2 turns", result)
	}
}

func TestPlayGame_WrongNumberOfPlayers(t *testing.T) {
	game, players, err := NewRandomGame(gamestate.DefaultConfig(3), 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := PlayGame(game, players[:2], maxTurns, nil); err == nil {
		t.Error("expected error playing with too few players")
	}
}

func TestPlayGame_CheckError(t *testing.T) {
	game, players, err := NewRandomGame(gamestate.DefaultConfig(2), 0)
	if err != nil {
		t.Fatal(err)
	}

	nChecks := 0
	_, err = PlayGame(game, players, maxTurns, func() error {
		nChecks++
		return errTestCheck
	})
	if err == nil {
		t.Error("expected check error to stop the game")
	}
	if nChecks != 1 {
		t.Errorf("check called %d times, expected 1", nChecks)
	}
}

var errTestCheck = errors.New("check failed")

// With a single opponent left, every reshuffle fully reveals their hand.
func TestPlayGame_ReshuffleRevealsLastOpponent(t *testing.T) {
	nRevealed := 0
	for seed := int64(0); seed < 200; seed++ {
		game, players, err := NewRandomGame(gamestate.DefaultConfig(2), seed)
		if err != nil {
			t.Fatal(err)
		}

		var reshuffleErr error
		game.Subscribe(gamestate.ReshuffleEvent, func(gamestate.Event) {
			for _, player := range players {
				opponent := 1 - player.ID()
				known := player.Tracker().KnownFor(opponent)
				if hand := game.Hand(opponent); known != hand && reshuffleErr == nil {
					reshuffleErr = errors.Errorf("%v knows %v, but %v holds %v", player.ID(), known, opponent, hand)
				}
			}
			nRevealed++
		})

		if _, err := PlayGame(game, players, maxTurns, nil); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if reshuffleErr != nil {
			t.Errorf("seed %d: %v", seed, reshuffleErr)
		}
	}

	if nRevealed == 0 {
		t.Error("no reshuffles occurred")
	}
}

// Trackers forget everything they knew about eliminated players.
func TestPlayGame_Eliminations(t *testing.T) {
	nEliminated := 0
	for seed := int64(0); seed < 100; seed++ {
		game, players, err := NewRandomGame(gamestate.DefaultConfig(4), seed)
		if err != nil {
			t.Fatal(err)
		}

		game.Subscribe(gamestate.EliminatedEvent, func(e gamestate.Event) {
			eliminated := e.(gamestate.Eliminated).Player
			for _, player := range players {
				if player.ID() == eliminated {
					continue
				}

				if known := player.Tracker().KnownFor(eliminated); !known.IsEmpty() {
					t.Errorf("seed %d: %v still knows %v for eliminated %v",
						seed, player.ID(), known, eliminated)
				}
			}
			nEliminated++
		})

		if _, err := PlayGame(game, players, maxTurns, func() error {
			return Validate(game, players)
		}); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}

	if nEliminated == 0 {
		t.Error("no players were eliminated")
	}
}

func TestRandomStrategy(t *testing.T) {
	s := NewRandomStrategy(rand.New(rand.NewSource(1234)))
	counts := make([]int, 4)
	for i := 0; i < 4000; i++ {
		selected := s.Select(len(counts))
		if selected < 0 || selected >= len(counts) {
			t.Fatalf("selected %d out of %d choices", selected, len(counts))
		}
		counts[selected]++
	}

	for i, count := range counts {
		if count < 800 || count > 1200 {
			t.Errorf("choice %d selected %d times, expected ~1000", i, count)
		}
	}

	if s.Select(1) != 0 {
		t.Error("expected the only choice to be selected")
	}
}

func TestPlayer(t *testing.T) {
	game, err := gamestate.New(gamestate.DefaultConfig(2), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	player := NewPlayer(game, 1, randomStrategy{rand.New(rand.NewSource(2))})
	if player.Hand() != game.Hand(1) {
		t.Errorf("got hand %v, expected %v", player.Hand(), game.Hand(1))
	}

	player.CardStolen(cards.Crown, 0)
	if known := player.Tracker().KnownFor(0); known != cards.NewSetFromCards([]cards.Card{cards.Crown}) {
		t.Errorf("got known cards %v, expected one Crown", known)
	}

	player.ReceiveSpyCard(cards.Crown, 0)
	if known := player.Tracker().KnownFor(0); !known.IsEmpty() {
		t.Errorf("got known cards %v, expected none", known)
	}

	legal := game.LegalActions(1)
	action := player.ChooseAction(legal)
	found := false
	for _, a := range legal {
		found = found || a == action
	}
	if !found {
		t.Errorf("chose %v, which is not one of %v", action, legal)
	}
}

func TestPlayer_NoLegalActions(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic choosing from no actions")
		}
	}()

	game, _, err := NewRandomGame(gamestate.DefaultConfig(2), 0)
	if err != nil {
		t.Fatal(err)
	}

	player := &Player{id: 0, game: game, strategy: randomStrategy{rand.New(rand.NewSource(0))}}
	player.ChooseAction(nil)
}

func BenchmarkPlayGame(b *testing.B) {
	for i := 0; i < b.N; i++ {
		game, players, err := NewRandomGame(gamestate.DefaultConfig(4), int64(i))
		if err != nil {
			b.Fatal(err)
		}

		if _, err := PlayGame(game, players, maxTurns, nil); err != nil {
			b.Fatal(err)
		}
	}
}
