// Play random games of spies, checking every player's card tracker against
// the true state of the game after each action.
package main

import (
	"encoding/gob"
	"flag"
	"os"
	"runtime"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/golang/glog"
	"github.com/google/uuid"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/alphaspy"
	"github.com/timpalpant/alphaspy/gamestate"
)

// Config holds the defaults for each flag, which may be set from the environment.
type Config struct {
	NumGames   int    `env:"ALPHASPY_NUM_GAMES" envDefault:"10000"`
	NumPlayers int    `env:"ALPHASPY_NUM_PLAYERS" envDefault:"4"`
	HandSize   int    `env:"ALPHASPY_HAND_SIZE" envDefault:"4"`
	Seed       int64  `env:"ALPHASPY_SEED" envDefault:"1234"`
	MaxTurns   int    `env:"ALPHASPY_MAX_TURNS" envDefault:"1000"`
	Output     string `env:"ALPHASPY_OUTPUT"`
	Parallel   int    `env:"ALPHASPY_PARALLEL"`
	Validate   bool   `env:"ALPHASPY_VALIDATE" envDefault:"true"`
}

// GameRecord is written to the output file for each game played.
type GameRecord struct {
	ID         uuid.UUID
	Seed       int64
	NumPlayers int
	Winner     gamestate.Player
	HasWinner  bool
	Turns      int
	History    gamestate.History
}

type stats struct {
	mu            sync.Mutex
	nGames        int
	nWins         []int
	nUnfinished   int
	nNoWinner     int
	totalTurns    int
	knownFraction float64
}

func (s *stats) add(result alphaspy.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nGames++
	s.totalTurns += result.Turns
	s.knownFraction += result.KnownFraction
	switch {
	case result.ReachedTurnLimit:
		s.nUnfinished++
	case result.HasWinner:
		s.nWins[result.Winner]++
	default:
		s.nNoWinner++
	}

	if s.nGames%1000 == 0 {
		glog.Infof("Played %d games", s.nGames)
	}
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		glog.Fatal(errors.Wrap(err, "parse environment"))
	}

	numGames := flag.Int("num_games", cfg.NumGames, "Number of random games to play")
	numPlayers := flag.Int("num_players", cfg.NumPlayers, "Number of players in each game")
	handSize := flag.Int("hand_size", cfg.HandSize, "Number of cards dealt to each player")
	seed := flag.Int64("seed", cfg.Seed, "Random seed")
	maxTurns := flag.Int("max_turns", cfg.MaxTurns, "Maximum number of turns per game")
	output := flag.String("output", cfg.Output, "File to save gzipped game records to (optional)")
	parallel := flag.Int("parallel", cfg.Parallel, "Number of games to play in parallel (default: number of CPUs)")
	validate := flag.Bool("validate", cfg.Validate, "Check card trackers against the game after every action")
	flag.Parse()
	defer glog.Flush()

	config := gamestate.DefaultConfig(*numPlayers)
	config.HandSize = *handSize
	if *parallel <= 0 {
		*parallel = runtime.NumCPU()
	}

	records, closeRecords := mustOpenRecords(*output)
	defer closeRecords()

	s := &stats{nWins: make([]int, *numPlayers)}
	glog.Infof("Playing %d games with %d players", *numGames, *numPlayers)
	var wg sync.WaitGroup
	sem := make(chan struct{}, *parallel)
	for i := 0; i < *numGames; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(gameSeed int64) {
			defer func() {
				<-sem
				wg.Done()
			}()

			result, err := playGame(config, gameSeed, *maxTurns, *validate)
			if err != nil {
				glog.Fatalf("Game with seed %d failed: %+v", gameSeed, err)
			}

			s.add(result)
			records(GameRecord{
				ID:         uuid.New(),
				Seed:       gameSeed,
				NumPlayers: config.NumPlayers,
				Winner:     result.Winner,
				HasWinner:  result.HasWinner,
				Turns:      result.Turns,
				History:    result.History,
			})
		}(*seed + int64(i))
	}

	wg.Wait()
	report(s)
}

func playGame(config gamestate.Config, seed int64, maxTurns int, validate bool) (alphaspy.Result, error) {
	game, players, err := alphaspy.NewRandomGame(config, seed)
	if err != nil {
		return alphaspy.Result{}, err
	}

	var check func() error
	if validate {
		check = func() error {
			return alphaspy.Validate(game, players)
		}
	}

	return alphaspy.PlayGame(game, players, maxTurns, check)
}

func report(s *stats) {
	if s.nGames == 0 {
		return
	}

	for p, nWins := range s.nWins {
		winRate := float64(nWins) / float64(s.nGames)
		glog.Infof("%v won %d (%.3f %%) of games", gamestate.Player(p), nWins, 100*winRate)
	}

	glog.Infof("%d games reached the turn limit", s.nUnfinished)
	glog.Infof("%d games ended with no players left", s.nNoWinner)
	glog.Infof("Average game length: %.1f turns", float64(s.totalTurns)/float64(s.nGames))
	glog.Infof("Average fraction of opponents' cards known: %.3f", s.knownFraction/float64(s.nGames))
}

// mustOpenRecords returns a function that saves each GameRecord to
// filename, and a function to close the file once all games are done.
// If filename is empty, records are discarded.
func mustOpenRecords(filename string) (func(GameRecord), func()) {
	if filename == "" {
		return func(GameRecord) {}, func() {}
	}

	glog.Infof("Saving game records to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		glog.Fatal(err)
	}

	w := gzip.NewWriter(f)
	enc := gob.NewEncoder(w)
	var mu sync.Mutex
	save := func(record GameRecord) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(record); err != nil {
			glog.Fatal(errors.Wrapf(err, "saving record for game %v", record.ID))
		}
	}

	closeRecords := func() {
		if err := w.Close(); err != nil {
			glog.Fatal(err)
		}
		if err := f.Close(); err != nil {
			glog.Fatal(err)
		}
	}

	return save, closeRecords
}
