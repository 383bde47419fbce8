// Package simulator plays many bot-only Hearts games in parallel and
// collects their statistics.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/hearts/internal/bot"
	"github.com/lox/hearts/internal/deck"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/randutil"
	"github.com/lox/hearts/internal/statistics"
)

// maxRounds guards against a game that never reaches the target score
const maxRounds = 1000

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Workers     int
	Strategies  [game.NumSeats]string
	Seed        int64
	TargetScore int
	Timeout     time.Duration // per game; zero disables
	Logger      *log.Logger

	// Progress, when set, is called after each finished game. It may be
	// called from several goroutines at once.
	Progress func(done, total int)
}

// Simulator runs Hearts game simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	for seat, name := range config.Strategies {
		if name == "" {
			config.Strategies[seat] = bot.StrategyHeuristic
		}
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{config: config, logger: logger.WithPrefix("sim")}
}

// Config returns the configuration with defaults applied
func (s *Simulator) Config() Config {
	return s.config
}

// GameSeed returns the seed used for game i, so a single game can be replayed
func GameSeed(base int64, i int) int64 {
	return base + int64(i)
}

// Run plays every game and returns the aggregated statistics. Games are
// independent and run concurrently; results are combined in game order so
// the same seed always yields the same statistics.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, errors.New("number of games must be positive")
	}
	for _, name := range s.config.Strategies {
		if _, err := bot.New(name, randutil.New(0), s.logger); err != nil {
			return nil, err
		}
	}

	results := make([]statistics.GameResult, s.config.Games)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	s.logger.Info("Starting simulation", "games", s.config.Games, "workers", s.config.Workers,
		"strategies", s.config.Strategies, "seed", s.config.Seed)
	start := time.Now()

	for i := range s.config.Games {
		seed := GameSeed(s.config.Seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.PlayGame(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result

			n := int(done.Add(1))
			if s.config.Progress != nil {
				s.config.Progress(n, s.config.Games)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete", "games", stats.Games, "duration", time.Since(start).Round(time.Millisecond))
	return stats, nil
}

// PlayGame plays one complete game from seed. An engine invariant
// violation is returned as an error instead of crashing the run.
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (result statistics.GameResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			inv, ok := r.(game.InvariantError)
			if !ok {
				inv = game.InvariantError{Reason: fmt.Sprint(r)}
			}
			err = inv
		}
	}()

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	var agents [game.NumSeats]game.Agent
	for seat, name := range s.config.Strategies {
		agent, err := bot.New(name, randutil.New(seed*int64(game.NumSeats+1)+int64(seat)+1), s.logger)
		if err != nil {
			return result, err
		}
		agents[seat] = agent
	}

	engine, err := game.NewEngine(game.EngineConfig{
		Setup:  game.Setup{TargetScore: s.config.TargetScore},
		Agents: agents,
		Rand:   randutil.New(seed),
		Logger: s.logger,
	})
	if err != nil {
		return result, err
	}

	result.Seed = seed
	engine.Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
		switch e := event.(type) {
		case game.TrickEndEvent:
			for _, p := range e.Trick {
				if p.Card == deck.QueenOfSpades {
					result.QueensTaken[e.Winner.WinnerID]++
				}
			}
		case game.RoundEndEvent:
			if e.MoonShooter >= 0 {
				result.Moons[e.MoonShooter]++
			}
		}
	}))

	for rounds := 1; ; rounds++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("game stopped in round %d: %w", rounds, err)
		}
		if rounds > maxRounds {
			return result, fmt.Errorf("no winner after %d rounds", maxRounds)
		}

		engine.AdvanceUntilHuman()
		switch engine.Phase() {
		case game.PhaseGameOver:
			final := engine.Snapshot()
			result.Scores = final.Scores
			result.Rounds = final.Round
			result.Winner, _ = final.GameWinner()
			return result, nil
		case game.PhaseRoundEnd:
			if err := engine.StartNewRound(); err != nil {
				return result, err
			}
		default:
			return result, fmt.Errorf("bots stalled in phase %s", engine.Phase())
		}
	}
}
