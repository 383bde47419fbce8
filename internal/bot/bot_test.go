package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNew(t *testing.T) {
	for _, name := range Strategies() {
		agent, err := New(name, randutil.New(1), quietLogger())
		require.NoError(t, err, name)
		assert.NotNil(t, agent)
	}

	_, err := New("shark", randutil.New(1), quietLogger())
	assert.ErrorContains(t, err, "unknown bot strategy")
}

func playFullGame(t *testing.T, strategies [game.NumSeats]string, seed int64) game.State {
	t.Helper()
	logger := quietLogger()

	var agents [game.NumSeats]game.Agent
	for seat, name := range strategies {
		a, err := New(name, randutil.New(seed+int64(seat)+1), logger)
		require.NoError(t, err)
		agents[seat] = a
	}

	e, err := game.NewEngine(game.EngineConfig{
		Setup:  game.Setup{Names: game.DefaultNames},
		Agents: agents,
		Rand:   randutil.New(seed),
		Logger: logger,
	})
	require.NoError(t, err)

	for rounds := 0; rounds < 200; rounds++ {
		heartsBroken := false
		for e.AdvanceAITurn() {
			s := e.Snapshot()
			require.NoError(t, s.Validate(), "seed %d round %d", seed, s.Round)
			if heartsBroken && s.Phase != game.PhaseRoundEnd && s.Phase != game.PhaseGameOver {
				require.True(t, s.HeartsBroken, "hearts broken must not reset mid-round")
			}
			heartsBroken = s.HeartsBroken
		}

		s := e.Snapshot()
		switch s.Phase {
		case game.PhaseGameOver:
			return s
		case game.PhaseRoundEnd:
			total := 0
			for _, pts := range s.RoundScores {
				total += pts
			}
			if s.MoonShooter >= 0 {
				assert.Equal(t, 3*game.MoonPoints, total)
			} else {
				assert.Equal(t, game.MoonPoints, total)
			}
			require.NoError(t, e.StartNewRound())
		default:
			t.Fatalf("bots stalled in phase %s", s.Phase)
		}
	}
	t.Fatalf("game with seed %d did not finish", seed)
	return game.State{}
}

func TestHeuristicBotsFinishGames(t *testing.T) {
	strategies := [game.NumSeats]string{StrategyHeuristic, StrategyHeuristic, StrategyHeuristic, StrategyHeuristic}
	for seed := range int64(10) {
		s := playFullGame(t, strategies, seed)

		winner, ok := s.GameWinner()
		require.True(t, ok)
		assert.Equal(t, game.LowestScorer(s.Scores), winner)

		reached := false
		for _, score := range s.Scores {
			reached = reached || score >= game.DefaultTargetScore
		}
		assert.True(t, reached)
	}
}

func TestMixedTableFinishesGames(t *testing.T) {
	strategies := [game.NumSeats]string{StrategyRandom, StrategyHeuristic, StrategyRandom, StrategyHeuristic}
	for seed := range int64(5) {
		s := playFullGame(t, strategies, seed+100)
		_, ok := s.GameWinner()
		assert.True(t, ok)
	}
}

func TestGamesAreReproducible(t *testing.T) {
	strategies := [game.NumSeats]string{StrategyHeuristic, StrategyRandom, StrategyHeuristic, StrategyRandom}
	a := playFullGame(t, strategies, 77)
	b := playFullGame(t, strategies, 77)
	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Round, b.Round)
	assert.Equal(t, a.ID, b.ID)
}
