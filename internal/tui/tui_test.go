package tui

import (
	"context"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hearts/internal/bot"
	"github.com/lox/hearts/internal/deck"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/pacer"
	"github.com/lox/hearts/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
}

func newEngine(t *testing.T, seed int64, human bool) *game.Engine {
	t.Helper()
	var agents [game.NumSeats]game.Agent
	for seat := range agents {
		if seat == 0 && human {
			continue
		}
		agents[seat] = bot.NewHeuristic(randutil.New(seed+int64(seat)), quietLogger())
	}
	e, err := game.NewEngine(game.EngineConfig{
		Setup:  game.Setup{ID: "test-game"},
		Agents: agents,
		Rand:   randutil.New(seed),
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	return e
}

// newModel builds a model whose bot turns are due immediately
func newModel(t *testing.T, seed int64) *Model {
	t.Helper()
	logger := quietLogger()
	return New(Options{
		Engine: newEngine(t, seed, true),
		Pacer:  pacer.New(quartz.NewMock(t), 0, 0, logger),
		Logger: logger,
	})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends keys and runs every resulting command to completion
func press(m *Model, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drain(m, cmd)
	}
}

func drain(m *Model, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(stepMsg); !ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func contains(lines []string, substr string) bool {
	return slices.ContainsFunc(lines, func(l string) bool { return strings.Contains(l, substr) })
}

// moveTo puts the cursor on index i of the sorted hand
func moveTo(m *Model, i int) {
	for m.Cursor() > i {
		press(m, "left")
	}
	for m.Cursor() < i {
		press(m, "right")
	}
}

func TestNewLogsOpeningRound(t *testing.T) {
	m := newModel(t, 1)

	require.NotEmpty(t, m.Log())
	assert.Equal(t, "*** ROUND 1 *** (pass left)", m.Log()[0])
	assert.Nil(t, m.Init(), "the human passes first, so nothing is scheduled")
}

func TestPassingWithKeys(t *testing.T) {
	m := newModel(t, 1)

	press(m, "enter")
	assert.Equal(t, game.PhasePassing, m.engine.Phase(), "confirming with nothing selected is rejected")
	assert.Contains(t, m.Log()[len(m.Log())-1], "select")

	press(m, "x", "right", "x", "right", "x")
	s := m.engine.Snapshot()
	require.Len(t, s.PassSelections[0], game.PassCount)
	hand := deck.Sorted(s.Players[0].Hand)
	assert.ElementsMatch(t, hand[:3], s.PassSelections[0])

	press(m, "enter")
	assert.True(t, contains(m.Log(), "Cards passed left"))
	assert.True(t, contains(m.Log(), "seat 0 -> seat 1"))

	s = m.engine.Snapshot()
	for _, c := range hand[:3] {
		assert.NotContains(t, s.Players[0].Hand, c)
	}
	assert.Equal(t, game.PhasePlaying, s.Phase)
	assert.Equal(t, 0, s.CurrentPlayer, "bots played up to the human")
}

func TestPlayRoundWithKeys(t *testing.T) {
	m := newModel(t, 3)
	press(m, "x", "right", "x", "right", "x", "enter")

	for range 13 {
		s := m.engine.Snapshot()
		require.Equal(t, game.PhasePlaying, s.Phase)
		require.Equal(t, 0, s.CurrentPlayer)

		hand := deck.Sorted(s.Players[0].Hand)
		legal := s.LegalMoves(0)
		moveTo(m, slices.Index(hand, legal[0]))
		press(m, "enter")

		if m.engine.Phase() != game.PhasePlaying {
			break
		}
	}

	require.Equal(t, game.PhaseRoundEnd, m.engine.Phase())
	assert.True(t, contains(m.Log(), "=== Round 1 Complete ==="))
	assert.True(t, contains(m.Log(), "plays 2♣"))
	require.NoError(t, m.engine.Snapshot().Validate())

	press(m, "n")
	assert.Equal(t, game.PhasePassing, m.engine.Phase())
	assert.Equal(t, "*** ROUND 2 *** (pass right)", m.Log()[len(m.Log())-1])
	assert.Equal(t, 0, m.Cursor())
}

func TestIllegalPlayIsRejected(t *testing.T) {
	m := newModel(t, 3)
	press(m, "x", "right", "x", "right", "x", "enter")

	s := m.engine.Snapshot()
	hand := deck.Sorted(s.Players[0].Hand)
	legal := s.LegalMoves(0)
	illegal := slices.IndexFunc(hand, func(c deck.Card) bool { return !deck.Contains(legal, c) })
	if illegal < 0 {
		t.Skip("every card in hand is legal for this deal")
	}

	moveTo(m, illegal)
	press(m, "enter")

	after := m.engine.Snapshot()
	assert.Len(t, after.Players[0].Hand, len(s.Players[0].Hand))
	assert.Equal(t, after.Message, m.Log()[len(m.Log())-1])
}

func TestResetStartsNewGame(t *testing.T) {
	m := newModel(t, 5)
	press(m, "x", "enter")

	press(m, "ctrl+r")
	s := m.engine.Snapshot()
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, game.PhasePassing, s.Phase)
	assert.Empty(t, s.PassSelections[0])
	assert.Equal(t, "*** ROUND 1 *** (pass left)", m.Log()[len(m.Log())-1])
}

func TestPacedBotTurns(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	logger := quietLogger()
	m := New(Options{
		Engine: newEngine(t, 9, false),
		Pacer:  pacer.New(mClock, 600*time.Millisecond, 1500*time.Millisecond, logger),
		Logger: logger,
	})

	cmd := m.Init()
	require.NotNil(t, cmd, "an all-bot table starts pacing straight away")

	mClock.Advance(600 * time.Millisecond).MustWait(ctx)
	_, cmd = m.Update(cmd())
	assert.Equal(t, game.PhasePlaying, m.engine.Phase(), "the pass happens once the delay has elapsed")
	require.NotNil(t, cmd)

	// restarting cancels the pending step and schedules a fresh one
	_, restart := m.Update(keyMsg("ctrl+r"))
	assert.NotNil(t, restart)
	_, next := m.Update(cmd())
	assert.Nil(t, next)
	assert.Equal(t, game.PhasePassing, m.engine.Phase())
	assert.Equal(t, 1, m.engine.Snapshot().Round)
}

func TestViewAndQuit(t *testing.T) {
	m := newModel(t, 1)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Hearts")
	assert.Contains(t, view, "Round 1")
	assert.Contains(t, view, "Hand:")
	for _, name := range game.DefaultNames {
		assert.Contains(t, view, name)
	}

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
