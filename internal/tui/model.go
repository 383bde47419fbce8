// Package tui is the terminal front end for a local game. It renders
// engine snapshots, turns key presses into engine calls for the human seat
// and paces bot turns so they can be followed.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/hearts/internal/deck"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/pacer"
)

const sidebarWidth = 26

// Options configures a Model
type Options struct {
	Engine *game.Engine
	Pacer  *pacer.Pacer
	Logger *log.Logger
}

// Model is the Bubble Tea model for a game of Hearts
type Model struct {
	engine    *game.Engine
	pacer     *pacer.Pacer
	logger    *log.Logger
	formatter *game.EventFormatter
	humanSeat int

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	gameLog []string
	cursor  int
	step    uint64 // generation of the outstanding pacer schedule

	width    int
	height   int
	quitting bool
}

// stepMsg reports that the pacer delay for an automatic step has ended
type stepMsg struct {
	gen   uint64
	fired bool
}

// New creates the model and subscribes it to the engine's events
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := opts.Engine.Snapshot()

	m := &Model{
		engine: opts.Engine,
		pacer:  opts.Pacer,
		logger: logger.WithPrefix("tui"),
		formatter: game.NewEventFormatter(game.FormattingOptions{
			Perspective: s.HumanSeat(),
		}),
		humanSeat:   s.HumanSeat(),
		keys:        newKeyMap(),
		help:        help.New(),
		logViewport: viewport.New(10, 5),
	}

	// the opening round was announced before we subscribed
	m.onEvent(opts.Engine.RoundStart())
	m.engine.Subscribe(game.EventSubscriberFunc(m.onEvent))
	m.refreshKeys()
	return m
}

// Init starts pacing if bots act first
func (m *Model) Init() tea.Cmd {
	return m.schedule()
}

func (m *Model) onEvent(event game.GameEvent) {
	line := m.formatter.Format(event)
	if line == "" {
		return
	}
	for _, l := range strings.Split(line, "\n") {
		m.AddLogEntry(l)
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case stepMsg:
		if msg.gen != m.step || !msg.fired {
			return m, nil
		}
		m.engine.AdvanceAITurn()
		cmd = m.schedule()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.pacer.Cancel()
			m.quitting = true
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)
	}

	m.clampCursor()
	m.refreshKeys()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	hand := m.hand()

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.ScrollUp):
		m.logViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.ScrollDn):
		m.logViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(hand)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.act("select", func() error { return m.engine.SelectCardForPass(hand[m.cursor]) })

	case key.Matches(msg, m.keys.Confirm):
		if m.engine.Phase() == game.PhasePassing {
			m.act("confirm pass", m.engine.ConfirmPass)
		} else {
			m.act("play", func() error { return m.engine.PlayCard(hand[m.cursor]) })
		}
		return m.schedule()

	case key.Matches(msg, m.keys.Continue):
		m.pacer.Cancel()
		m.engine.AdvanceAITurn()
		return m.schedule()

	case key.Matches(msg, m.keys.NewRound):
		m.act("new round", m.engine.StartNewRound)
		m.cursor = 0
		return m.schedule()

	case key.Matches(msg, m.keys.NewGame), key.Matches(msg, m.keys.Reset):
		m.pacer.Cancel()
		m.AddLogEntry("")
		m.act("reset", m.engine.ResetGame)
		m.cursor = 0
		return m.schedule()
	}
	return nil
}

// act runs a human action. Rejections are already published by the
// engine and shown in the log.
func (m *Model) act(name string, fn func() error) {
	if err := fn(); err != nil {
		m.logger.Debug("Action rejected", "action", name, "error", err)
	}
}

// schedule asks the pacer for the next automatic step, if one is due
func (m *Model) schedule() tea.Cmd {
	if m.engine.WaitingForHuman() {
		return nil
	}
	switch m.engine.Phase() {
	case game.PhaseRoundEnd, game.PhaseGameOver:
		return nil
	}
	m.step++
	gen := m.step
	ch := m.pacer.Schedule(m.engine.Phase())
	return func() tea.Msg {
		return stepMsg{gen: gen, fired: <-ch}
	}
}

func (m *Model) yourTurn() bool {
	if m.humanSeat < 0 || !m.engine.WaitingForHuman() {
		return false
	}
	phase := m.engine.Phase()
	return phase == game.PhasePassing || phase == game.PhasePlaying
}

func (m *Model) refreshKeys() {
	m.keys.enableFor(m.engine.Phase(), m.yourTurn())
}

// hand returns the human seat's hand in display order
func (m *Model) hand() []deck.Card {
	if m.humanSeat < 0 {
		return nil
	}
	s := m.engine.Snapshot()
	return deck.Sorted(s.Players[m.humanSeat].Hand)
}

func (m *Model) clampCursor() {
	n := len(m.hand())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// AddLogEntry appends a line to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the game log
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Cursor returns the index of the highlighted card in the sorted hand
func (m *Model) Cursor() int {
	return m.cursor
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	s := m.engine.Snapshot()

	header := HeaderStyle.Render(" ♥ Hearts ♠ ") + " " + InfoStyle.Render(m.renderStatus(s))

	bottom := m.renderHandPane(s) + "\n" + m.help.View(m.keys)
	bottomPane := paneStyle.Width(max(m.width-2, 1)).Render(bottom)

	paneHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(bottomPane)-2, 1)
	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = paneHeight

	logPane := paneStyle.
		Width(m.logViewport.Width).
		Height(paneHeight).
		Render(m.logViewport.View())
	sidebar := paneStyle.
		Width(sidebarWidth).
		Height(paneHeight).
		Render(m.renderSidebar(s))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar),
		bottomPane,
	)
}

func (m *Model) renderStatus(s game.State) string {
	parts := []string{fmt.Sprintf("Round %d", s.Round)}
	if s.Direction == game.PassHold {
		parts = append(parts, "no passing")
	} else {
		parts = append(parts, "pass "+s.Direction.String())
	}
	if s.HeartsBroken {
		parts = append(parts, "hearts broken")
	}
	parts = append(parts, fmt.Sprintf("to %d", s.TargetScore))
	return strings.Join(parts, " · ")
}

func (m *Model) renderSidebar(s game.State) string {
	var b strings.Builder
	b.WriteString(InfoStyle.Render("Players   round  total"))
	b.WriteString("\n")
	for seat, p := range s.Players {
		line := fmt.Sprintf("%-10s %5d %6d", p.Name, s.RoundScores[seat], s.Scores[seat])
		if s.Phase == game.PhasePlaying && seat == s.CurrentPlayer {
			b.WriteString(ActivePlayerStyle.Render("▶" + line))
		} else {
			b.WriteString(PlayerInfoStyle.Render(" " + line))
		}
		b.WriteString("\n")
	}

	trick := s.Trick
	if s.Phase == game.PhaseTrickEnd {
		trick = s.LastTrick
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Trick"))
	b.WriteString("\n")
	for _, play := range trick {
		fmt.Fprintf(&b, " %-10s %s\n", s.Players[play.Seat].Name, cardStyle(play.Card).Render(play.Card.String()))
	}
	return b.String()
}

func (m *Model) renderHandPane(s game.State) string {
	var b strings.Builder
	if s.Message != "" {
		b.WriteString(WarningStyle.Render(s.Message))
		b.WriteString("\n")
	}
	if m.humanSeat < 0 {
		b.WriteString(InfoStyle.Render("Watching an all-bot table"))
		return b.String()
	}

	hand := deck.Sorted(s.Players[m.humanSeat].Hand)
	var legal []deck.Card
	if s.Phase == game.PhasePlaying && s.CurrentPlayer == m.humanSeat {
		legal = s.LegalMoves(m.humanSeat)
	}
	selected := s.PassSelections[m.humanSeat]
	yourTurn := m.yourTurn()

	cards := make([]string, 0, len(hand))
	for i, c := range hand {
		style := cardStyle(c)
		switch {
		case deck.Contains(selected, c) && s.Phase == game.PhasePassing:
			style = SelectedCardStyle
		case legal != nil && !deck.Contains(legal, c):
			style = DimCardStyle
		}
		text := " " + c.String() + " "
		if yourTurn && i == m.cursor {
			text = "[" + c.String() + "]"
			style = style.Inherit(CursorStyle)
		}
		cards = append(cards, style.Render(text))
	}
	b.WriteString(HandInfoStyle.Render("Hand: "))
	b.WriteString(strings.Join(cards, ""))
	return b.String()
}
