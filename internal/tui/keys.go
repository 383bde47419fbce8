package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/lox/hearts/internal/game"
)

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Confirm  key.Binding
	Continue key.Binding
	NewRound key.Binding
	NewGame  key.Binding
	Reset    key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev card"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next card"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "select"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "continue"),
		),
		NewRound: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("n", "next round"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("r", "new game"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "up", "k"),
			key.WithHelp("↑/pgup", "scroll log"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("pgdown", "down", "j"),
			key.WithHelp("↓/pgdn", "scroll log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Confirm, k.Continue, k.NewRound, k.NewGame, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Toggle, k.Confirm},
		{k.Continue, k.NewRound, k.NewGame, k.Reset},
		{k.ScrollUp, k.ScrollDn, k.Help, k.Quit},
	}
}

// enableFor switches bindings on for the actions valid in phase. yourTurn
// is true when the human seat is the one to act.
func (k *keyMap) enableFor(phase game.Phase, yourTurn bool) {
	k.Left.SetEnabled(yourTurn)
	k.Right.SetEnabled(yourTurn)
	k.Toggle.SetEnabled(yourTurn && phase == game.PhasePassing)
	k.Confirm.SetEnabled(yourTurn)
	k.Continue.SetEnabled(phase == game.PhaseTrickEnd)
	k.NewRound.SetEnabled(phase == game.PhaseRoundEnd)
	k.NewGame.SetEnabled(phase == game.PhaseGameOver)
}
