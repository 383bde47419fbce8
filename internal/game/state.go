package game

import (
	"fmt"
	"slices"

	"github.com/lox/hearts/internal/deck"
)

// Phase is the state machine position of a game
type Phase int

const (
	PhasePassing Phase = iota
	PhasePlaying
	PhaseTrickEnd
	PhaseRoundEnd
	PhaseGameOver
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhasePassing:
		return "passing"
	case PhasePlaying:
		return "playing"
	case PhaseTrickEnd:
		return "trick-end"
	case PhaseRoundEnd:
		return "round-end"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Play is one card placed on a trick by a seat
type Play struct {
	Card deck.Card
	Seat int
}

// Player is a seat at the table
type Player struct {
	ID          int
	Name        string
	IsHuman     bool
	Hand        []deck.Card
	TricksTaken []deck.Card
}

// TrickWinnerInfo describes the most recently resolved trick
type TrickWinnerInfo struct {
	Name     string
	Points   int
	WinnerID int
}

// Setup describes the seats of a new game
type Setup struct {
	ID          string
	Names       [NumSeats]string
	Humans      [NumSeats]bool
	TargetScore int
}

// DefaultNames are the seat names used when none are configured
var DefaultNames = [NumSeats]string{"You", "West", "North", "East"}

// State is an immutable snapshot of a game. Transitions return a new State
// and never modify the one they were given.
type State struct {
	ID            string
	Phase         Phase
	Round         int
	Direction     PassDirection
	Players       [NumSeats]Player
	Trick         []Play
	LastTrick     []Play
	CurrentPlayer int
	HeartsBroken  bool
	TricksPlayed  int
	RoundScores   [NumSeats]int
	Scores        [NumSeats]int
	TargetScore   int

	// PassSelections holds each seat's chosen cards while passing.
	PassSelections [NumSeats][]deck.Card

	TrickWinner *TrickWinnerInfo
	MoonShooter int
	Winner      int
	Message     string
}

// NewGame deals round one from an already shuffled deck
func NewGame(setup Setup, shuffled []deck.Card) (State, error) {
	s := State{
		ID:          setup.ID,
		TargetScore: setup.TargetScore,
		MoonShooter: -1,
		Winner:      -1,
	}
	if s.TargetScore <= 0 {
		s.TargetScore = DefaultTargetScore
	}
	humans := 0
	for _, h := range setup.Humans {
		if h {
			humans++
		}
	}
	if humans > 1 {
		return State{}, fmt.Errorf("at most one human seat is supported, got %d", humans)
	}
	for seat := range s.Players {
		name := setup.Names[seat]
		if name == "" {
			name = DefaultNames[seat]
		}
		s.Players[seat] = Player{ID: seat, Name: name, IsHuman: setup.Humans[seat]}
	}
	if err := s.dealRound(1, shuffled); err != nil {
		return State{}, err
	}
	return s, nil
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	out := s
	for i := range out.Players {
		out.Players[i].Hand = slices.Clone(s.Players[i].Hand)
		out.Players[i].TricksTaken = slices.Clone(s.Players[i].TricksTaken)
		out.PassSelections[i] = slices.Clone(s.PassSelections[i])
	}
	out.Trick = slices.Clone(s.Trick)
	out.LastTrick = slices.Clone(s.LastTrick)
	if s.TrickWinner != nil {
		info := *s.TrickWinner
		out.TrickWinner = &info
	}
	return out
}

// FirstTrick reports whether no trick has completed yet this round
func (s State) FirstTrick() bool {
	return s.TricksPlayed == 0
}

// LeadSuit returns the suit led on the current trick
func (s State) LeadSuit() (deck.Suit, bool) {
	return LeadSuit(s.Trick)
}

// LegalMoves returns the legal cards for seat given the current trick
func (s State) LegalMoves(seat int) []deck.Card {
	return LegalMoves(s.Players[seat].Hand, s.Trick, s.HeartsBroken, s.FirstTrick())
}

// Hands returns a copy of every seat's hand
func (s State) Hands() [NumSeats][]deck.Card {
	var hands [NumSeats][]deck.Card
	for i, p := range s.Players {
		hands[i] = slices.Clone(p.Hand)
	}
	return hands
}

// HandsEmpty reports whether every hand has been played out
func (s State) HandsEmpty() bool {
	for _, p := range s.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// GameWinner returns the winning seat once the game is over
func (s State) GameWinner() (int, bool) {
	if s.Phase != PhaseGameOver || s.Winner < 0 {
		return -1, false
	}
	return s.Winner, true
}

// HumanSeat returns the first human seat, or -1 for an all-bot table
func (s State) HumanSeat() int {
	for _, p := range s.Players {
		if p.IsHuman {
			return p.ID
		}
	}
	return -1
}

// Validate checks that every card of the deck is in exactly one place:
// a hand, the current trick or a seat's tricks taken.
func (s State) Validate() error {
	seen := make(map[deck.Card]string, deck.Size)
	add := func(c deck.Card, where string) error {
		if prev, dup := seen[c]; dup {
			return fmt.Errorf("card %s found in %s and %s", c, prev, where)
		}
		seen[c] = where
		return nil
	}
	for _, p := range s.Players {
		for _, c := range p.Hand {
			if err := add(c, p.Name+" hand"); err != nil {
				return err
			}
		}
		for _, c := range p.TricksTaken {
			if err := add(c, p.Name+" tricks"); err != nil {
				return err
			}
		}
	}
	for _, play := range s.Trick {
		if err := add(play.Card, "trick"); err != nil {
			return err
		}
	}
	if len(seen) != deck.Size {
		return fmt.Errorf("expected %d cards in play, found %d", deck.Size, len(seen))
	}
	if len(s.Trick) > NumSeats {
		return fmt.Errorf("trick holds %d cards", len(s.Trick))
	}
	return nil
}

// dealRound resets round state and deals the shuffled deck
func (s *State) dealRound(round int, shuffled []deck.Card) error {
	hands, err := deck.Deal(shuffled)
	if err != nil {
		return fmt.Errorf("failed to deal round %d: %w", round, err)
	}

	s.Round = round
	s.Direction = PassDirectionForRound(round)
	for seat := range s.Players {
		s.Players[seat].Hand = hands[seat]
		s.Players[seat].TricksTaken = nil
		s.PassSelections[seat] = nil
	}
	s.Trick = nil
	s.LastTrick = nil
	s.HeartsBroken = false
	s.TricksPlayed = 0
	s.RoundScores = [NumSeats]int{}
	s.TrickWinner = nil
	s.MoonShooter = -1
	s.Winner = -1
	s.CurrentPlayer = OpeningLeader(hands)

	if s.Direction == PassHold {
		s.Phase = PhasePlaying
		s.Message = fmt.Sprintf("Round %d: no passing. %s leads the 2♣.", round, s.Players[s.CurrentPlayer].Name)
		return nil
	}
	s.Phase = PhasePassing
	s.Message = fmt.Sprintf("Round %d: choose %d cards to pass %s.", round, PassCount, s.Direction)
	return nil
}
