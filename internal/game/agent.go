package game

import (
	"slices"

	"github.com/lox/hearts/internal/deck"
)

// View is the read-only information available to the seat that must act.
// Other seats' hands are never included.
type View struct {
	Seat         int
	Round        int
	Direction    PassDirection
	Hand         []deck.Card
	Trick        []Play
	Legal        []deck.Card
	HeartsBroken bool
	FirstTrick   bool
	TricksTaken  [NumSeats][]deck.Card
	RoundScores  [NumSeats]int
	Scores       [NumSeats]int
}

// LeadSuit returns the suit led on the trick in view
func (v View) LeadSuit() (deck.Suit, bool) {
	return LeadSuit(v.Trick)
}

// Agent represents any non-human decision maker for a seat.
// Agents receive immutable views and return choices; the engine validates
// every choice before applying it.
type Agent interface {
	// ChoosePass returns the three cards to pass
	ChoosePass(view View) []deck.Card
	// ChoosePlay returns one card from view.Legal
	ChoosePlay(view View) deck.Card
}

// ViewFor builds the view for seat
func (s State) ViewFor(seat int) View {
	v := View{
		Seat:         seat,
		Round:        s.Round,
		Direction:    s.Direction,
		Hand:         slices.Clone(s.Players[seat].Hand),
		Trick:        slices.Clone(s.Trick),
		HeartsBroken: s.HeartsBroken,
		FirstTrick:   s.FirstTrick(),
		RoundScores:  s.RoundScores,
		Scores:       s.Scores,
	}
	if s.Phase == PhasePlaying {
		v.Legal = s.LegalMoves(seat)
	}
	for i, p := range s.Players {
		v.TricksTaken[i] = slices.Clone(p.TricksTaken)
	}
	return v
}
