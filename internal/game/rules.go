package game

import (
	"github.com/lox/hearts/internal/deck"
)

const (
	// NumSeats is the number of players at a Hearts table
	NumSeats = deck.Seats
	// MoonPoints is the total of all point cards in one round
	MoonPoints = 26
	// PassCount is how many cards each seat passes
	PassCount = 3
	// DefaultTargetScore ends the game once any cumulative score reaches it
	DefaultTargetScore = 100
)

// PassDirection is where cards travel during the passing phase
type PassDirection int

const (
	PassLeft PassDirection = iota
	PassRight
	PassAcross
	PassHold
)

// String returns the string representation of the direction
func (d PassDirection) String() string {
	switch d {
	case PassLeft:
		return "left"
	case PassRight:
		return "right"
	case PassAcross:
		return "across"
	case PassHold:
		return "hold"
	default:
		return "unknown"
	}
}

// PassDirectionForRound cycles left, right, across, hold starting at round 1
func PassDirectionForRound(round int) PassDirection {
	if round < 1 {
		round = 1
	}
	return PassDirection((round - 1) % 4)
}

// PassTarget returns the seat that receives the cards passed by seat.
// Turn order runs seat, seat+1, ... so passing left gives to the next seat.
func PassTarget(seat int, dir PassDirection) int {
	switch dir {
	case PassLeft:
		return (seat + 1) % NumSeats
	case PassRight:
		return (seat + NumSeats - 1) % NumSeats
	case PassAcross:
		return (seat + 2) % NumSeats
	default:
		return seat
	}
}

// PassSource returns the seat whose cards seat receives
func PassSource(seat int, dir PassDirection) int {
	switch dir {
	case PassLeft:
		return PassTarget(seat, PassRight)
	case PassRight:
		return PassTarget(seat, PassLeft)
	default:
		return PassTarget(seat, dir)
	}
}

// PointValue returns the penalty points carried by a card
func PointValue(c deck.Card) int {
	switch {
	case c.Suit == deck.Hearts:
		return 1
	case c == deck.QueenOfSpades:
		return 13
	default:
		return 0
	}
}

// IsPointCard reports whether the card carries penalty points
func IsPointCard(c deck.Card) bool {
	return PointValue(c) > 0
}

// TrickPoints totals the points in a trick
func TrickPoints(trick []Play) int {
	total := 0
	for _, p := range trick {
		total += PointValue(p.Card)
	}
	return total
}

// OpeningLeader returns the seat holding the two of clubs, or -1
func OpeningLeader(hands [NumSeats][]deck.Card) int {
	for seat, hand := range hands {
		if deck.Contains(hand, deck.TwoOfClubs) {
			return seat
		}
	}
	return -1
}

// LeadSuit returns the suit of the first card in the trick
func LeadSuit(trick []Play) (deck.Suit, bool) {
	if len(trick) == 0 {
		return 0, false
	}
	return trick[0].Card.Suit, true
}

// LegalMoves returns the cards in hand that may be played on the trick.
// firstTrick is true while no trick has completed in the current round.
// The result is never empty for a non-empty hand.
func LegalMoves(hand []deck.Card, trick []Play, heartsBroken, firstTrick bool) []deck.Card {
	if len(hand) == 0 {
		return nil
	}

	lead, following := LeadSuit(trick)
	if following {
		if inSuit := deck.OfSuit(hand, lead); len(inSuit) > 0 {
			return inSuit
		}
		return append([]deck.Card(nil), hand...)
	}

	if firstTrick && deck.Contains(hand, deck.TwoOfClubs) {
		return []deck.Card{deck.TwoOfClubs}
	}

	if heartsBroken {
		return append([]deck.Card(nil), hand...)
	}
	var nonHearts []deck.Card
	for _, c := range hand {
		if c.Suit != deck.Hearts {
			nonHearts = append(nonHearts, c)
		}
	}
	if len(nonHearts) == 0 {
		return append([]deck.Card(nil), hand...)
	}
	return nonHearts
}

// IsLegal reports whether c is among the legal moves
func IsLegal(c deck.Card, hand []deck.Card, trick []Play, heartsBroken, firstTrick bool) bool {
	return deck.Contains(LegalMoves(hand, trick, heartsBroken, firstTrick), c)
}

// TrickWinner returns the index within trick of the winning play: the
// highest card of the lead suit. It returns -1 for an empty trick.
func TrickWinner(trick []Play) int {
	lead, ok := LeadSuit(trick)
	if !ok {
		return -1
	}
	best := 0
	for i := 1; i < len(trick); i++ {
		c := trick[i].Card
		if c.Suit == lead && c.Rank > trick[best].Card.Rank {
			best = i
		}
	}
	return best
}

// AdjustForMoon applies the shoot-the-moon rule: when exactly one seat took
// all 26 points, that seat scores 0 and every other seat scores 26. It
// returns the adjusted scores and the shooter, or -1 when nobody shot.
func AdjustForMoon(roundScores [NumSeats]int) ([NumSeats]int, int) {
	shooter := -1
	for seat, pts := range roundScores {
		if pts == MoonPoints {
			if shooter >= 0 {
				return roundScores, -1
			}
			shooter = seat
		}
	}
	if shooter < 0 {
		return roundScores, -1
	}
	var adjusted [NumSeats]int
	for seat := range adjusted {
		if seat != shooter {
			adjusted[seat] = MoonPoints
		}
	}
	return adjusted, shooter
}

// LowestScorer returns the seat with the lowest cumulative score; ties go
// to the lower seat number.
func LowestScorer(scores [NumSeats]int) int {
	best := 0
	for seat := 1; seat < NumSeats; seat++ {
		if scores[seat] < scores[best] {
			best = seat
		}
	}
	return best
}
