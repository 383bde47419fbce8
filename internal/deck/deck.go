package deck

import (
	"fmt"
	"slices"

	"github.com/lox/hearts/internal/randutil"
)

const (
	// Size is the number of cards in a standard deck
	Size = 52
	// Seats is the number of hands a deck is dealt into
	Seats = 4
	// HandSize is the number of cards each seat receives
	HandSize = Size / Seats
)

// NewDeck returns the 52 cards in canonical order, one of each (suit, rank)
func NewDeck() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a Fisher-Yates shuffled copy of cards using src.
// The input slice is left untouched.
func Shuffle(cards []Card, src randutil.Source) []Card {
	out := slices.Clone(cards)
	for i := len(out) - 1; i > 0; i-- {
		j := randutil.IntN(src, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal distributes cards round-robin (card i goes to seat i mod 4) and
// returns each hand in canonical order.
func Deal(cards []Card) ([Seats][]Card, error) {
	var hands [Seats][]Card
	if len(cards) != Size {
		return hands, fmt.Errorf("deal requires %d cards, got %d", Size, len(cards))
	}
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for i, c := range cards {
		hands[i%Seats] = append(hands[i%Seats], c)
	}
	for i := range hands {
		Sort(hands[i])
	}
	return hands, nil
}

// Sort orders a hand in place: Clubs, Diamonds, Spades, Hearts, then by rank.
func Sort(hand []Card) {
	slices.SortFunc(hand, func(a, b Card) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
}

// Sorted returns a sorted copy of hand
func Sorted(hand []Card) []Card {
	out := slices.Clone(hand)
	Sort(out)
	return out
}

// Contains reports whether hand holds c
func Contains(hand []Card, c Card) bool {
	return slices.Contains(hand, c)
}

// Remove returns a copy of hand without c, and whether c was present
func Remove(hand []Card, c Card) ([]Card, bool) {
	idx := slices.Index(hand, c)
	if idx < 0 {
		return slices.Clone(hand), false
	}
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:idx]...)
	return append(out, hand[idx+1:]...), true
}

// OfSuit returns the cards of hand in the given suit, preserving order
func OfSuit(hand []Card, suit Suit) []Card {
	var out []Card
	for _, c := range hand {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

// CountSuit returns how many cards of suit are in hand
func CountSuit(hand []Card, suit Suit) int {
	n := 0
	for _, c := range hand {
		if c.Suit == suit {
			n++
		}
	}
	return n
}

// HasSuit reports whether hand holds any card of suit
func HasSuit(hand []Card, suit Suit) bool {
	return CountSuit(hand, suit) > 0
}

// Lowest returns the lowest-ranked card; ties resolve in canonical order.
// It panics on an empty slice.
func Lowest(cards []Card) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank < best.Rank || (c.Rank == best.Rank && c.Less(best)) {
			best = c
		}
	}
	return best
}

// Highest returns the highest-ranked card; ties resolve to the later suit in
// canonical order. It panics on an empty slice.
func Highest(cards []Card) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Rank > best.Rank || (c.Rank == best.Rank && best.Less(c)) {
			best = c
		}
	}
	return best
}
