package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. The declaration order is the canonical
// display order of a sorted hand.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Spades
	Hearts
)

// Suits lists every suit in canonical order.
var Suits = [4]Suit{Clubs, Diamonds, Spades, Hearts}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the English name of the suit
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "10"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card. Cards are comparable and are used directly
// as map keys.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Well-known cards
var (
	TwoOfClubs    = Card{Suit: Clubs, Rank: Two}
	QueenOfSpades = Card{Suit: Spades, Rank: Queen}
)

// String returns the string representation of a card (e.g., "Q♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the compact ASCII form used by ParseCard (e.g., "Qs", "Tc")
func (c Card) Code() string {
	ranks := "23456789TJQKA"
	if c.Rank < Two || c.Rank > Ace {
		return "??"
	}
	var s byte
	switch c.Suit {
	case Clubs:
		s = 'c'
	case Diamonds:
		s = 'd'
	case Spades:
		s = 's'
	case Hearts:
		s = 'h'
	default:
		return "??"
	}
	return string([]byte{ranks[c.Rank-Two], s})
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Less reports whether c sorts before o in canonical hand order.
func (c Card) Less(o Card) bool {
	if c.Suit != o.Suit {
		return c.Suit < o.Suit
	}
	return c.Rank < o.Rank
}

// ParseCard parses a string like "Qs", "10h" or "tc" into a Card
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	rankStr, suitChar := s[:len(s)-1], s[len(s)-1]

	var rank Rank
	switch strings.ToUpper(rankStr) {
	case "2":
		rank = Two
	case "3":
		rank = Three
	case "4":
		rank = Four
	case "5":
		rank = Five
	case "6":
		rank = Six
	case "7":
		rank = Seven
	case "8":
		rank = Eight
	case "9":
		rank = Nine
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank: %q", rankStr)
	}

	var suit Suit
	switch suitChar {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	default:
		return Card{}, fmt.Errorf("invalid suit: %c", suitChar)
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses whitespace or comma separated cards ("2c Qs, Ah")
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixed inputs; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with spaces using their display form
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
