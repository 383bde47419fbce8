package bot

import (
	"slices"

	"github.com/lox/hearts/internal/deck"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/randutil"
)

// ChoosePass picks the three cards to give away. Rules are tried in order
// until three cards are chosen:
//  1. the Queen, King and Ace of Spades
//  2. whole short Clubs or Diamonds suits that fit in the remaining slots
//  3. Jacks and above, Clubs last
//  4. the highest remaining cards
func ChoosePass(hand []deck.Card) []deck.Card {
	picked := make([]deck.Card, 0, game.PassCount)
	remaining := func() int { return game.PassCount - len(picked) }
	add := func(c deck.Card) {
		if remaining() > 0 && !slices.Contains(picked, c) {
			picked = append(picked, c)
		}
	}

	for _, r := range []deck.Rank{deck.Queen, deck.Ace, deck.King} {
		if c := deck.NewCard(deck.Spades, r); deck.Contains(hand, c) {
			add(c)
		}
	}

	// Shortest side suit first so a void is reachable with the slots left.
	voidable := []deck.Suit{deck.Clubs, deck.Diamonds}
	slices.SortStableFunc(voidable, func(a, b deck.Suit) int {
		return deck.CountSuit(hand, a) - deck.CountSuit(hand, b)
	})
	for _, suit := range voidable {
		cards := deck.OfSuit(hand, suit)
		if len(cards) > 0 && len(cards) <= remaining() {
			for _, c := range cards {
				add(c)
			}
		}
	}

	if remaining() > 0 {
		var high []deck.Card
		for _, c := range hand {
			if c.Rank >= deck.Jack && !slices.Contains(picked, c) {
				high = append(high, c)
			}
		}
		slices.SortStableFunc(high, func(a, b deck.Card) int {
			aClub, bClub := a.Suit == deck.Clubs, b.Suit == deck.Clubs
			if aClub != bClub {
				if aClub {
					return 1
				}
				return -1
			}
			return byRankDesc(a, b)
		})
		for _, c := range high {
			add(c)
		}
	}

	if remaining() > 0 {
		rest := slices.Clone(hand)
		slices.SortStableFunc(rest, byRankDesc)
		for _, c := range rest {
			add(c)
		}
	}
	return picked
}

// byRankDesc orders higher ranks first, Hearts before Spades before
// Diamonds before Clubs on equal rank.
func byRankDesc(a, b deck.Card) int {
	if a.Rank != b.Rank {
		return int(b.Rank) - int(a.Rank)
	}
	return int(b.Suit) - int(a.Suit)
}

// ChoosePlay selects a card for the seat described by view. The result is
// always one of view.Legal.
func ChoosePlay(view game.View, src randutil.Source) (deck.Card, string) {
	if len(view.Legal) == 0 {
		panic("bot: ChoosePlay called without legal moves")
	}

	var (
		card   deck.Card
		reason string
	)
	lead, following := view.LeadSuit()
	switch {
	case !following:
		card, reason = chooseLead(view.Legal, src)
	case deck.HasSuit(view.Hand, lead):
		card, reason = chooseFollow(view.Legal, view.Trick, lead)
	default:
		card, reason = chooseDiscard(view.Legal)
	}

	if !deck.Contains(view.Legal, card) {
		return deck.Lowest(view.Legal), "lowest legal card"
	}
	return card, reason
}

// chooseLead leads the lowest card of the longest legal suit
func chooseLead(legal []deck.Card, src randutil.Source) (deck.Card, string) {
	longest := 0
	var suits []deck.Suit
	for _, suit := range deck.Suits {
		n := deck.CountSuit(legal, suit)
		switch {
		case n == 0:
		case n > longest:
			longest = n
			suits = []deck.Suit{suit}
		case n == longest:
			suits = append(suits, suit)
		}
	}
	if len(suits) == 0 {
		return deck.Lowest(legal), "lowest legal card"
	}

	suit := suits[0]
	if len(suits) > 1 && src != nil {
		suit = suits[randutil.IntN(src, len(suits))]
	}
	return deck.Lowest(deck.OfSuit(legal, suit)), "lead low from longest suit"
}

// chooseFollow ducks under the current winner when possible
func chooseFollow(legal []deck.Card, trick []game.Play, lead deck.Suit) (deck.Card, string) {
	winning := trick[game.TrickWinner(trick)].Card

	if lead == deck.Spades && deck.Contains(legal, deck.QueenOfSpades) {
		for _, p := range trick {
			if p.Card.Suit == deck.Spades && p.Card.Rank > deck.Queen {
				return deck.QueenOfSpades, "dump queen under a higher spade"
			}
		}
	}

	var below []deck.Card
	for _, c := range legal {
		if c.Suit == lead && c.Rank < winning.Rank {
			below = append(below, c)
		}
	}
	if len(below) > 0 {
		return deck.Highest(below), "duck under " + winning.String()
	}
	return deck.Lowest(deck.OfSuit(legal, lead)), "forced to win, play lowest"
}

// chooseDiscard sheds the most dangerous card when void in the lead suit
func chooseDiscard(legal []deck.Card) (deck.Card, string) {
	if deck.Contains(legal, deck.QueenOfSpades) {
		return deck.QueenOfSpades, "discard the queen of spades"
	}
	if hearts := deck.OfSuit(legal, deck.Hearts); len(hearts) > 0 {
		return deck.Highest(hearts), "discard highest heart"
	}
	var bigSpades []deck.Card
	for _, c := range deck.OfSuit(legal, deck.Spades) {
		if c.Rank >= deck.King {
			bigSpades = append(bigSpades, c)
		}
	}
	if len(bigSpades) > 0 {
		return deck.Highest(bigSpades), "discard high spade"
	}

	var longest []deck.Card
	for _, suit := range deck.Suits {
		cards := deck.OfSuit(legal, suit)
		if len(cards) > len(longest) ||
			(len(cards) == len(longest) && len(cards) > 0 && deck.Highest(cards).Rank > deck.Highest(longest).Rank) {
			longest = cards
		}
	}
	if len(longest) == 0 {
		return deck.Lowest(legal), "lowest legal card"
	}
	return deck.Highest(longest), "discard high from longest suit"
}
