package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hearts/internal/deck"
	"github.com/lox/hearts/internal/randutil"
)

func cards(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func card(s string) deck.Card {
	return cards(s)[0]
}

// plays builds a trick where the first card was led by seat lead
func plays(lead int, codes ...string) []Play {
	out := make([]Play, len(codes))
	for i, code := range codes {
		out[i] = Play{Card: card(code), Seat: (lead + i) % NumSeats}
	}
	return out
}

func TestPointValue(t *testing.T) {
	assert.Equal(t, 13, PointValue(deck.QueenOfSpades))
	assert.Equal(t, 1, PointValue(card("2h")))
	assert.Equal(t, 1, PointValue(card("Ah")))
	assert.Equal(t, 0, PointValue(card("Ks")))
	assert.Equal(t, 0, PointValue(card("Qd")))

	total := 0
	for _, c := range deck.NewDeck() {
		total += PointValue(c)
	}
	assert.Equal(t, MoonPoints, total)
}

func TestPassDirectionCycle(t *testing.T) {
	want := []PassDirection{PassLeft, PassRight, PassAcross, PassHold, PassLeft, PassRight, PassAcross, PassHold}
	for i, dir := range want {
		assert.Equal(t, dir, PassDirectionForRound(i+1), "round %d", i+1)
	}
}

func TestPassTargetAndSource(t *testing.T) {
	tests := []struct {
		dir    PassDirection
		seat   int
		target int
	}{
		{PassLeft, 0, 1},
		{PassLeft, 3, 0},
		{PassRight, 0, 3},
		{PassRight, 2, 1},
		{PassAcross, 0, 2},
		{PassAcross, 3, 1},
		{PassHold, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.target, PassTarget(tt.seat, tt.dir))
			assert.Equal(t, tt.seat, PassSource(tt.target, tt.dir))
		})
	}
}

func TestOpeningLeader(t *testing.T) {
	hands, err := deck.Deal(deck.Shuffle(deck.NewDeck(), randutil.New(5)))
	require.NoError(t, err)
	leader := OpeningLeader(hands)
	require.GreaterOrEqual(t, leader, 0)
	assert.Contains(t, hands[leader], deck.TwoOfClubs)
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name         string
		hand         string
		trick        []Play
		heartsBroken bool
		firstTrick   bool
		want         string
	}{
		{
			name:       "first lead must be the two of clubs",
			hand:       "2c 9c Kd Qs 4h",
			firstTrick: true,
			want:       "2c",
		},
		{
			name: "hearts cannot be led before broken",
			hand: "9c Kd 4h Ah",
			want: "9c Kd",
		},
		{
			name:         "hearts may be led once broken",
			hand:         "9c Kd 4h Ah",
			heartsBroken: true,
			want:         "9c Kd 4h Ah",
		},
		{
			name: "all hearts may lead hearts",
			hand: "4h 9h Ah",
			want: "4h 9h Ah",
		},
		{
			name:  "must follow suit",
			hand:  "2c 9c Kd 4h",
			trick: plays(1, "5c"),
			want:  "2c 9c",
		},
		{
			name:  "void may discard anything",
			hand:  "Kd Qs 4h",
			trick: plays(1, "5c"),
			want:  "Kd Qs 4h",
		},
		{
			name:       "void on the first trick may discard points",
			hand:       "Qs 4h",
			trick:      plays(1, "2c"),
			firstTrick: true,
			want:       "Qs 4h",
		},
		{
			name:  "following hearts when broken is irrelevant",
			hand:  "2h 3s",
			trick: plays(0, "Th"),
			want:  "2h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LegalMoves(cards(tt.hand), tt.trick, tt.heartsBroken, tt.firstTrick)
			assert.Equal(t, cards(tt.want), got)
		})
	}

	assert.Empty(t, LegalMoves(nil, nil, false, false))
}

func TestLegalMovesNeverEmpty(t *testing.T) {
	for seed := range int64(100) {
		hands, err := deck.Deal(deck.Shuffle(deck.NewDeck(), randutil.New(seed)))
		require.NoError(t, err)
		for _, hand := range hands {
			for _, tr := range [][]Play{nil, plays(1, "2c"), plays(1, "2d"), plays(1, "2s"), plays(1, "2h")} {
				for _, broken := range []bool{false, true} {
					for _, first := range []bool{false, true} {
						require.NotEmpty(t, LegalMoves(hand, tr, broken, first))
					}
				}
			}
		}
	}
}

func TestTrickWinner(t *testing.T) {
	tests := []struct {
		name  string
		trick []Play
		want  int
	}{
		{name: "highest of lead suit", trick: plays(0, "2c", "5c", "Kc", "9c"), want: 2},
		{name: "off-suit never wins", trick: plays(0, "5d", "Ah", "As", "4d"), want: 0},
		{name: "later higher card wins", trick: plays(3, "Td", "Jd", "2d", "Ad"), want: 3},
		{name: "partial trick", trick: plays(1, "7s", "9s"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := TrickWinner(tt.trick)
			require.GreaterOrEqual(t, idx, 0)
			assert.Equal(t, tt.want, idx)
			lead, _ := LeadSuit(tt.trick)
			assert.Equal(t, lead, tt.trick[idx].Card.Suit)
		})
	}
	assert.Equal(t, -1, TrickWinner(nil))
}

func TestTrickWinnerIsMaxOfLeadSuit(t *testing.T) {
	src := randutil.New(9)
	for range 500 {
		shuffled := deck.Shuffle(deck.NewDeck(), src)
		trick := make([]Play, NumSeats)
		for i := range trick {
			trick[i] = Play{Card: shuffled[i], Seat: i}
		}
		winner := trick[TrickWinner(trick)].Card
		lead := trick[0].Card.Suit
		require.Equal(t, lead, winner.Suit)
		for _, p := range trick {
			if p.Card.Suit == lead {
				require.LessOrEqual(t, p.Card.Rank, winner.Rank)
			}
		}
	}
}

func TestAdjustForMoon(t *testing.T) {
	t.Run("single shooter", func(t *testing.T) {
		got, shooter := AdjustForMoon([NumSeats]int{0, 26, 0, 0})
		assert.Equal(t, 1, shooter)
		assert.Equal(t, [NumSeats]int{26, 0, 26, 26}, got)
	})

	t.Run("normal round passes through", func(t *testing.T) {
		in := [NumSeats]int{13, 5, 8, 0}
		got, shooter := AdjustForMoon(in)
		assert.Equal(t, -1, shooter)
		assert.Equal(t, in, got)
	})

	t.Run("twenty five is not a moon", func(t *testing.T) {
		in := [NumSeats]int{25, 1, 0, 0}
		got, shooter := AdjustForMoon(in)
		assert.Equal(t, -1, shooter)
		assert.Equal(t, in, got)
	})
}

func TestLowestScorer(t *testing.T) {
	assert.Equal(t, 3, LowestScorer([NumSeats]int{103, 85, 70, 60}))
	assert.Equal(t, 1, LowestScorer([NumSeats]int{50, 20, 20, 100}), "ties go to the lower seat")
}
