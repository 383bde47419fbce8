// Package statistics aggregates the results of simulated Hearts games.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Seats is the number of seats tracked per game
const Seats = 4

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed        int64      // RNG seed for this game (for replay)
	Scores      [Seats]int // Final cumulative scores
	Winner      int        // Seat with the lowest score
	Rounds      int        // Rounds played
	Moons       [Seats]int // Times each seat shot the moon
	QueensTaken [Seats]int // Times each seat took the Q♠
}

// SeatStats tracks statistics for a single seat across games
type SeatStats struct {
	Games       int
	Wins        int
	Moons       int
	QueensTaken int
	SumScore    float64
	SumScore2   float64   // Sum of squares for variance calculation
	Values      []float64 // Final scores for median/percentile calculation
}

// Mean returns the mean final score
func (s *SeatStats) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumScore / float64(s.Games)
}

// Variance returns the sample variance of final scores
func (s *SeatStats) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of final scores
func (s *SeatStats) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *SeatStats) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *SeatStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games won
func (s *SeatStats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Median returns the median final score
func (s *SeatStats) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the final score at the given percentile (0.0 to 1.0)
func (s *SeatStats) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Statistics tracks simulation statistics for every seat
type Statistics struct {
	Games     int
	Rounds    int
	MaxRounds int
	Seats     [Seats]SeatStats
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.Rounds += result.Rounds
	if result.Rounds > s.MaxRounds {
		s.MaxRounds = result.Rounds
	}

	for seat := range s.Seats {
		ss := &s.Seats[seat]
		score := float64(result.Scores[seat])
		ss.Games++
		ss.SumScore += score
		ss.SumScore2 += score * score
		ss.Values = append(ss.Values, score)
		ss.Moons += result.Moons[seat]
		ss.QueensTaken += result.QueensTaken[seat]
	}
	if result.Winner >= 0 && result.Winner < Seats {
		s.Seats[result.Winner].Wins++
	}
}

// Merge folds other into s; used to combine per-worker statistics
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Rounds += other.Rounds
	s.MaxRounds = max(s.MaxRounds, other.MaxRounds)
	for seat := range s.Seats {
		a, b := &s.Seats[seat], &other.Seats[seat]
		a.Games += b.Games
		a.Wins += b.Wins
		a.Moons += b.Moons
		a.QueensTaken += b.QueensTaken
		a.SumScore += b.SumScore
		a.SumScore2 += b.SumScore2
		a.Values = append(a.Values, b.Values...)
	}
}

// MeanRounds returns the average game length in rounds
func (s *Statistics) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Rounds) / float64(s.Games)
}

// Validate performs consistency checks on the statistics data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	wins := 0
	for seat, ss := range s.Seats {
		if ss.Games != s.Games {
			return fmt.Errorf("seat %d games (%d) does not match total games (%d)", seat, ss.Games, s.Games)
		}
		if len(ss.Values) != ss.Games {
			return fmt.Errorf("seat %d values length (%d) does not match games (%d)", seat, len(ss.Values), ss.Games)
		}
		wins += ss.Wins
	}
	if wins != s.Games {
		return fmt.Errorf("total wins (%d) does not match total games (%d)", wins, s.Games)
	}

	queens := 0
	for _, ss := range s.Seats {
		queens += ss.QueensTaken
	}
	if queens > s.Rounds {
		return fmt.Errorf("queen of spades taken %d times in %d rounds", queens, s.Rounds)
	}
	return nil
}
