package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/hearts/internal/fileutil"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/statistics"
)

// Report is the JSON summary of a simulation run
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Seats    []SeatReport   `json:"seats"`
}

// ReportMetadata contains run configuration and timing
type ReportMetadata struct {
	StartTime       time.Time `json:"start_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Games           int       `json:"games"`
	Seed            int64     `json:"seed"`
	Workers         int       `json:"workers"`
	TargetScore     int       `json:"target_score"`
	MeanRounds      float64   `json:"mean_rounds"`
	MaxRounds       int       `json:"max_rounds"`
}

// SeatReport contains the results for one seat
type SeatReport struct {
	Seat        int        `json:"seat"`
	Name        string     `json:"name"`
	Strategy    string     `json:"strategy"`
	Wins        int        `json:"wins"`
	WinRate     float64    `json:"win_rate"`
	MeanScore   float64    `json:"mean_score"`
	MedianScore float64    `json:"median_score"`
	StdDev      float64    `json:"std_dev"`
	CI95        [2]float64 `json:"ci95"`
	Moons       int        `json:"moons"`
	QueensTaken int        `json:"queens_taken"`
}

// NewReport builds a report from finished statistics
func NewReport(cfg Config, stats *statistics.Statistics, start time.Time, duration time.Duration) Report {
	target := cfg.TargetScore
	if target <= 0 {
		target = game.DefaultTargetScore
	}
	r := Report{
		Metadata: ReportMetadata{
			StartTime:       start,
			DurationSeconds: duration.Seconds(),
			Games:           stats.Games,
			Seed:            cfg.Seed,
			Workers:         cfg.Workers,
			TargetScore:     target,
			MeanRounds:      stats.MeanRounds(),
			MaxRounds:       stats.MaxRounds,
		},
	}
	for seat := range stats.Seats {
		ss := &stats.Seats[seat]
		low, high := ss.ConfidenceInterval95()
		r.Seats = append(r.Seats, SeatReport{
			Seat:        seat,
			Name:        game.DefaultNames[seat],
			Strategy:    cfg.Strategies[seat],
			Wins:        ss.Wins,
			WinRate:     ss.WinRate(),
			MeanScore:   ss.Mean(),
			MedianScore: ss.Median(),
			StdDev:      ss.StdDev(),
			CI95:        [2]float64{low, high},
			Moons:       ss.Moons,
			QueensTaken: ss.QueensTaken,
		})
	}
	return r
}

// WriteFile writes the report as indented JSON, atomically
func (r Report) WriteFile(path string) error {
	return fileutil.WriteJSONAtomic(path, r)
}

// PrintSummary prints a human-readable summary of simulation results
func PrintSummary(w io.Writer, r Report) {
	fmt.Fprintf(w, "\n=== RESULTS: %d games (seed %d) ===\n", r.Metadata.Games, r.Metadata.Seed)
	fmt.Fprintf(w, "Rounds per game: %.2f avg, %d max\n", r.Metadata.MeanRounds, r.Metadata.MaxRounds)
	fmt.Fprintf(w, "Duration: %.2fs\n\n", r.Metadata.DurationSeconds)

	fmt.Fprintf(w, "%-6s %-10s %6s %7s %8s %8s %18s %6s %7s\n",
		"Seat", "Strategy", "Wins", "Win%", "Mean", "Median", "95% CI", "Moons", "Q♠")
	for _, s := range r.Seats {
		fmt.Fprintf(w, "%-6s %-10s %6d %6.1f%% %8.2f %8.1f [%7.2f, %7.2f] %6d %7d\n",
			s.Name, s.Strategy, s.Wins, s.WinRate*100, s.MeanScore, s.MedianScore,
			s.CI95[0], s.CI95[1], s.Moons, s.QueensTaken)
	}
}
