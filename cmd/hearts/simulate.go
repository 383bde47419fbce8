package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/lox/hearts/internal/bot"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/simulator"
)

type SimulateCmd struct {
	Games       int           `short:"n" default:"1000" help:"Number of games to play"`
	Workers     int           `short:"w" default:"0" help:"Games played in parallel (0 for one per CPU)"`
	Seed        int64         `default:"0" help:"Base RNG seed; game i uses seed+i (0 for time-based)"`
	Strategy    []string      `short:"s" help:"Bot strategy per seat, in seat order (${strategies}); the last one fills the rest" default:"heuristic"`
	TargetScore int           `default:"100" help:"End each game when a score reaches this"`
	Timeout     time.Duration `default:"30s" help:"Abandon a single game after this long"`
	Report      string        `short:"o" help:"Write a JSON report to this file" type:"path"`
	Quiet       bool          `short:"q" help:"Hide the progress bar"`
	Debug       bool          `help:"Log at debug level"`
}

func (c *SimulateCmd) Run() error {
	level := "warn"
	if c.Debug {
		level = "debug"
	}
	logger, err := newLogger(os.Stderr, level)
	if err != nil {
		return err
	}

	strategies, err := seatStrategies(c.Strategy)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := simulator.Config{
		Games:       c.Games,
		Workers:     c.Workers,
		Strategies:  strategies,
		Seed:        seed,
		TargetScore: c.TargetScore,
		Timeout:     c.Timeout,
		Logger:      logger,
	}
	var progress *progressBar
	if !c.Quiet {
		progress = newProgressBar(os.Stderr, c.Games)
		cfg.Progress = progress.Update
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(cfg)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	duration := time.Since(start)
	if progress != nil {
		progress.Done()
	}

	report := simulator.NewReport(sim.Config(), stats, start, duration)
	simulator.PrintSummary(os.Stdout, report)

	if c.Report != "" {
		if err := report.WriteFile(c.Report); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", c.Report)
	}
	return nil
}

// seatStrategies expands the --strategy list to one entry per seat
func seatStrategies(names []string) ([game.NumSeats]string, error) {
	var out [game.NumSeats]string
	if len(names) == 0 {
		names = []string{bot.StrategyHeuristic}
	}
	if len(names) > game.NumSeats {
		return out, fmt.Errorf("at most %d strategies can be given, got %d", game.NumSeats, len(names))
	}
	for seat := range out {
		name := names[min(seat, len(names)-1)]
		if !slices.Contains(bot.Strategies(), name) {
			return out, fmt.Errorf("unknown bot strategy %q (known: %v)", name, bot.Strategies())
		}
		out[seat] = name
	}
	return out, nil
}
