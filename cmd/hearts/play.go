package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/hearts/internal/bot"
	"github.com/lox/hearts/internal/config"
	"github.com/lox/hearts/internal/game"
	"github.com/lox/hearts/internal/pacer"
	"github.com/lox/hearts/internal/randutil"
	"github.com/lox/hearts/internal/tui"
)

type PlayCmd struct {
	Config      string `short:"c" default:"hearts.hcl" help:"Path to HCL config file (defaults are used if missing)"`
	Seed        int64  `help:"RNG seed, overrides config and HEARTS_SEED (0 for time-based)" default:"0"`
	TargetScore int    `help:"End the game when a score reaches this (overrides config)"`
	History     string `help:"Directory to write game histories to (overrides config)" type:"path"`
	NoColor     bool   `help:"Disable colored output"`
	Debug       bool   `help:"Log at debug level"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting hearts", "version", version, "seed", seed)

	engine, err := newEngine(cfg, seed, logger)
	if err != nil {
		return err
	}

	var history *game.GameHistory
	if cfg.Game.HistoryDir != "" {
		history = game.NewGameHistory(engine.Snapshot(), seed, game.NewFileHistoryWriter(cfg.Game.HistoryDir))
		history.OnEvent(engine.RoundStart())
		engine.Subscribe(history)
	}

	aiDelay, _ := cfg.AIDelay()
	trickDelay, _ := cfg.TrickDelay()

	if cfg.UI.NoColor {
		tui.DisableColor()
	}
	model := tui.New(tui.Options{
		Engine: engine,
		Pacer:  pacer.New(quartz.NewReal(), aiDelay, trickDelay, logger),
		Logger: logger,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	if history != nil {
		if err := history.Err(); err != nil {
			return fmt.Errorf("failed to save game history: %w", err)
		}
	}
	fmt.Printf("Thanks for playing. Replay this deal with --seed %d\n", seed)
	return nil
}

// loadConfig reads the config file, then applies the environment and flags
func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.TargetScore > 0 {
		cfg.Game.TargetScore = c.TargetScore
	}
	if c.History != "" {
		cfg.Game.HistoryDir = c.History
	}
	if c.NoColor {
		cfg.UI.NoColor = true
	}
	if c.Debug {
		cfg.UI.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", c.Config, err)
	}
	return cfg, nil
}

// newEngine seats the configured bots and deals the first round
func newEngine(cfg *config.Config, seed int64, logger *log.Logger) (*game.Engine, error) {
	var agents [game.NumSeats]game.Agent
	for seat, sc := range cfg.Seats {
		if sc.Strategy == config.StrategyHuman {
			continue
		}
		agent, err := bot.New(sc.Strategy, randutil.New(seed+int64(seat)+1), logger)
		if err != nil {
			return nil, err
		}
		agents[seat] = agent
	}
	return game.NewEngine(game.EngineConfig{
		Setup:  cfg.Setup(),
		Agents: agents,
		Rand:   randutil.New(seed),
		Logger: logger,
	})
}
