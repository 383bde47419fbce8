// Package config loads the HCL configuration for a Hearts table.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/hearts/internal/bot"
	"github.com/lox/hearts/internal/game"
)

// Environment variables that override the file
const (
	// EnvSeed sets the random seed (0 means time-based)
	EnvSeed = "HEARTS_SEED"

	// EnvLogLevel sets the log level
	EnvLogLevel = "HEARTS_LOG_LEVEL"
)

// StrategyHuman marks the seat driven from the terminal
const StrategyHuman = "human"

// Positions lists seat labels in seat order
var Positions = [game.NumSeats]string{"south", "west", "north", "east"}

// Config represents the complete game configuration
type Config struct {
	Game  GameSettings
	Seats [game.NumSeats]SeatConfig
	UI    UISettings
}

// GameSettings contains rules and reproducibility settings
type GameSettings struct {
	TargetScore int    `hcl:"target_score,optional"`
	Seed        int64  `hcl:"seed,optional"`
	HistoryDir  string `hcl:"history_dir,optional"`
}

// SeatConfig describes who sits at one position
type SeatConfig struct {
	Position string `hcl:"position,label"`
	Name     string `hcl:"name,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// UISettings contains terminal and pacing settings
type UISettings struct {
	AIDelay    string `hcl:"ai_delay,optional"`
	TrickDelay string `hcl:"trick_delay,optional"`
	LogLevel   string `hcl:"log_level,optional"`
	LogFile    string `hcl:"log_file,optional"`
	NoColor    bool   `hcl:"no_color,optional"`
}

// fileConfig is the on-disk shape; every block is optional
type fileConfig struct {
	Game  *GameSettings `hcl:"game,block"`
	Seats []SeatConfig  `hcl:"seat,block"`
	UI    *UISettings   `hcl:"ui,block"`
}

// DefaultConfig returns the default configuration: the human in the south
// seat against three heuristic bots.
func DefaultConfig() *Config {
	cfg := &Config{
		Game: GameSettings{
			TargetScore: game.DefaultTargetScore,
		},
		UI: UISettings{
			AIDelay:    "600ms",
			TrickDelay: "1500ms",
			LogLevel:   "info",
			LogFile:    "hearts.log",
		},
	}
	for seat, pos := range Positions {
		cfg.Seats[seat] = SeatConfig{
			Position: pos,
			Name:     game.DefaultNames[seat],
			Strategy: bot.StrategyHeuristic,
		}
	}
	cfg.Seats[0].Strategy = StrategyHuman
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return fc.merge()
}

// merge applies the file over the defaults
func (fc fileConfig) merge() (*Config, error) {
	cfg := DefaultConfig()

	if g := fc.Game; g != nil {
		if g.TargetScore != 0 {
			cfg.Game.TargetScore = g.TargetScore
		}
		cfg.Game.Seed = g.Seed
		cfg.Game.HistoryDir = g.HistoryDir
	}

	seen := map[int]bool{}
	for _, sc := range fc.Seats {
		seat, err := SeatIndex(sc.Position)
		if err != nil {
			return nil, err
		}
		if seen[seat] {
			return nil, fmt.Errorf("seat %q configured twice", sc.Position)
		}
		seen[seat] = true
		if sc.Name != "" {
			cfg.Seats[seat].Name = sc.Name
		}
		if sc.Strategy != "" {
			cfg.Seats[seat].Strategy = sc.Strategy
		}
	}

	if ui := fc.UI; ui != nil {
		if ui.AIDelay != "" {
			cfg.UI.AIDelay = ui.AIDelay
		}
		if ui.TrickDelay != "" {
			cfg.UI.TrickDelay = ui.TrickDelay
		}
		if ui.LogLevel != "" {
			cfg.UI.LogLevel = ui.LogLevel
		}
		if ui.LogFile != "" {
			cfg.UI.LogFile = ui.LogFile
		}
		cfg.UI.NoColor = ui.NoColor
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv() error {
	if seedStr := os.Getenv(EnvSeed); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Game.Seed = seed
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.UI.LogLevel = strings.ToLower(level)
	}
	return nil
}

// SeatIndex maps a position label to its seat number
func SeatIndex(position string) (int, error) {
	for seat, pos := range Positions {
		if strings.EqualFold(pos, position) {
			return seat, nil
		}
	}
	return -1, fmt.Errorf("unknown seat position %q (expected one of %s)", position, strings.Join(Positions[:], ", "))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.TargetScore <= 0 {
		return errors.New("target score must be positive")
	}

	humans := 0
	known := bot.Strategies()
	for _, sc := range c.Seats {
		if sc.Name == "" {
			return fmt.Errorf("seat %s needs a name", sc.Position)
		}
		if sc.Strategy == StrategyHuman {
			humans++
			continue
		}
		valid := false
		for _, name := range known {
			valid = valid || name == sc.Strategy
		}
		if !valid {
			return fmt.Errorf("seat %s: invalid strategy %q", sc.Position, sc.Strategy)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, found %d", humans)
	}

	if _, err := c.AIDelay(); err != nil {
		return err
	}
	if _, err := c.TrickDelay(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	return nil
}

// AIDelay returns the pause before each bot play
func (c *Config) AIDelay() (time.Duration, error) {
	return parseDelay("ai_delay", c.UI.AIDelay)
}

// TrickDelay returns how long a finished trick stays on screen
func (c *Config) TrickDelay() (time.Duration, error) {
	return parseDelay("trick_delay", c.UI.TrickDelay)
}

func parseDelay(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s cannot be negative", name)
	}
	return d, nil
}

// Setup returns the game setup described by the seats
func (c *Config) Setup() game.Setup {
	setup := game.Setup{TargetScore: c.Game.TargetScore}
	for seat, sc := range c.Seats {
		setup.Names[seat] = sc.Name
		setup.Humans[seat] = sc.Strategy == StrategyHuman
	}
	return setup
}

// HumanSeat returns the human seat or -1 when every seat is a bot
func (c *Config) HumanSeat() int {
	for seat, sc := range c.Seats {
		if sc.Strategy == StrategyHuman {
			return seat
		}
	}
	return -1
}
