package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hearts/internal/bot"
	"github.com/lox/hearts/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hearts.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, game.DefaultTargetScore, cfg.Game.TargetScore)
	assert.Equal(t, 0, cfg.HumanSeat())

	ai, err := cfg.AIDelay()
	require.NoError(t, err)
	assert.Equal(t, 600*time.Millisecond, ai)

	trick, err := cfg.TrickDelay()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, trick)

	setup := cfg.Setup()
	assert.Equal(t, game.DefaultNames, setup.Names)
	assert.Equal(t, [game.NumSeats]bool{true, false, false, false}, setup.Humans)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game {
  target_score = 50
  seed         = 1234
  history_dir  = "histories"
}

seat "west" {
  name     = "Wendy"
  strategy = "random"
}

seat "EAST" {
  name = "Eli"
}

ui {
  ai_delay  = "250ms"
  log_level = "debug"
  no_color  = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Game.TargetScore)
	assert.Equal(t, int64(1234), cfg.Game.Seed)
	assert.Equal(t, "histories", cfg.Game.HistoryDir)

	assert.Equal(t, SeatConfig{Position: "west", Name: "Wendy", Strategy: bot.StrategyRandom}, cfg.Seats[1])
	assert.Equal(t, SeatConfig{Position: "east", Name: "Eli", Strategy: bot.StrategyHeuristic}, cfg.Seats[3])
	assert.Equal(t, "North", cfg.Seats[2].Name, "unconfigured seats keep defaults")

	ai, err := cfg.AIDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, ai)
	assert.Equal(t, "1500ms", cfg.UI.TrickDelay)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.Equal(t, "hearts.log", cfg.UI.LogFile)
	assert.True(t, cfg.UI.NoColor)

	assert.Equal(t, 50, cfg.Setup().TargetScore)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax", content: `game {`, wantErr: "failed to parse HCL"},
		{name: "unknown attribute", content: `game { colour = "red" }`, wantErr: "failed to decode HCL"},
		{name: "unknown seat", content: `seat "middle" {}`, wantErr: "unknown seat position"},
		{name: "duplicate seat", content: "seat \"west\" {}\nseat \"west\" {}", wantErr: "configured twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "target score", mutate: func(c *Config) { c.Game.TargetScore = 0 }, wantErr: "target score"},
		{name: "empty name", mutate: func(c *Config) { c.Seats[2].Name = "" }, wantErr: "needs a name"},
		{name: "strategy", mutate: func(c *Config) { c.Seats[1].Strategy = "shark" }, wantErr: "invalid strategy"},
		{name: "two humans", mutate: func(c *Config) { c.Seats[3].Strategy = StrategyHuman }, wantErr: "at most one human"},
		{name: "bad delay", mutate: func(c *Config) { c.UI.AIDelay = "soon" }, wantErr: "invalid ai_delay"},
		{name: "negative delay", mutate: func(c *Config) { c.UI.TrickDelay = "-1s" }, wantErr: "cannot be negative"},
		{name: "log level", mutate: func(c *Config) { c.UI.LogLevel = "loud" }, wantErr: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}

	allBots := DefaultConfig()
	allBots.Seats[0].Strategy = bot.StrategyRandom
	require.NoError(t, allBots.Validate())
	assert.Equal(t, -1, allBots.HumanSeat())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvLogLevel, "WARN")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, "warn", cfg.UI.LogLevel)

	t.Setenv(EnvSeed, "not-a-number")
	assert.ErrorContains(t, cfg.ApplyEnv(), EnvSeed)
}

func TestSeatIndex(t *testing.T) {
	for want, pos := range Positions {
		got, err := SeatIndex(pos)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := SeatIndex("up")
	assert.Error(t, err)
}
