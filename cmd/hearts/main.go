package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/lox/hearts/internal/bot"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a game against bots in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play many bot-only games and report the results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hearts"),
		kong.Description("Four-player Hearts against heuristic bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"strategies": strings.Join(bot.Strategies(), ", "),
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
