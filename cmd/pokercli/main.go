package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" help:"Connect and play interactively"`
	Bot     BotCmd           `cmd:"" help:"Run one or more automated players"`
	Replay  ReplayCmd        `cmd:"" help:"Replay a captured session transcript"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokercli"),
		kong.Description("Terminal client for pokermania poker servers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
