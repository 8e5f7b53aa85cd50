package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Best        BestCmd          `cmd:"" help:"Best five card hand from 5-7 cards"`
	Wild        WildCmd          `cmd:"" help:"Best five card hand from 5-7 cards with up to two jokers (?B, ?R)"`
	Batch       BatchCmd         `cmd:"" help:"Evaluate a file of hands, one per line"`
	Serve       ServeCmd         `cmd:"" help:"Serve hand evaluation over WebSocket"`
	Interactive InteractiveCmd   `cmd:"" help:"Evaluate hands interactively"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("wildpoker"),
		kong.Description("Poker hand evaluator with black and red jokers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
