package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/wildpoker/internal/display"
	"github.com/lox/wildpoker/poker"
)

// BestCmd evaluates concrete cards only
type BestCmd struct {
	Cards []string `arg:"" help:"5-7 card tokens, e.g. TD TC TH 7C 7D 8C 8S"`
	Plain bool     `help:"Print only the five tokens"`
}

func (c *BestCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}
	return c.run(os.Stdout)
}

func (c *BestCmd) run(w io.Writer) error {
	tokens := splitTokens(c.Cards)
	best, err := poker.EvaluateBestHand(tokens)
	if err != nil {
		return err
	}
	if c.Plain {
		_, err := fmt.Fprintln(w, strings.Join(best, " "))
		return err
	}
	result, err := poker.Evaluate(tokens)
	if err != nil {
		return err
	}
	return printResult(w, result)
}

// WildCmd evaluates cards that may include jokers
type WildCmd struct {
	Cards []string `arg:"" help:"5-7 tokens, jokers as ?B (clubs/spades) and ?R (hearts/diamonds)"`
	Plain bool     `help:"Print only the five tokens"`
}

func (c *WildCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}
	return c.run(os.Stdout)
}

func (c *WildCmd) run(w io.Writer) error {
	result, err := poker.Evaluate(splitTokens(c.Cards))
	if err != nil {
		return err
	}
	if c.Plain {
		_, err := fmt.Fprintln(w, strings.Join(result.Tokens(), " "))
		return err
	}
	return printResult(w, result)
}

func printResult(w io.Writer, r poker.Result) error {
	if _, err := fmt.Fprintln(w, display.Result(r)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, display.InfoStyle.Render(display.Describe(r)))
	return err
}

// splitTokens accepts cards as separate arguments or as one quoted string.
func splitTokens(args []string) []string {
	var tokens []string
	for _, a := range args {
		tokens = append(tokens, strings.Fields(a)...)
	}
	return tokens
}
