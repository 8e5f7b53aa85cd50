package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/wildpoker/internal/tui"
)

// InteractiveCmd runs the terminal evaluator
type InteractiveCmd struct {
	LogFile string `help:"Write debug logs to this file"`
}

func (c *InteractiveCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	out := io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer f.Close()
		out = f
	}

	logger := newLogger(out, cfg)
	logger.Info("Starting interactive evaluator")
	return tui.Run(logger)
}
