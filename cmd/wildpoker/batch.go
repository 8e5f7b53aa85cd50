package main

import (
	"fmt"
	"io"
	"os"

	"github.com/coder/quartz"

	"github.com/lox/wildpoker/internal/batch"
	"github.com/lox/wildpoker/internal/display"
	"github.com/lox/wildpoker/internal/fileutil"
)

// BatchCmd evaluates a file of hands
type BatchCmd struct {
	File        string `arg:"" optional:"" default:"-" help:"File with one hand per line, - for stdin"`
	Workers     int    `short:"w" help:"Number of workers (overrides config)"`
	SummaryOnly bool   `help:"Print only the per category summary"`
	Output      string `short:"o" help:"Write the report to this file instead of stdout"`
}

func (c *BatchCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	workers := cfg.Batch.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	in := io.Reader(os.Stdin)
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	inputs, err := batch.ReadInputs(in)
	if err != nil {
		return err
	}
	runner := batch.NewRunner(logger, quartz.NewReal(), workers)
	results, summary, err := runner.Run(ctx, inputs)
	if err != nil {
		return err
	}
	if c.Output != "" {
		return fileutil.WriteAtomic(c.Output, 0o644, func(w io.Writer) error {
			return c.write(w, results, summary)
		})
	}
	return c.write(os.Stdout, results, summary)
}

func (c *BatchCmd) write(w io.Writer, results []batch.Result, summary batch.Summary) error {
	if !c.SummaryOnly {
		if err := display.WriteTable(w, results); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return display.WriteSummary(w, summary)
}
