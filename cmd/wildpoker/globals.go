package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/wildpoker/internal/config"
	"github.com/lox/wildpoker/internal/display"
)

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"wildpoker.hcl" help:"Path to HCL configuration file"`
	Debug   bool   `help:"Enable debug logging (overrides config)"`
	NoColor bool   `help:"Disable colored output (overrides config)"`
}

// load reads the configuration and applies flag overrides.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	if g.Debug {
		cfg.LogLevel = "debug"
	}
	if g.NoColor {
		off := false
		cfg.Color = &off
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	display.SetColor(cfg.ColorEnabled())
	return cfg, nil
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "wildpoker",
	})
}

// signalContext is cancelled on interrupt signals
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
