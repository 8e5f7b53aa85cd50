package main

import (
	"context"
	"os"
	"time"

	"github.com/lox/wildpoker/internal/server"
)

// ServeCmd runs the WebSocket evaluation service
type ServeCmd struct {
	Addr           string `short:"a" help:"Server address to bind to (overrides config)"`
	MaxMessageSize int64  `help:"Maximum request size in bytes (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.MaxMessageSize > 0 {
		cfg.Server.MaxMessageSize = c.MaxMessageSize
	}

	logger := newLogger(os.Stderr, cfg)
	s := server.NewServer(cfg.Server.Address, logger, server.WithMaxMessageSize(cfg.Server.MaxMessageSize))

	ctx, cancel := signalContext(logger)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
