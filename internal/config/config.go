// Package config loads the wildpoker HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	DefaultFile           = "wildpoker.hcl"
	DefaultLogLevel       = "info"
	DefaultAddress        = ":8080"
	DefaultMaxMessageSize = 8192
	DefaultWorkers        = 4
)

// Config represents the complete wildpoker configuration
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Color    *bool           `hcl:"color,optional"`
	Server   *ServerSettings `hcl:"server,block"`
	Batch    *BatchSettings  `hcl:"batch,block"`
}

// ServerSettings configures the evaluation service
type ServerSettings struct {
	Address        string `hcl:"address,optional"`
	MaxMessageSize int64  `hcl:"max_message_size,optional"`
}

// BatchSettings configures batch evaluation
type BatchSettings struct {
	Workers int `hcl:"workers,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	color := true
	return &Config{
		LogLevel: DefaultLogLevel,
		Color:    &color,
		Server: &ServerSettings{
			Address:        DefaultAddress,
			MaxMessageSize: DefaultMaxMessageSize,
		},
		Batch: &BatchSettings{
			Workers: DefaultWorkers,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Color == nil {
		c.Color = def.Color
	}
	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.MaxMessageSize == 0 {
		c.Server.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.Batch == nil {
		c.Batch = def.Batch
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = DefaultWorkers
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Server == nil || c.Batch == nil {
		return errors.New("configuration is missing server or batch settings")
	}
	if c.Server.MaxMessageSize < 64 {
		return fmt.Errorf("server max_message_size must be at least 64, got %d", c.Server.MaxMessageSize)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be positive, got %d", c.Batch.Workers)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ColorEnabled reports whether styled output is wanted.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}
