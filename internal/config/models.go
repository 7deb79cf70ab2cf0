package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/rtls-ctl/gwscan/internal/probe"
	"github.com/rtls-ctl/gwscan/internal/report"
	"github.com/rtls-ctl/gwscan/internal/scanner"
)

// CurrentVersion is the only supported config file version
const CurrentVersion = 1

// Config represents the user configuration file
type Config struct {
	Version        int           `yaml:"version"`
	Concurrency    int           `yaml:"concurrency"`            // Maximum in-flight addresses
	Port           int           `yaml:"port"`                   // HTTP port probed on every address
	ConnectTimeout time.Duration `yaml:"connect_timeout"`        // Reachability timeout
	RaceTimeout    time.Duration `yaml:"race_timeout"`           // Shared deadline of the protocol probes
	Format         string        `yaml:"format"`                 // Output format (json, table)
	OUIDatabase    string        `yaml:"oui_database,omitempty"` // IEEE oui.txt used for vendor names, or "auto"
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Version:        CurrentVersion,
		Concurrency:    scanner.DefaultConcurrency,
		Port:           probe.DefaultPort,
		ConnectTimeout: probe.DefaultConnectTimeout,
		RaceTimeout:    scanner.DefaultRaceTimeout,
		Format:         report.FormatJSON,
	}
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var err error

	if c.Version != CurrentVersion {
		err = multierr.Append(err, fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion))
	}
	if c.Concurrency < 1 {
		err = multierr.Append(err, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.Port < 1 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if c.ConnectTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("connect_timeout must be positive, got %s", c.ConnectTimeout))
	}
	if c.RaceTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("race_timeout must be positive, got %s", c.RaceTimeout))
	}
	if !slices.Contains(report.Formats, c.Format) {
		err = multierr.Append(err, fmt.Errorf("format must be one of %s, got %q", strings.Join(report.Formats, ", "), c.Format))
	}

	return err
}

// Scanner returns the scanner settings of the configuration
func (c *Config) Scanner() scanner.Config {
	return scanner.Config{
		Concurrency:    c.Concurrency,
		Port:           uint16(c.Port),
		ConnectTimeout: c.ConnectTimeout,
		RaceTimeout:    c.RaceTimeout,
	}
}
