/*
Package config loads calculator defaults from an optional YAML file.

PURPOSE:
  The CLI and server share a handful of defaults: which day-count basis to
  assume, how to seed the rate search, how many decimals to show, where the
  series catalog lives and which port to serve on. Rather than repeating
  flag defaults in two mains, both load fincalc.yaml and let flags override.

FILE FORMAT (fincalc.yaml):
  basis:    ACT/365
  guess:    0.1
  round:    6
  catalog:  fincalc.db
  port:     8080

RESOLUTION:
  1. Built-in defaults
  2. Values from the config file, when present
  3. Command-line flags (handled by the callers)

  A missing file is not an error; a malformed one is.
*/
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShaysReality/fincalc/cashflow"
	"github.com/ShaysReality/fincalc/daycount"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "fincalc.yaml"

// Config holds the shared calculator defaults.
type Config struct {
	// Basis is the default day-count basis tag for date-weighted
	// operations.
	Basis string `yaml:"basis"`

	// Guess seeds the IRR/XIRR search.
	Guess float64 `yaml:"guess"`

	// Round is the number of decimals in rendered results; negative
	// disables rounding.
	Round int `yaml:"round"`

	// Catalog is the SQLite series-catalog path.
	Catalog string `yaml:"catalog"`

	// Port is the HTTP server port.
	Port int `yaml:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Basis:   string(daycount.Act365),
		Guess:   cashflow.DefaultGuess,
		Round:   -1,
		Catalog: "fincalc.db",
		Port:    8080,
	}
}

// Load reads the config file at path, falling back to built-in defaults
// when the file does not exist. An unreadable or malformed file is an
// error; an unknown basis tag is rejected here rather than at call time.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := daycount.ParseBasis(cfg.Basis); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
