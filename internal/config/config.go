// SPDX-License-Identifier: MIT

// Package config loads the groupstat YAML configuration and turns it into
// partition options. Command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/groupagg/partition"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Output formats accepted by Config.Format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the on-disk configuration of the CLI.
type Config struct {
	Epsilon              float64 `yaml:"epsilon"`
	Workers              int     `yaml:"workers"`
	SkipNonNegativeCheck bool    `yaml:"skip_non_negative_check"`
	LogLevel             string  `yaml:"log_level"`
	Format               string  `yaml:"format"`
	Dataset              Dataset `yaml:"dataset"`
}

// Dataset describes the CSV input layout.
type Dataset struct {
	Header      bool   `yaml:"header"`
	Comma       string `yaml:"comma"`
	LabelColumn int    `yaml:"label_column"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Epsilon:  partition.DefaultEpsilon,
		Workers:  partition.DefaultWorkers,
		LogLevel: zerolog.LevelInfoValue,
		Format:   FormatJSON,
		Dataset:  Dataset{Comma: ","},
	}
}

// Load reads path on top of Default. An empty path returns Default.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) || c.Epsilon < 0:
		return fmt.Errorf("%w: epsilon %g must be finite and >= 0", ErrInvalidConfig, c.Epsilon)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d must be >= 1", ErrInvalidConfig, c.Workers)
	case c.Format != FormatJSON && c.Format != FormatYAML:
		return fmt.Errorf("%w: format %q (want %s or %s)", ErrInvalidConfig, c.Format, FormatJSON, FormatYAML)
	case len([]rune(c.Dataset.Comma)) != 1:
		return fmt.Errorf("%w: dataset.comma %q must be a single character", ErrInvalidConfig, c.Dataset.Comma)
	case c.Dataset.LabelColumn < 0:
		return fmt.Errorf("%w: dataset.label_column %d must be >= 0", ErrInvalidConfig, c.Dataset.LabelColumn)
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel into a zerolog level.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}

	return lvl, nil
}

// Comma returns the dataset field separator as a rune.
func (c Config) Comma() rune {
	return []rune(c.Dataset.Comma)[0]
}

// PartitionOptions converts the numeric settings. Call Validate first;
// the option constructors panic on the values it rejects.
func (c Config) PartitionOptions() []partition.Option {
	opts := []partition.Option{
		partition.WithEpsilon(c.Epsilon),
		partition.WithWorkers(c.Workers),
	}
	if c.SkipNonNegativeCheck {
		opts = append(opts, partition.WithoutNonNegativeCheck())
	}

	return opts
}
