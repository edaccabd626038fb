// SPDX-License-Identifier: MIT

// Command groupstat computes per-group statistics over labelled CSV feature
// tables: group means, spreads, radii and within-group normalization.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/groupagg/internal/config"
	"github.com/katalvlaran/groupagg/partition"
)

const (
	appName = "groupstat"
	version = "v0.3.0"
)

// Persistent flag names.
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagWorkers  = "workers"
	flagEpsilon  = "epsilon"
	flagNoCheck  = "no-check"
	flagFormat   = "format"
	flagHeader   = "header"
	flagComma    = "comma"
)

// app carries the resolved configuration and logger into every subcommand.
type app struct {
	stderr io.Writer
	cfg    config.Config
	log    zerolog.Logger
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires the command tree. Diagnostics go to stderr; results go to
// the command's output stream.
func newRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Per-group statistics over labelled feature tables",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `groupstat reduces the rows of a CSV feature table into groups given by an
integer label column. Groups are ordered by ascending label value.

Input layout: one label field (the first by default) followed by float features.`,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "YAML configuration file")
	pf.String(flagLogLevel, "", "Log level (trace|debug|info|warn|error)")
	pf.Int(flagWorkers, 0, "Concurrent row blocks for sparse kernels")
	pf.Float64(flagEpsilon, 0, "Additive floor for group standard deviations")
	pf.Bool(flagNoCheck, false, "Skip the non-negativity check of max")
	pf.String(flagFormat, "", "Report format (json|yaml)")
	pf.Bool(flagHeader, false, "Input CSV starts with a header record")
	pf.String(flagComma, "", "Input CSV field separator")

	root.AddCommand(newAggregateCmd(a), newNormalizeCmd(a), newBenchCmd(a))

	return root
}

// setup resolves config file + flag overrides and builds the logger.
// Flags win only when explicitly set.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	path, _ := flags.GetString(flagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	applyFlagOverrides(flags, &cfg)
	if err = cfg.Validate(); err != nil {
		return err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Str("cmd", cmd.Name()).
		Logger()
	eff := partition.NewOptions(cfg.PartitionOptions()...)
	a.log.Debug().
		Str("config", path).
		Float64("epsilon", eff.Epsilon()).
		Int("workers", eff.Workers()).
		Bool("check_non_negative", eff.CheckNonNegative()).
		Msg("configuration resolved")

	return nil
}

// applyFlagOverrides copies every explicitly set persistent flag into cfg.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *config.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case flagLogLevel:
			cfg.LogLevel = f.Value.String()
		case flagWorkers:
			cfg.Workers, _ = flags.GetInt(flagWorkers)
		case flagEpsilon:
			cfg.Epsilon, _ = flags.GetFloat64(flagEpsilon)
		case flagNoCheck:
			cfg.SkipNonNegativeCheck, _ = flags.GetBool(flagNoCheck)
		case flagFormat:
			cfg.Format = f.Value.String()
		case flagHeader:
			cfg.Dataset.Header, _ = flags.GetBool(flagHeader)
		case flagComma:
			cfg.Dataset.Comma = f.Value.String()
		}
	})
}
