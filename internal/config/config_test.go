// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/groupagg/internal/config"
	"github.com/katalvlaran/groupagg/partition"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groupstat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())

	o := partition.NewOptions(cfg.PartitionOptions()...)
	require.Equal(t, partition.DefaultEpsilon, o.Epsilon())
	require.True(t, o.CheckNonNegative())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
epsilon: 0.001
workers: 4
skip_non_negative_check: true
log_level: DEBUG
dataset:
  header: true
  comma: ";"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.001, cfg.Epsilon)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, config.FormatJSON, cfg.Format, "unset key keeps default")
	require.True(t, cfg.Dataset.Header)
	require.Equal(t, ';', cfg.Comma())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, lvl)

	o := partition.NewOptions(cfg.PartitionOptions()...)
	require.Equal(t, 4, o.Workers())
	require.False(t, o.CheckNonNegative())
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"negative epsilon", "epsilon: -1\n"},
		{"zero workers", "workers: 0\n"},
		{"format", "format: xml\n"},
		{"comma", "dataset:\n  comma: \"ab\"\n"},
		{"level", "log_level: loud\n"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Load(writeFile(t, tc.body))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "epsilon: [1, 2\n"))
	require.Error(t, err)
}
