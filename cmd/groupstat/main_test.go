// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/groupagg/matrix"
	"github.com/katalvlaran/groupagg/partition"
)

// ansi matches the color escapes of the console log writer.
var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const scenarioCSV = "label,x,y\n0,0,0\n0,2,0\n1,10,0\n"

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stderr)
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestAggregate_JSON(t *testing.T) {
	out, _, err := run(t, scenarioCSV, "aggregate", "--header", "--ops", "count,sum,mean,std,max,max-radius")
	require.NoError(t, err)

	var rep aggregateReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, 3, rep.Rows)
	require.Equal(t, 2, rep.Features)
	require.Equal(t, []string{"x", "y"}, rep.Columns)
	require.Len(t, rep.Groups, 2)

	g0, g1 := rep.Groups[0], rep.Groups[1]
	require.Equal(t, 0, g0.Label)
	require.Equal(t, 2, g0.Count)
	require.Equal(t, []float64{2, 0}, g0.Sum)
	require.Equal(t, []float64{1, 0}, g0.Mean)
	require.Equal(t, []float64{1 + partition.DefaultEpsilon, partition.DefaultEpsilon}, g0.Std)
	require.Equal(t, 2.0, *g0.Max)
	require.Equal(t, 2.0, *g0.MaxRadius)
	require.Equal(t, []float64{10, 0}, g1.Mean)
	require.Equal(t, 10.0, *g1.MaxRadius)
}

func TestAggregate_YAMLAndConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "groupstat.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: yaml\nepsilon: 0.5\ndataset:\n  header: true\n"), 0o600))
	inPath := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(inPath, []byte(scenarioCSV), 0o600))

	out, _, err := run(t, "", "aggregate", "--config", cfgPath, "-i", inPath, "--ops", "std")
	require.NoError(t, err)

	var rep aggregateReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Equal(t, 0.5, rep.Epsilon)
	require.Equal(t, []float64{0.5, 0.5}, rep.Groups[1].Std)
	require.Nil(t, rep.Groups[0].Mean)
}

func TestAggregate_Errors(t *testing.T) {
	_, _, err := run(t, scenarioCSV, "aggregate", "--header", "--ops", "median")
	require.ErrorIs(t, err, errUnknownOp)

	_, _, err = run(t, "label,x\n0,-1\n", "aggregate", "--header", "--ops", "max")
	require.ErrorIs(t, err, partition.ErrPreconditionViolation)

	_, _, err = run(t, "label,x\n0,-1\n", "aggregate", "--header", "--ops", "max", "--no-check")
	require.NoError(t, err)

	_, _, err = run(t, scenarioCSV, "aggregate", "--header", "--workers", "0")
	require.Error(t, err)
}

func TestNormalize_CSV(t *testing.T) {
	out, stderr, err := run(t, "label,a,b\n0,1,10\n0,3,30\n9,5,5\n", "normalize", "--header", "--epsilon", "0", "--log-level", "debug")
	require.NoError(t, err)
	require.Equal(t, "label,a,b\n0,-1,-1\n0,1,1\n9,NaN,NaN\n", out)
	require.Contains(t, stderr, "configuration resolved")
}

func TestNormalize_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "z.csv")
	out, _, err := run(t, "0,1\n0,3\n", "normalize", "-o", path)
	require.NoError(t, err)
	require.Empty(t, out)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "0,-0.99999"))
}

func TestBench(t *testing.T) {
	out, _, err := run(t, "", "bench", "--rows", "500", "--cols", "3", "--groups", "7", "--repeat", "2", "--workers", "2")
	require.NoError(t, err)

	var rep benchReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Equal(t, 500, rep.Rows)
	require.Len(t, rep.Results, 5)
	require.Equal(t, 500, rep.NNZ)
	require.GreaterOrEqual(t, rep.LargestGroup, 500/7)
	require.LessOrEqual(t, rep.LargestGroup, 500)
	require.Less(t, rep.MeanDrift, 1e-12)
	for _, r := range rep.Results {
		require.Equal(t, 2, r.Workers)
		require.GreaterOrEqual(t, r.MeanMs, 0.0)
	}

	_, _, err = run(t, "", "bench", "--groups", "0")
	require.ErrorIs(t, err, errBenchArgs)
}

func TestMeanDrift(t *testing.T) {
	data, err := matrix.FromRows([][]float64{{0, 0}, {2, 0}, {10, -1}})
	require.NoError(t, err)
	ind := partition.NewIndicator([]int{7, 7, -4})

	means, err := partition.MeanWithIndicator(data, ind)
	require.NoError(t, err)
	drift, err := meanDrift(data, ind, means)
	require.NoError(t, err)
	require.Equal(t, 0.0, drift)

	// A corrupted mean shows up as drift.
	means.RawData()[0] += 0.25
	drift, err = meanDrift(data, ind, means)
	require.NoError(t, err)
	require.InDelta(t, 0.25, drift, 1e-15)

	empty, err := matrix.NewZeros(0, 2)
	require.NoError(t, err)
	drift, err = meanDrift(empty, partition.NewIndicator(nil), empty)
	require.NoError(t, err)
	require.Equal(t, 0.0, drift)
}

func TestSetup_LogsEffectiveOptions(t *testing.T) {
	_, errOut, err := run(t, "", "bench", "--rows", "10", "--groups", "2", "--repeat", "1",
		"--log-level", "debug", "--workers", "3", "--no-check")
	require.NoError(t, err)
	plain := ansi.ReplaceAllString(errOut, "")
	require.Contains(t, plain, "configuration resolved")
	require.Contains(t, plain, "workers=3")
	require.Contains(t, plain, "check_non_negative=false")
}
