/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tempInput = `BEGIN DATA
year day hr temp
2020 1 0 1.5
2020 1 1 -999
`

const windInput = `BEGIN DATA
year day hr wind
2020 1 1 3
2020 1 0 -999
`

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--log-level", "error", "--log-format", "console"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		cfgFile = ""
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func csvHeader(out string) string {
	return strings.SplitN(out, "\n", 2)[0]
}

func TestFracdateCommand(t *testing.T) {
	out, err := execute(t, "fracdate", "--layout", "2006-01-02 15:04", "2020", "2021.5")
	require.NoError(t, err)
	assert.Equal(t, "2020\t2020-01-01 00:00\n2021.5\t2021-07-02 12:00\n", out)

	_, err = execute(t, "fracdate", "soon")
	assert.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "temp.txt", tempInput)

	out, err := execute(t, "parse", "--datetime", in)
	require.NoError(t, err)
	assert.Equal(t, "datetime,year,day,hr,temp", csvHeader(out))
	assert.Contains(t, out, "2020-01-01T01:00:00Z")

	_, err = execute(t, "parse", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", tempInput)
	b := writeFile(t, dir, "b.txt", windInput)
	outFile := filepath.Join(dir, "merged.csv")

	_, err := execute(t, "merge", "--key", "datetime", "-o", outFile, a, b)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "datetime,day,hr,temp,wind,year", csvHeader(string(data)))
}

func TestCountFlagsCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.txt", tempInput)

	out, err := execute(t, "count-flags", "--add-datetime=false", "--key", "hr", "--flag=-999", "-o", "-", in)
	require.NoError(t, err)
	assert.Equal(t, "hr,Flag_Count,Flag_Proportion,day,temp,year", csvHeader(out))
}

func TestHistogramCommand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", tempInput)
	b := writeFile(t, dir, "b.txt", windInput)
	png := filepath.Join(dir, "flags.png")

	out, err := execute(t, "histogram", "--flag=-999", "--bins", "4", "--ascii", "-o", png, a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "Flag_Count: 2 values in 4 bins")
	assert.Contains(t, out, "Histogram written to: "+png)
	assert.FileExists(t, png)
}

func TestDescribeCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.txt", tempInput)

	out, err := execute(t, "describe", "--add-datetime=false", "--key", "hr", in)
	require.NoError(t, err)
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, "temp")
}

func TestProcessCommandFromConfig(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", tempInput)
	b := writeFile(t, dir, "b.txt", windInput)
	csvOut := filepath.Join(dir, "out.csv")
	pngOut := filepath.Join(dir, "out.png")
	cfg := writeFile(t, dir, "tsframe.yaml", fmt.Sprintf(`
pipeline:
  inputs: [%q, %q]
  key: datetime
  flag_value: -999
  bins: 5
  output: %q
  histogram: %q
`, a, b, csvOut, pngOut))

	_, err := execute(t, "--config", cfg, "process")
	require.NoError(t, err)

	data, err := os.ReadFile(csvOut)
	require.NoError(t, err)
	assert.Equal(t, "datetime,Flag_Count,Flag_Proportion,day,hr,temp,wind,year", csvHeader(string(data)))
	assert.FileExists(t, pngOut)
}

func TestProcessCommandWithoutInputs(t *testing.T) {
	_, err := execute(t, "process")
	assert.ErrorContains(t, err, "no inputs")
}

func TestLoadSQLCommandValidation(t *testing.T) {
	_, err := execute(t, "load-sql", "--dialect", "oracle", "--tables", "obs")
	assert.ErrorContains(t, err, "unsupported dialect")
}

func TestInvalidLogFormat(t *testing.T) {
	_, err := execute(t, "--log-format", "xml", "fracdate", "2020")
	assert.Error(t, err)
}
