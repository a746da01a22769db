// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvarray/buffer"
	"github.com/katalvlaran/lvarray/parallel"
)

// run executes the command line in args against a store under dir.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		parallel.SetWorkers(0)
		parallel.SetDefaultPolicy(parallel.Serial)
		buffer.SetDefaultKind(buffer.KindHost)
		buffer.SetMoveLogger(nil)
	})
	cfg := filepath.Join(dir, "lvarray.yaml")
	if _, err := os.Stat(cfg); err != nil {
		doc := "store:\n  dir: " + filepath.Join(dir, "db") + "\n  level: fastest\n"
		require.NoError(t, os.WriteFile(cfg, []byte(doc), 0o600))
	}
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

const laplacian = `# 4 x 4 second differences
4 4
0 0 2
0 1 -1
1 0 -1
1 1 2
1 2 -1
2 1 -1
2 2 2
2 3 -1
3 2 -1
3 3 2
`

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "", "layout", "KJI", "2", "3", "4")
	require.NoError(t, err)
	require.Contains(t, out, "unit-stride dimension 0\n")
	require.Contains(t, out, "strides               [1 2 6]\n")
	require.Contains(t, out, "size                  24\n")

	out, err = run(t, dir, "", "layout", "--all", "2")
	require.NoError(t, err)
	require.Equal(t, "IJ\tunit-stride 1\nJI\tunit-stride 0\n", out)

	_, err = run(t, dir, "", "layout", "IJ", "2")
	require.Error(t, err)
	_, err = run(t, dir, "", "layout", "IJ", "2", "x")
	require.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "", "parse", "--perm", "JI", "{ { 0, 1, 2 }, { 10, 11, 12 } }")
	require.NoError(t, err)
	require.Contains(t, out, "dims        [2 3]\n")
	require.Contains(t, out, "storage     [0 10 1 11 2 12]\n")
	require.Contains(t, out, "{ { 0, 1, 2 }, { 10, 11, 12 } }\n")

	out, err = run(t, dir, "{ 1.5, 2 }", "parse", "--type", "float", "--save", "v", "-")
	require.NoError(t, err)
	require.Contains(t, out, "{ 1.5, 2 }\n")

	out, err = run(t, dir, "", "store", "show", "array", "v")
	require.NoError(t, err)
	require.Equal(t, "{ 1.5, 2 }\n", out)

	_, err = run(t, dir, "", "parse", "--type", "complex", "{ 1 }")
	require.Error(t, err)
	_, err = run(t, dir, "", "parse", "1, 2")
	require.Error(t, err)
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lap.txt")
	require.NoError(t, os.WriteFile(file, []byte(laplacian), 0o600))

	out, err := run(t, dir, "", "store", "import", "lap", file)
	require.NoError(t, err)
	require.Equal(t, "stored crs/lap: 4 x 4, 10 non-zeros\n", out)

	out, err = run(t, dir, "0 0\n", "store", "import", "empty", "-")
	require.NoError(t, err)
	require.Equal(t, "stored pattern/empty: 0 x 0, 0 non-zeros\n", out)

	out, err = run(t, dir, "", "store", "list")
	require.NoError(t, err)
	require.Equal(t, "pattern/empty\ncrs/lap\n", out)

	out, err = run(t, dir, "", "store", "show", "crs", "lap")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "{\n0\t{(0, 2), (1, -1), }\n"))

	out, err = run(t, dir, "", "store", "stat", "crs", "lap")
	require.NoError(t, err)
	require.Contains(t, out, "crs of float64")

	_, err = run(t, dir, "", "store", "rm", "crs", "lap")
	require.NoError(t, err)
	_, err = run(t, dir, "", "store", "rm", "crs", "lap")
	require.Error(t, err)
}

func TestSpyCommand(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "lap.svg")
	out, err := run(t, dir, laplacian, "spy", "-", "-o", img, "--describe", "--size", "2")
	require.NoError(t, err)
	require.Contains(t, out, "non-zeros  10")
	require.Contains(t, out, "bandwidth  lower 1, upper 1\n")
	svg, err := os.ReadFile(img)
	require.NoError(t, err)
	require.Contains(t, string(svg), "<svg")

	_, err = run(t, dir, laplacian, "store", "import", "lap", "-")
	require.NoError(t, err)
	out, err = run(t, dir, "", "spy", "--from", "lap", "-o", "", "--describe")
	require.NoError(t, err)
	require.Contains(t, out, "shape      4 x 4\n")

	_, err = run(t, dir, "4 4\n0 9\n", "spy", "-", "-o", "")
	require.Error(t, err)
	_, err = run(t, dir, "", "spy", "--from", "missing", "-o", "")
	require.Error(t, err)
}
