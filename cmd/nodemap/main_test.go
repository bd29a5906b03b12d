package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/nodemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	configPath, traceLevel, noColor = "", "", false
	continueOnError, fromHTML = false, false
	exportFormat, exportOut = "dot", ""
	var out, errout bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errout)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.Execute()
	return out.String(), errout.String(), err
}

func TestDemo(t *testing.T) {
	out, _, err := execute(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "== NodeMap [nodemap harness] ==")
	assert.Contains(t, out, "row 0:\n  0 → 2 ↓ 2\n")
	assert.Contains(t, out, "root after shift: 3\n")
	assert.Contains(t, out, "root after shift to savepoint: 1\n")
	assert.Contains(t, out, "savepoint original: 1\n")
	assert.Contains(t, out, "0\n--> 1\n--> -1\n--> --> none\n--> --> -2\n")
}

func TestDemoRejectsUnknownContainer(t *testing.T) {
	_, _, err := execute(t, "demo", "queue")
	assert.Error(t, err)
}

func TestRunReportsFailedSteps(t *testing.T) {
	_, errout, err := execute(t, "run", "testdata/broken.yaml")
	assert.ErrorIs(t, err, nodemap.ErrInvariantViolation)
	assert.Contains(t, errout, "step 1 remove(0)")
	//
	out, _, err := execute(t, "run", "--continue", "testdata/broken.yaml")
	require.Error(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestLoadTextAndHTML(t *testing.T) {
	out, _, err := execute(t, "load", "testdata/grid.txt")
	require.NoError(t, err)
	assert.Equal(t, "a b c\nd · ·\n", out)
	out, _, err = execute(t, "load", "--html", "testdata/table.html")
	require.NoError(t, err)
	assert.Equal(t, "x y\nz ·\n", out)
}

func TestExportFormats(t *testing.T) {
	script := "../../script/testdata/harness.yaml"
	tests := []struct {
		format, contains string
	}{
		{"dot", "strict digraph {"},
		{"html", "<table><tbody><tr><td>0</td><td>2</td></tr><tr><td>2</td></tr></tbody></table>"},
		{"markdown", "| 0 | 2 |\n| 2 |  |\n"},
		{"deep", "row 1:\n  2 → none ↓ none\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _, err := execute(t, "export", "--format", tt.format, script)
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
	_, _, err := execute(t, "export", "--format", "pdf", script)
	assert.ErrorContains(t, err, "unknown export format")
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.html")
	_, _, err := execute(t, "export", "--format", "html", "-o", path, "../../script/testdata/harness.yaml")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<table>"))
}
