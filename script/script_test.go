package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarnessScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodemap")
	defer teardown()
	//
	s, err := Load("testdata/harness.yaml")
	require.NoError(t, err)
	assert.Equal(t, "nodemap harness", s.Name)
	g := nodemap.New[string]()
	var out strings.Builder
	results, err := s.Run(g, &out)
	require.NoError(t, err)
	require.Len(t, results, len(s.Ops))
	assert.Equal(t, "0 2\n2\nrow 0:\n  0 → 2 ↓ 2\n  2 → none ↓ none\nrow 1:\n  2 → none ↓ none\n", out.String())
	assert.Equal(t, "0 2\n2", results[10].Value)
}

func TestExpectedErrors(t *testing.T) {
	input := `
name: scenario D
ops:
  - op: push
    value: x
  - op: remove
    row: 0
    expect_error: invariant_violation
  - op: pop
    expect: x
  - op: pop
    expect_error: empty_container
`
	s, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	results, err := s.Run(nodemap.New[string](), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, results[1].Err, nodemap.ErrInvariantViolation)
	assert.False(t, results[1].Failed())
}

func TestFailingStepStopsScript(t *testing.T) {
	input := `
name: failing
ops:
  - op: get
    row: 3
  - op: push
    value: never
`
	s, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	g := nodemap.New[string]()
	results, err := s.Run(g, nil)
	assert.ErrorIs(t, err, nodemap.ErrOutOfBounds)
	assert.Len(t, results, 1)
	assert.True(t, g.IsEmpty())
	//
	s.ContinueOnError = true
	results, err = s.Run(g, nil)
	assert.ErrorIs(t, err, nodemap.ErrOutOfBounds)
	assert.Len(t, results, 2)
	assert.Equal(t, 1, g.Size())
}

func TestUnmetExpectation(t *testing.T) {
	input := `
name: expectation
ops:
  - op: push
    value: a
    expect: b
  - op: get
    row: 0
    col: 0
    expect_error: out_of_bounds
`
	s, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	s.ContinueOnError = true
	results, err := s.Run(nodemap.New[string](), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(results[0].Err, ErrExpectation))
	assert.True(t, errors.Is(results[1].Err, ErrExpectation))
	assert.True(t, results[1].Failed())
}

func TestParseRejectsUnknownInput(t *testing.T) {
	_, err := Parse(strings.NewReader("name: x\nops:\n  - op: fly\n"))
	assert.ErrorIs(t, err, ErrUnknownOp)
	_, err = Parse(strings.NewReader("name: x\nops:\n  - op: push\n    colour: red\n"))
	assert.Error(t, err, "unknown fields should be rejected")
	_, err = Parse(strings.NewReader("name: x\nops:\n  - op: pop\n    expect_error: on_fire\n"))
	assert.Error(t, err)
}
