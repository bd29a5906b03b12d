package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/nodemap"
	"gopkg.in/yaml.v3"
)

// Operation names
const (
	OpPush      = "push"
	OpPop       = "pop"
	OpAdd       = "add"
	OpRemove    = "remove"
	OpInsert    = "insert"
	OpDelete    = "delete"
	OpGet       = "get"
	OpCheck     = "check"
	OpPrint     = "print"
	OpDeepPrint = "deepprint"
)

var knownOps = map[string]bool{
	OpPush: true, OpPop: true, OpAdd: true, OpRemove: true, OpInsert: true,
	OpDelete: true, OpGet: true, OpCheck: true, OpPrint: true, OpDeepPrint: true,
}

// errorNames maps names usable in expect_error to grid errors.
var errorNames = map[string]error{
	"empty_container":        nodemap.ErrEmptyContainer,
	"out_of_bounds":          nodemap.ErrOutOfBounds,
	"invariant_violation":    nodemap.ErrInvariantViolation,
	"internal_inconsistency": nodemap.ErrInternalInconsistency,
}

// ErrUnknownOp is flagged by Parse for operations it does not know.
var ErrUnknownOp = errors.New("script: unknown operation")

// ErrExpectation is flagged by Run for steps whose outcome differs from the
// expected one.
var ErrExpectation = errors.New("script: unexpected outcome")

// Step is a single operation of a script.
type Step struct {
	Op          string `yaml:"op"`
	Row         int    `yaml:"row,omitempty"`
	Col         int    `yaml:"col,omitempty"`
	Value       string `yaml:"value,omitempty"`
	Expect      string `yaml:"expect,omitempty"`
	ExpectError string `yaml:"expect_error,omitempty"`
}

func (s Step) String() string {
	switch s.Op {
	case OpPush:
		return fmt.Sprintf("push %q", s.Value)
	case OpAdd:
		return fmt.Sprintf("add(%d) %q", s.Row, s.Value)
	case OpRemove:
		return fmt.Sprintf("remove(%d)", s.Row)
	case OpInsert:
		return fmt.Sprintf("insert(%d,%d) %q", s.Row, s.Col, s.Value)
	case OpDelete, OpGet:
		return fmt.Sprintf("%s(%d,%d)", s.Op, s.Row, s.Col)
	}
	return s.Op
}

// Script is a named sequence of steps.
type Script struct {
	Name            string `yaml:"name"`
	ContinueOnError bool   `yaml:"continue_on_error,omitempty"`
	Ops             []Step `yaml:"ops"`
}

// Result records the outcome of a step.
type Result struct {
	Step  int
	Op    Step
	Value string // result value of the operation, if any
	Err   error  // error returned by the operation, if any
}

// Failed reports whether the step did not have the expected outcome.
func (r Result) Failed() bool {
	return r.Err != nil && (r.Op.ExpectError == "" || errors.Is(r.Err, ErrExpectation))
}

// Parse reads a script in YAML format. Unknown fields and operations are
// rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("script: parsing: %w", err)
	}
	for i, step := range s.Ops {
		if !knownOps[step.Op] {
			return nil, fmt.Errorf("%w: step %d: %q", ErrUnknownOp, i, step.Op)
		}
		if step.ExpectError != "" && errorNames[step.ExpectError] == nil {
			return nil, fmt.Errorf("script: step %d: unknown error name %q", i, step.ExpectError)
		}
	}
	return &s, nil
}

// Load reads a script from a YAML file.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Run applies the steps of s to g. Output of print and deepprint steps goes
// to out, which may be nil. Run stops at the first failing step unless
// ContinueOnError is set; in either case the error returned joins all step
// failures.
func (s *Script) Run(g *nodemap.Grid[string], out io.Writer) ([]Result, error) {
	if out == nil {
		out = io.Discard
	}
	results := make([]Result, 0, len(s.Ops))
	var errs []error
	for i, step := range s.Ops {
		value, err := apply(g, step, out)
		err = verify(step, value, err)
		results = append(results, Result{Step: i, Op: step, Value: value, Err: err})
		if err == nil || !results[i].Failed() {
			continue
		}
		tracer().Infof("script %s: step %d %s failed: %v", s.Name, i, step, err)
		errs = append(errs, fmt.Errorf("step %d %s: %w", i, step, err))
		if !s.ContinueOnError {
			break
		}
	}
	return results, errors.Join(errs...)
}

// verify compares the outcome of a step with its expectations.
func verify(step Step, value string, err error) error {
	if step.ExpectError != "" {
		want := errorNames[step.ExpectError]
		if err == nil {
			return fmt.Errorf("%w: expected %s, operation succeeded", ErrExpectation, step.ExpectError)
		}
		if !errors.Is(err, want) {
			return fmt.Errorf("%w: expected %s, have %v", ErrExpectation, step.ExpectError, err)
		}
		return err
	}
	if err == nil && step.Expect != "" && value != step.Expect {
		return fmt.Errorf("%w: expected %q, have %q", ErrExpectation, step.Expect, value)
	}
	return err
}

func apply(g *nodemap.Grid[string], step Step, out io.Writer) (string, error) {
	switch step.Op {
	case OpPush:
		return g.Push(step.Value).Value(), nil
	case OpPop:
		values, err := g.Pop()
		return strings.Join(values, " "), err
	case OpAdd:
		return nodeValue(g.Add(step.Row, step.Value))
	case OpRemove:
		return g.Remove(step.Row)
	case OpInsert:
		return nodeValue(g.Insert(step.Row, step.Col, step.Value))
	case OpDelete:
		return g.Delete(step.Row, step.Col)
	case OpGet:
		return nodeValue(g.Get(step.Row, step.Col))
	case OpCheck:
		return "", g.Check()
	case OpPrint:
		s := g.String()
		_, err := io.WriteString(out, s)
		return strings.TrimSuffix(s, "\n"), err
	case OpDeepPrint:
		s := g.DeepPrint()
		_, err := io.WriteString(out, s)
		return strings.TrimSuffix(s, "\n"), err
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
}

func nodeValue(n nodemap.Node[string], err error) (string, error) {
	if err != nil {
		return "", err
	}
	return n.Value(), nil
}
