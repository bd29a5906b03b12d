package gridfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guiguan/caster"
	"github.com/npillmayer/nodemap"
)

// Options control how lines are split into fields.
type Options struct {
	Separator string // field separator; empty for runs of white space
	Comment   string // lines starting with Comment are skipped; empty for none
}

// DefaultOptions split at white space and skip lines starting with '#'.
var DefaultOptions = Options{Comment: "#"}

// ErrNotRegular is flagged by Load for directories, devices and the like.
var ErrNotRegular = errors.New("gridfile: not a regular file")

// lineMsg is broadcast for every line holding at least one field.
type lineMsg struct {
	lineno int
	fields []string
}

// eofMsg is broadcast after the last line, carrying a read error, if any.
type eofMsg struct {
	err error
}

// Load reads a file, which must be a text file, and loads it as a grid of
// strings, using DefaultOptions.
func Load(name string) (*nodemap.Grid[string], error) {
	file, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadWithOptions(file, DefaultOptions)
}

// openFile opens an OS file, checking for error conditions.
func openFile(name string) (*os.File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, name)
	}
	return os.Open(name) // just open for read access
}

// Read loads the lines of r as a grid of strings, using DefaultOptions.
func Read(r io.Reader) (*nodemap.Grid[string], error) {
	return ReadWithOptions(r, DefaultOptions)
}

// ReadWithOptions loads the lines of r as a grid of strings. If r holds no
// fields at all, an empty grid is returned.
func ReadWithOptions(r io.Reader, opts Options) (*nodemap.Grid[string], error) {
	cast := caster.New(nil) // we will broadcast messages when lines are split
	defer cast.Close()
	ch, ok := cast.Sub(context.Background(), 16)
	if !ok {
		return nil, errors.New("gridfile: cannot subscribe to line broadcast")
	}
	go readLines(r, opts, cast)
	return assemble(ch)
}

// readLines splits lines into fields and publishes them, terminated by an
// eofMsg.
func readLines(r io.Reader, opts Options, cast *caster.Caster) {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || (opts.Comment != "" && strings.HasPrefix(line, opts.Comment)) {
			continue
		}
		if fields := split(line, opts.Separator); len(fields) > 0 {
			cast.Pub(lineMsg{lineno: lineno, fields: fields})
		}
	}
	cast.Pub(eofMsg{err: scanner.Err()})
}

func split(line, sep string) []string {
	if sep == "" {
		return strings.Fields(line)
	}
	var fields []string
	for _, f := range strings.Split(line, sep) {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// assemble builds a grid from the messages received on ch.
func assemble(ch <-chan interface{}) (*nodemap.Grid[string], error) {
	g := nodemap.New[string]()
	for m := range ch {
		switch msg := m.(type) {
		case lineMsg:
			g.Push(msg.fields[0])
			row := g.Height() - 1
			for _, f := range msg.fields[1:] {
				if _, err := g.Add(row, f); err != nil {
					return nil, fmt.Errorf("gridfile: line %d: %w", msg.lineno, err)
				}
			}
			tracer().Debugf("gridfile: line %d -> row %d with %d nodes", msg.lineno, row, len(msg.fields))
		case eofMsg:
			if msg.err != nil {
				return nil, fmt.Errorf("gridfile: reading input: %w", msg.err)
			}
			return g, nil
		}
	}
	return nil, errors.New("gridfile: line broadcast closed unexpectedly")
}
