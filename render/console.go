package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/nodemap/circle"
	"github.com/npillmayer/nodemap/ntree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Role classifies a printed cell for coloring.
type Role int

// Cell roles
const (
	RowStart Role = iota // first cell of a row
	Interior             // cell in between
	RowEnd               // last cell of a row with at least two cells
	Gap                  // position without a cell, where other rows have one
	Root                 // current root of a circle
)

// GapMarker is printed at positions where a row has no cell.
const GapMarker = "·"

// Ellipsis is appended to lines truncated at Config.LineWidth.
const Ellipsis = "…"

// Config controls console output.
type Config struct {
	LineWidth int            // maximum line width in 'en's, 0 for unlimited
	Color     bool           // color cells by role
	Context   *uax11.Context // context for width measurement, nil for Latin
}

// ConsoleGrid is a formatter for grids on a console with a fixed width font.
type ConsoleGrid struct {
	colors map[Role]*color.Color
}

// NewConsoleGrid creates a new formatter. colors maps cell roles to colors used
// for display; it may contain just a subset of roles. If colors is nil, a
// default palette is used.
func NewConsoleGrid(colors map[Role]*color.Color) *ConsoleGrid {
	cg := &ConsoleGrid{colors: colors}
	if colors == nil {
		cg.colors = makeDefaultPalette()
	}
	return cg
}

func makeDefaultPalette() map[Role]*color.Color {
	return map[Role]*color.Color{
		RowStart: color.New(color.FgBlue, color.Bold),
		Interior: color.New(color.FgBlue),
		RowEnd:   color.New(color.FgCyan),
		Gap:      color.New(color.FgHiBlack),
		Root:     color.New(color.FgRed, color.Bold),
	}
}

var setupGraphemes sync.Once

// Width returns the display width of s in fixed-width positions.
func Width(s string, ctx *uax11.Context) int {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	return uax11.StringWidth(grapheme.StringFromString(s), ctx)
}

// Table prints rows of cell texts as a column-aligned table to w.
func (cg *ConsoleGrid) Table(rows [][]string, w io.Writer, config *Config) error {
	if config == nil {
		config = &Config{}
	}
	var widths []int // per column
	for _, row := range rows {
		for c, s := range row {
			if c == len(widths) {
				widths = append(widths, 0)
			}
			widths[c] = max(widths[c], Width(s, config.Context))
		}
	}
	var sb strings.Builder
	for _, row := range rows {
		used := 0
		for c := range widths {
			text, role := GapMarker, Gap
			if c < len(row) {
				text, role = row[c], roleOf(c, len(row))
			}
			cell := pad(text, widths[c]-Width(text, config.Context))
			sep := 0
			if c > 0 {
				sep = 1
			}
			if config.LineWidth > 0 && used+sep+widths[c] > config.LineWidth {
				tracer().Debugf("render: truncating row at column %d", c)
				sb.WriteString(Ellipsis)
				break
			}
			if sep > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cg.colorize(cell, role, config))
			used += sep + widths[c]
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func roleOf(col, rowlen int) Role {
	switch {
	case col == 0:
		return RowStart
	case col == rowlen-1:
		return RowEnd
	}
	return Interior
}

func pad(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

func (cg *ConsoleGrid) colorize(s string, role Role, config *Config) string {
	if !config.Color {
		return s
	}
	if c, ok := cg.colors[role]; ok {
		return c.Sprint(s)
	}
	return s
}

// Grid prints a grid as a table, one line per row.
func Grid[T comparable](g *nodemap.Grid[T], w io.Writer, config *Config) error {
	return NewConsoleGrid(nil).Table(Cells(g), w, config)
}

// Cells formats the values of a grid as strings.
func Cells[T comparable](g *nodemap.Grid[T]) [][]string {
	var rows [][]string
	for _, row := range g.Rows() {
		var cells []string
		for v := range row {
			cells = append(cells, fmt.Sprintf("%v", v))
		}
		rows = append(rows, cells)
	}
	return rows
}

// Circle prints a circle on a single line, clockwise from the root, which is
// highlighted by brackets.
func Circle[T comparable](c *circle.Circle[T], w io.Writer, config *Config) error {
	if config == nil {
		config = &Config{}
	}
	cg := NewConsoleGrid(nil)
	var sb strings.Builder
	for i, v := range c.Values() {
		if i == 0 {
			sb.WriteString(cg.colorize(fmt.Sprintf("[%v]", v), Root, config))
			continue
		}
		fmt.Fprintf(&sb, " → %s", cg.colorize(fmt.Sprintf("%v", v), Interior, config))
	}
	if c.Size() > 0 {
		sb.WriteString(" ↺")
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// Tree prints a tree in pre-order, one node per line, indented by depth.
func Tree[T comparable](t *ntree.Tree[T], w io.Writer, config *Config) error {
	if config == nil {
		config = &Config{}
	}
	cg := NewConsoleGrid(nil)
	var sb strings.Builder
	t.Walk(func(v T, depth int) bool {
		role := Interior
		if depth == 0 {
			role = Root
		}
		fmt.Fprintf(&sb, "%s%s\n", strings.Repeat("  ", depth), cg.colorize(fmt.Sprintf("%v", v), role, config))
		return true
	})
	_, err := io.WriteString(w, sb.String())
	return err
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a Config. It checks
// whether stdout is a terminal, and if so it reads the terminal's width and
// enables colors. Otherwise lines are not truncated and colors are off.
func ConfigFromTerminal() *Config {
	config := &Config{
		Context: uax11.ContextFromEnvironment(),
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		config.Color = true
		if w, _, err := term.GetSize(fd); err == nil && w > 10 {
			config.LineWidth = w
		} else {
			config.LineWidth = 80
		}
	}
	tracer().Infof("render: setting line length to %d en", config.LineWidth)
	return config
}
