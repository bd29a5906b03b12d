package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/npillmayer/nodemap"
)

// Markdown formats a grid as a markdown table. Markdown tables need a header
// row, so column numbers are used as headers. Positions without a cell are
// left empty. Pipes within values are escaped.
func Markdown[T comparable](g *nodemap.Grid[T]) string {
	rows := Cells(g)
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return ""
	}
	var sb strings.Builder
	line := func(cells []string) {
		sb.WriteByte('|')
		for c := 0; c < cols; c++ {
			text := ""
			if c < len(cells) {
				text = strings.ReplaceAll(cells[c], "|", `\|`)
			}
			fmt.Fprintf(&sb, " %s |", text)
		}
		sb.WriteByte('\n')
	}
	header := make([]string, cols)
	rule := make([]string, cols)
	for c := range header {
		header[c] = fmt.Sprintf("%d", c)
		rule[c] = "---"
	}
	line(header)
	line(rule)
	for _, row := range rows {
		line(row)
	}
	return sb.String()
}

// Pretty renders a grid as a styled markdown table for the terminal. If
// config.Color is false, no escape sequences are generated.
func Pretty[T comparable](g *nodemap.Grid[T], config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(config.LineWidth)}
	if config.Color {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(Markdown(g))
}
