/*
Package html imports and exports grids as HTML tables.

Every table row (<tr>) corresponds to a row of a grid, every cell (<td> or
<th>) of it to a node. Rows of a table may differ in length, which is just
what a jagged grid needs.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer writes to trace with key 'nodemap'
func tracer() tracing.Trace {
	return tracing.Select("nodemap")
}

// ErrNoTable is flagged by GridFromHTML if the input has no table row with at
// least one cell.
var ErrNoTable = errors.New("html: no table rows found")

// InnerText returns the textual content of an HTML element and all its
// descendents, with surrounding white space trimmed. It resembles the text
// produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents).
func InnerText(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// GridFromHTML creates a grid of strings from the table rows of an HTML
// fragment. Rows without cells are skipped. Tables nested within cells
// contribute to the cell's text only.
func GridFromHTML(input io.Reader) (*nodemap.Grid[string], error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	g := nodemap.New[string]()
	for _, n := range nodes {
		if err := collectRows(n, g); err != nil {
			return nil, err
		}
	}
	if g.IsEmpty() {
		return nil, ErrNoTable
	}
	tracer().Debugf("html: imported grid of %d rows", g.Height())
	return g, nil
}

func collectRows(n *html.Node, g *nodemap.Grid[string]) error {
	if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
		row := -1
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
				continue
			}
			text := InnerText(c)
			if row < 0 {
				g.Push(text)
				row = g.Height() - 1
				continue
			}
			if _, err := g.Add(row, text); err != nil {
				return fmt.Errorf("html: adding cell to row %d: %w", row, err)
			}
		}
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectRows(c, g); err != nil {
			return err
		}
	}
	return nil
}

// GridToHTML writes a grid as an HTML table to w. Cell values are formatted
// with fmt and escaped.
func GridToHTML[T comparable](g *nodemap.Grid[T], w io.Writer) error {
	table := element(atom.Table)
	tbody := element(atom.Tbody)
	table.AppendChild(tbody)
	for _, row := range g.Rows() {
		tr := element(atom.Tr)
		for v := range row {
			td := element(atom.Td)
			td.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprintf("%v", v)})
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	return html.Render(w, table)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
