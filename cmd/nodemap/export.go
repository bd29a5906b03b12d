package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/nodemap/html"
	"github.com/npillmayer/nodemap/render"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export script.yaml",
	Short: "Run an operation script and export the resulting grid",
	Long:  `Runs an operation script and writes the resulting grid as Graphviz DOT, HTML table, markdown table or node listing (deep).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := runScript(args[0], cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return export(w, g, exportFormat)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "dot", "output format: dot, html, markdown or deep")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func export(w io.Writer, g *nodemap.Grid[string], format string) error {
	switch format {
	case "dot":
		return nodemap.Grid2Dot(g, w)
	case "html":
		if err := html.GridToHTML(g, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case "markdown", "md":
		_, err := io.WriteString(w, render.Markdown(g))
		return err
	case "deep":
		_, err := io.WriteString(w, g.DeepPrint())
		return err
	}
	return fmt.Errorf("unknown export format %q", format)
}
