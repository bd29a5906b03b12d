package main

import (
	"os"

	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/nodemap/gridfile"
	"github.com/npillmayer/nodemap/html"
	"github.com/spf13/cobra"
)

var fromHTML bool

var loadCmd = &cobra.Command{
	Use:   "load file",
	Short: "Load a grid from a text or HTML file and print it",
	Long:  `Loads a grid from a text file (one row per line, fields separated by white space) or, with --html, from the table rows of an HTML file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGrid(args[0])
		if err != nil {
			return err
		}
		if err := g.Check(); err != nil {
			return err
		}
		return showGrid(cmd.OutOrStdout(), g)
	},
}

func init() {
	loadCmd.Flags().BoolVar(&fromHTML, "html", false, "read table rows of an HTML file")
	rootCmd.AddCommand(loadCmd)
}

func loadGrid(path string) (*nodemap.Grid[string], error) {
	if !fromHTML {
		return gridfile.Load(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return html.GridFromHTML(f)
}
