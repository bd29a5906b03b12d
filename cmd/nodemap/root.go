package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/nodemap/internal/config"
	"github.com/npillmayer/nodemap/render"
	"github.com/spf13/cobra"
)

var (
	configPath string
	traceLevel string
	noColor    bool
	conf       = config.Default()
)

var rootCmd = &cobra.Command{
	Use:           "nodemap",
	Short:         "nodemap exercises jagged linked grids, circles and n-ary trees",
	Long:          `nodemap runs demonstration scenarios and operation scripts against the containers of module nodemap, and loads grids from text and HTML files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if traceLevel != "" {
			c.Tracing.Level = traceLevel
		}
		if noColor {
			c.Render.Color = false
		}
		if err := c.SetupTracing(); err != nil {
			return err
		}
		conf = c
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default nodemap.yaml, if present)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "", "trace level: Error, Info or Debug")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// showGrid renders a grid according to the configuration.
func showGrid(w io.Writer, g *nodemap.Grid[string]) error {
	rc := conf.RenderConfig()
	if conf.Render.Pretty {
		s, err := render.Pretty(g, rc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	}
	return render.Grid(g, w, rc)
}

// heading prints a section title, bold if colors are enabled.
func heading(w io.Writer, title string) {
	if !conf.Render.Color {
		fmt.Fprintf(w, "== %s ==\n", title)
		return
	}
	p := termenv.ColorProfile()
	fmt.Fprintln(w, termenv.String("== "+title+" ==").Bold().Foreground(p.Color("#818cf8")))
}
