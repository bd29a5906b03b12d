package main

import (
	"fmt"

	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/nodemap/script"
	"github.com/spf13/cobra"
)

var continueOnError bool

var runCmd = &cobra.Command{
	Use:   "run script.yaml",
	Short: "Execute an operation script against a grid of strings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := runScript(args[0], cmd)
		if g != nil {
			if serr := showGrid(cmd.OutOrStdout(), g); serr != nil && err == nil {
				err = serr
			}
		}
		return err
	},
}

func init() {
	runCmd.Flags().BoolVar(&continueOnError, "continue", false, "continue after failing steps")
	rootCmd.AddCommand(runCmd)
}

// runScript loads and runs a script, reporting every failed step.
func runScript(path string, cmd *cobra.Command) (*nodemap.Grid[string], error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	s.ContinueOnError = s.ContinueOnError || continueOnError
	g := nodemap.New[string]()
	results, err := s.Run(g, cmd.OutOrStdout())
	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(cmd.ErrOrStderr(), "step %d %s: %v\n", r.Step, r.Op, r.Err)
		}
	}
	return g, err
}
