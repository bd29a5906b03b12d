package main

import (
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/npillmayer/nodemap"
	"github.com/npillmayer/nodemap/circle"
	"github.com/npillmayer/nodemap/ntree"
	"github.com/npillmayer/nodemap/render"
	"github.com/npillmayer/nodemap/script"
	"github.com/spf13/cobra"
)

//go:embed scenarios/*.yaml
var scenarios embed.FS

var demoCmd = &cobra.Command{
	Use:       "demo [grid|circle|ntree|all]",
	Short:     "Run the demonstration scenarios",
	Long:      `Runs a fixed sequence of operations on each container and prints the resulting structures.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"grid", "circle", "ntree", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		which := "all"
		if len(args) > 0 {
			which = args[0]
		}
		return runDemo(cmd.OutOrStdout(), which)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(w io.Writer, which string) error {
	demos := []struct {
		name string
		run  func(io.Writer) error
	}{
		{"grid", demoGrid},
		{"circle", demoCircle},
		{"ntree", demoTree},
	}
	for _, d := range demos {
		if which != "all" && which != d.name {
			continue
		}
		if err := d.run(w); err != nil {
			return fmt.Errorf("demo %s: %w", d.name, err)
		}
	}
	return nil
}

// demoGrid: push, push, pop, push, add, add, remove, insert, delete, print
func demoGrid(w io.Writer) error {
	data, err := scenarios.ReadFile("scenarios/grid.yaml")
	if err != nil {
		return err
	}
	s, err := script.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	heading(w, "NodeMap ["+s.Name+"]")
	g := nodemap.New[string]()
	if _, err := s.Run(g, w); err != nil {
		return err
	}
	return showGrid(w, g)
}

// demoCircle: add, save, add * 3, shift clockwise by 2, shift to savepoint
func demoCircle(w io.Writer) error {
	heading(w, "Circle [add, savepoint, add * 3, shift by 2, shift to savepoint]")
	c := circle.New[int](true)
	c.Add(1)
	if err := c.Save("original"); err != nil {
		return err
	}
	for i := 2; i <= 4; i++ {
		c.Add(i)
	}
	v, err := c.Shift(2)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "root after shift: %d\n", v)
	if v, err = c.ShiftTo("original"); err != nil {
		return err
	}
	fmt.Fprintf(w, "root after shift to savepoint: %d\n", v)
	for _, name := range c.Savepoints() {
		sv, _ := c.SavepointValue(name)
		fmt.Fprintf(w, "savepoint %s: %d\n", name, sv)
	}
	fmt.Fprintln(w, c)
	return render.Circle(c, w, conf.RenderConfig())
}

// demoTree: binary tree, add * 4, print, invert, print
func demoTree(w io.Writer) error {
	heading(w, "NTree [binary tree, add * 4, invert]")
	tree := ntree.NewBinary[int]()
	for _, v := range []int{0, 1, -1, -2} {
		if err := tree.Add(v); err != nil {
			return err
		}
	}
	fmt.Fprint(w, tree)
	tree.Invert()
	fmt.Fprintln(w, "inverted:")
	fmt.Fprint(w, tree)
	return nil
}
