// Command nodemap exercises the containers of module nodemap from the command
// line: it runs the demonstration scenarios, executes operation scripts and
// loads grids from text and HTML files.
package main

func main() {
	Execute()
}
