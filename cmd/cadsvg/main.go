// Command cadsvg converts the entity list extracted from a CAD drawing
// to SVG, PNG or PDF, and reports on its content.
package main

import "github.com/benoitkugler/cadsvg/cmd/cadsvg/cmd"

func main() {
	cmd.Execute()
}
