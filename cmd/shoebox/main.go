// Command shoebox inspects Photos library stores read-only.
package main

import "github.com/mesh-intelligence/shoebox/internal/cli"

func main() {
	cli.Execute()
}
