// Command tapedeck plays mixtapes built from the JioSaavn catalog.
package main

import "github.com/tessro/tapedeck/internal/cli"

func main() {
	cli.Execute()
}
