// Package main is the entrypoint for the datacanvas command.
package main

import (
	"os"

	"github.com/sumanthd032/DataCanvas/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
