// Package main is the entry point for the opentext command.
package main

import (
	"os"

	"github.com/dshills/opentext/cmd/opentext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
