// Package main is the entry point for the oasis CLI.
package main

import (
	"os"

	"github.com/f3rmion/oasis/cmd/oasis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
