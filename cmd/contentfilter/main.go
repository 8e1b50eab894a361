// Package main is the entry point for the contentfilter CLI.
package main

import (
	"os"

	"github.com/jmylchreest/contentfilter/cmd/contentfilter/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
