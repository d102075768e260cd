// Package main is the packwright CLI entry point.
package main

import (
	"os"

	"github.com/packwright-labs/packwright/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
