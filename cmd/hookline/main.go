// Package main provides the entry point for hookline
package main

import (
	"fmt"
	"os"

	"github.com/hookline/hookline/cmd/hookline/cmd"
)

func main() {
	os.Exit(run())
}

// run executes the main application logic and returns the exit code.
// Separated from main() to enable testing.
func run() int {
	if err := cmd.Execute(Version, Commit, BuildDate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
