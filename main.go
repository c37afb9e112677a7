// main is the entry point for the rentlens CLI.
package main

import (
	"os"

	"github.com/rentlens/rentlens/cmd"
	"github.com/rentlens/rentlens/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
