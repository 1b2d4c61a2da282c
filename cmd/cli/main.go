// Package main is the entry point for the plan-pricing CLI.
package main

import (
	"os"

	"plan-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
