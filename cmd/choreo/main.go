// Copyright (C) 2024-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "choreo",
	Short: "Choreographic protocol compiler: validate and project global protocols",
	Long: `choreo compiles a global choreographic protocol specification into
per-role local session types.

Key features:
- Structural validation of a global protocol (undefined/unused roles,
  unbound recursion variables, mixed-head choices)
- Endpoint projection of a validated protocol onto one named role`,
}

func main() {
	rootCmd.AddCommand(
		projectCmd(),
		validateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
