// Copyright (C) 2024-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/choreo/global"
)

// validateCmd implements `choreo validate <protocol-file>`: exit 0 if
// the protocol is structurally well-formed, 1 otherwise.
func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <protocol-file>",
		Short: "Validate a global protocol file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProtocol(args[0])
			if err != nil {
				return err
			}

			if err := global.Validate(p); err != nil {
				fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
				os.Exit(1)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
