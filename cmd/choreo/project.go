// Copyright (C) 2024-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/local"
	"github.com/luxfi/choreo/program"
	"github.com/luxfi/choreo/projection"
	"github.com/luxfi/choreo/role"
)

// projectCmd implements `choreo project <protocol-file> --role
// <role-name>`: exit 0 on success (local type printed to
// stdout), 1 on validation failure, 2 on projection failure.
//
// --emit-program additionally lowers the projected local type to a
// program.Step plan and prints that too, taking the first case at every
// local decision point (program.FirstLabel) since a static CLI
// invocation has no runtime chooser to consult.
func projectCmd() *cobra.Command {
	var roleName string
	var emitProgram bool

	cmd := &cobra.Command{
		Use:   "project <protocol-file>",
		Short: "Project a global protocol onto one role's local type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if roleName == "" {
				return fmt.Errorf("--role is required")
			}

			target, err := role.Parse(roleName)
			if err != nil {
				return fmt.Errorf("--role: %w", err)
			}

			p, err := loadProtocol(args[0])
			if err != nil {
				return err
			}

			if err := global.Validate(p); err != nil {
				fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
				os.Exit(1)
			}

			if !p.Roles.Contains(target) {
				fmt.Fprintf(os.Stderr, "validation failed: role %q is not declared in this protocol\n", target)
				os.Exit(1)
			}

			localType, err := projection.Project(p, target)
			if err != nil {
				fmt.Fprintf(os.Stderr, "projection failed: %v\n", err)
				os.Exit(2)
			}

			fmt.Fprint(cmd.OutOrStdout(), local.Render(localType))

			if emitProgram {
				step, err := program.Lower(localType, program.FirstLabel)
				if err != nil {
					fmt.Fprintf(os.Stderr, "lowering failed: %v\n", err)
					os.Exit(2)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "--- program ---")
				fmt.Fprint(cmd.OutOrStdout(), program.Render(step))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roleName, "role", "", "the role to project the protocol onto")
	cmd.Flags().BoolVar(&emitProgram, "emit-program", false, "also lower the projection to a program.Step plan and print it")
	return cmd
}
