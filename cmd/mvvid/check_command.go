package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mvvid/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether a move could run from the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolve working directory: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			lines, passed := preflightLines(preflight.RunAll(cmd.Context(), cfg, wd, preflight.CurrentIdentity()), colorize)
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if !passed {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
