package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hfuzz/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the cargo-hfuzz version",
	RunE: func(cmd *cobra.Command, args []string) error {
		bold := color.New(color.Bold)
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "cargo-hfuzz %s\n", bold.Sprint(version.Version))
		if err != nil {
			return err
		}
		if version.GitCommit != "" {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", version.GitCommit); err != nil {
				return err
			}
		}
		if version.BuildDate != "" {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", version.BuildDate); err != nil {
				return err
			}
		}
		return nil
	},
}
