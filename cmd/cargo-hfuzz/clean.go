package main

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [cargo clean args]",
	Short: "Clean the isolated fuzzing build directory",
	Long:  "Delegates to cargo clean with the target directory forced to the isolated fuzzing output, so regular build artifacts are never touched.",
	Args: cobra.ArbitraryArgs,
	// everything after the command name belongs to cargo clean
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, err := newPipeline()
		if err != nil {
			return err
		}
		return pipeline.Clean(args...)
	},
}
