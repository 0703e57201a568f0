package main

import (
	"github.com/spf13/cobra"

	"hfuzz/internal/profile"
)

// The four build commands share one implementation; each pins a build
// variant. Remaining arguments pass through to cargo build.

var buildCmd = newBuildCommand(
	"build",
	"Build fuzz targets with coverage instrumentation",
	profile.Instrumented,
)

var buildNoInstrCmd = newBuildCommand(
	"build-no-instr",
	"Build fuzz targets without compiler instrumentation",
	profile.NotInstrumented,
)

var buildDebugCmd = newBuildCommand(
	"build-debug",
	"Build fuzz targets for crash replay under a debugger",
	profile.Debug,
)

var buildGrcovCmd = newBuildCommand(
	"build-grcov",
	"Build fuzz targets instrumented for grcov coverage reports",
	profile.Coverage,
)

func newBuildCommand(use, short string, variant profile.BuildType) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [cargo build args]",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		// everything after the command name belongs to cargo build
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := newPipeline()
			if err != nil {
				return err
			}
			_, err = pipeline.Build(variant, args...)
			return err
		},
	}
}
