// Package main implements the cargo-hfuzz CLI.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hfuzz/internal/proc"
	"hfuzz/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cargo-hfuzz",
	Short: "Build and fuzz Rust targets with Honggfuzz",
	Long:  "cargo-hfuzz builds a fuzz target under an instrumentation profile and hands it to the Honggfuzz engine, or replays a crash under a debugger.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		colorMode, _ := cmd.Root().PersistentFlags().GetString("color")
		configureColor(colorMode)
		verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")
		configureLogging(verbosity)
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(buildNoInstrCmd)
	rootCmd.AddCommand(buildDebugCmd)
	rootCmd.AddCommand(buildGrcovCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runNoInstrCmd)
	rootCmd.AddCommand(runDebugCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")

	if err := rootCmd.Execute(); err != nil {
		// child exit codes pass through unchanged
		var exitErr *proc.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func configureColor(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

// configureLogging maps -v occurrences to slog levels. The default shows
// errors only; child process output is inherited verbatim regardless.
func configureLogging(verbosity int) {
	level := slog.LevelError
	switch {
	case verbosity == 1:
		level = slog.LevelWarn
	case verbosity == 2:
		level = slog.LevelInfo
	case verbosity >= 3:
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
