package main

import (
	"github.com/spf13/cobra"

	"hfuzz/internal/launcher"
)

var runCmd = newRunCommand(
	"run",
	"Build with instrumentation and start fuzzing",
	true,
)

var runNoInstrCmd = newRunCommand(
	"run-no-instr",
	"Build without instrumentation and start fuzzing",
	false,
)

var runDebugCmd = &cobra.Command{
	Use:   "run-debug TARGET CRASH_FILE [target args]",
	Short: "Build the debug profile and replay a crash file in a debugger",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugger, err := cmd.Flags().GetString("debugger")
		if err != nil {
			return err
		}
		l, err := newLauncher()
		if err != nil {
			return err
		}
		return l.Debug(launcher.DebugOptions{
			Target:     args[0],
			CrashFile:  args[1],
			Debugger:   debugger,
			TargetArgs: args[2:],
		})
	},
}

func newRunCommand(use, short string, instrumented bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " TARGET [target args]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, err := cmd.Flags().GetString("workspace")
			if err != nil {
				return err
			}
			input, err := cmd.Flags().GetString("input")
			if err != nil {
				return err
			}
			l, err := newLauncher()
			if err != nil {
				return err
			}
			return l.Run(launcher.RunOptions{
				Target:       args[0],
				Instrumented: instrumented,
				Workspace:    workspace,
				WorkspaceSet: cmd.Flags().Changed("workspace"),
				Input:        input,
				InputSet:     cmd.Flags().Changed("input"),
				TargetArgs:   args[1:],
			})
		},
	}
	cmd.Flags().StringP("workspace", "w", "", "fuzzing workspace directory (default \"hfuzz_workspace\", env HFUZZ_WORKSPACE)")
	cmd.Flags().StringP("input", "i", "", "corpus directory, relative to <workspace>/<target> (default \"input\", env HFUZZ_INPUT)")
	// everything after TARGET is forwarded to the target binary
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func init() {
	runDebugCmd.Flags().StringP("debugger", "d", "", "debugger binary, e.g. rust-gdb, gdb, lldb (default \"rust-lldb\", env HFUZZ_DEBUGGER)")
	runDebugCmd.Flags().SetInterspersed(false)
}
