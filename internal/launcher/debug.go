package launcher

import (
	"path/filepath"
	"strings"

	"hfuzz/internal/proc"
	"hfuzz/internal/profile"
	"hfuzz/internal/toolchain"
)

// CrashFileEnv names the crash file for the target's fuzz entry point.
// Delivered through the environment, not argv: the entry point reads it
// there, and argv stays free for genuine target arguments.
const CrashFileEnv = "CARGO_HONGGFUZZ_CRASH_FILENAME"

// DebugOptions configures one crash replay session.
type DebugOptions struct {
	Target    string
	CrashFile string
	// Debugger is the explicit flag value; empty means environment then
	// the rust-lldb default.
	Debugger   string
	TargetArgs []string
}

// DebuggerCommand builds the scripted debugger invocation for the target
// binary. An lldb-family binary takes `-o` scripted commands with `-f`
// and a `--` separator; anything else is assumed gdb-compatible and gets
// the structurally equivalent `-ex` sequence with `--args`. Both scripts
// break on the panic symbol, run, and print a backtrace.
func DebuggerCommand(debugger, binary string, targetArgs []string) *proc.Command {
	var args []string
	if strings.Contains(filepath.Base(debugger), "lldb") {
		args = []string{"-o", "b rust_panic", "-o", "r", "-o", "bt", "-f", binary, "--"}
		args = append(args, targetArgs...)
	} else {
		args = []string{"-ex", "b rust_panic", "-ex", "r", "-ex", "bt", "--args", binary}
		args = append(args, targetArgs...)
	}
	return &proc.Command{Path: debugger, Args: args}
}

// Debug builds the debug variant of the target and replays the crash
// file under the configured debugger. The debugger session is
// interactive, so the tool stays parent and mirrors the child's exit
// status instead of replacing itself.
func (l *Launcher) Debug(opts DebugOptions) error {
	cfg, err := l.Pipeline.Build(profile.Debug, "--bin", opts.Target)
	if err != nil {
		return err
	}

	debugger := opts.Debugger
	if debugger == "" {
		debugger = l.Env.DebuggerOrDefault()
	}

	cmd := DebuggerCommand(debugger, toolchain.BinaryPath(cfg, opts.Target), opts.TargetArgs)
	cmd.Env = map[string]string{
		CrashFileEnv:     opts.CrashFile,
		"RUST_BACKTRACE": l.Env.BacktraceOrDefault(),
	}

	l.logger().Info("replaying crash", "debugger", debugger, "crash_file", opts.CrashFile)
	return l.Runner.Run(cmd)
}
