// Package launcher assembles and performs the two terminal actions of
// the pipeline: handing the instrumented binary to the fuzzing engine by
// replacing the current process, and replaying a crash file under a
// supervised debugger.
package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hfuzz/internal/config"
	"hfuzz/internal/proc"
	"hfuzz/internal/profile"
	"hfuzz/internal/toolchain"
)

// Launcher owns the terminal actions. Replacer and Runner are injected
// so tests never spawn or replace a real process.
type Launcher struct {
	Env      config.Environment
	Pipeline *toolchain.Pipeline
	Runner   proc.Runner
	Replacer proc.Replacer
	Log      *slog.Logger
}

func (l *Launcher) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}

// RunOptions configures one engine launch. Explicit flag values carry a
// Set marker because an explicit flag outranks the environment, which
// outranks the computed default.
type RunOptions struct {
	Target string
	// Instrumented selects the coverage-instrumented build; the
	// no-instr variant keeps release optimization but drops the
	// coverage passes.
	Instrumented bool
	Workspace    string
	WorkspaceSet bool
	Input        string
	InputSet     bool
	// TargetArgs are forwarded to the target binary after the engine's
	// `--` separator.
	TargetArgs []string
}

// ResolveWorkspace applies flag > environment > default precedence.
func (l *Launcher) ResolveWorkspace(opts RunOptions) string {
	if opts.WorkspaceSet && opts.Workspace != "" {
		return opts.Workspace
	}
	if l.Env.Workspace != "" {
		return l.Env.Workspace
	}
	return config.DefaultWorkspace
}

// ResolveCorpus applies the same precedence for the corpus directory.
// Relative overrides are joined under <workspace>/<target>.
func (l *Launcher) ResolveCorpus(opts RunOptions, workspace string) string {
	input := config.DefaultCorpusDir
	if opts.InputSet && opts.Input != "" {
		input = opts.Input
	} else if l.Env.Input != "" {
		input = l.Env.Input
	}
	if filepath.IsAbs(input) {
		return input
	}
	return filepath.Join(workspace, opts.Target, input)
}

// EngineCommand assembles the engine invocation: workspace, corpus,
// persistent mode, user engine args, then the target binary and its
// forwarded arguments. Sanitizer options that produce noise on Rust
// binaries are disabled by prepending to any preexisting value.
func (l *Launcher) EngineCommand(opts RunOptions, cfg *profile.Config, workspace, corpus string) *proc.Command {
	args := []string{
		"-W", filepath.Join(workspace, opts.Target),
		"-f", corpus,
		"-P",
	}
	args = append(args, config.SplitArgs(l.Env.RunArgs)...)
	args = append(args, "--", toolchain.BinaryPath(cfg, opts.Target))
	args = append(args, opts.TargetArgs...)

	return &proc.Command{
		Path: toolchain.EnginePath(cfg.TargetDir),
		Args: args,
		Env: map[string]string{
			"ASAN_OPTIONS": "detect_odr_violation=0:" + l.Env.ASANOptions,
			"TSAN_OPTIONS": "report_signal_unsafe=0:" + l.Env.TSANOptions,
		},
	}
}

// Run builds the requested variant restricted to the named target and
// replaces the current process with the fuzzing engine. On success it
// never returns; every returned error means the launch did not happen.
func (l *Launcher) Run(opts RunOptions) error {
	workspace := l.ResolveWorkspace(opts)
	corpus := l.ResolveCorpus(opts, workspace)

	if err := os.MkdirAll(corpus, 0o750); err != nil {
		// not fatal: the engine can still run against an existing corpus
		l.logger().Warn("failed to create corpus directory", "path", corpus, "error", err)
	}

	variant := profile.Instrumented
	if !opts.Instrumented {
		variant = profile.NotInstrumented
	}
	cfg, err := l.Pipeline.Build(variant, "--bin", opts.Target)
	if err != nil {
		return err
	}

	cmd := l.EngineCommand(opts, cfg, workspace, corpus)
	l.logger().Info("launching engine", "path", cmd.Path, "workspace", workspace, "corpus", corpus)
	if err := l.Replacer.Replace(cmd); err != nil {
		return fmt.Errorf("cannot execute %s, try `cargo-hfuzz build` from the fuzzed project directory: %w",
			cmd.Path, err)
	}
	// unreachable: replacement does not return on success
	return nil
}
