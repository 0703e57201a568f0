// Package config snapshots every ambient environment variable the tool
// consumes into one immutable value built at startup. Components never
// call os.Getenv themselves; variables destined for a child process are
// re-emitted at the exact spawn boundary.
package config

import "os"

// Defaults mirrored from the upstream tooling. The target directory is
// deliberately distinct from cargo's default `target` so instrumented
// artifacts never collide with regular builds.
const (
	DefaultTargetDir = "hfuzz_target"
	DefaultWorkspace = "hfuzz_workspace"
	DefaultDebugger  = "rust-lldb"
	DefaultCorpusDir = "input"
)

// Environment is the per-invocation snapshot of ambient state. Zero-value
// fields mean "not set"; resolution against defaults happens in the
// components that own each concern.
type Environment struct {
	// TargetDir overrides the isolated build-output directory
	// (CARGO_TARGET_DIR).
	TargetDir string
	// Workspace overrides the fuzzing workspace root (HFUZZ_WORKSPACE).
	Workspace string
	// Input overrides the corpus directory (HFUZZ_INPUT).
	Input string
	// RustFlags are user compiler flags merged after generated ones
	// (RUSTFLAGS).
	RustFlags string
	// BuildArgs are extra arguments for cargo build, whitespace-split
	// (HFUZZ_BUILD_ARGS).
	BuildArgs string
	// RunArgs are extra arguments for the engine, whitespace-split
	// (HFUZZ_RUN_ARGS).
	RunArgs string
	// Debugger selects the debugger binary for crash replay
	// (HFUZZ_DEBUGGER).
	Debugger string
	// Backtrace is the preexisting RUST_BACKTRACE value, defaulted to
	// "1" when empty.
	Backtrace string
	// ASANOptions and TSANOptions are preexisting sanitizer settings the
	// run launcher prepends to (ASAN_OPTIONS, TSAN_OPTIONS).
	ASANOptions string
	TSANOptions string
	// Cargo is the cargo binary to invoke (CARGO), "cargo" when unset.
	Cargo string
}

// FromOS reads the process environment once.
func FromOS() Environment {
	return Environment{
		TargetDir:   os.Getenv("CARGO_TARGET_DIR"),
		Workspace:   os.Getenv("HFUZZ_WORKSPACE"),
		Input:       os.Getenv("HFUZZ_INPUT"),
		RustFlags:   os.Getenv("RUSTFLAGS"),
		BuildArgs:   os.Getenv("HFUZZ_BUILD_ARGS"),
		RunArgs:     os.Getenv("HFUZZ_RUN_ARGS"),
		Debugger:    os.Getenv("HFUZZ_DEBUGGER"),
		Backtrace:   os.Getenv("RUST_BACKTRACE"),
		ASANOptions: os.Getenv("ASAN_OPTIONS"),
		TSANOptions: os.Getenv("TSAN_OPTIONS"),
		Cargo:       os.Getenv("CARGO"),
	}
}

// TargetDirOrDefault resolves the isolated build-output directory.
func (e Environment) TargetDirOrDefault() string {
	if e.TargetDir != "" {
		return e.TargetDir
	}
	return DefaultTargetDir
}

// CargoOrDefault resolves the cargo binary name.
func (e Environment) CargoOrDefault() string {
	if e.Cargo != "" {
		return e.Cargo
	}
	return "cargo"
}

// DebuggerOrDefault resolves the debugger binary name.
func (e Environment) DebuggerOrDefault() string {
	if e.Debugger != "" {
		return e.Debugger
	}
	return DefaultDebugger
}

// BacktraceOrDefault propagates RUST_BACKTRACE or switches it on.
func (e Environment) BacktraceOrDefault() string {
	if e.Backtrace != "" {
		return e.Backtrace
	}
	return "1"
}
