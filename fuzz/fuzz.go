// Package fuzz is the entry point linked into fuzz targets. Under the
// engine the iteration loop is driven by the engine's link libraries;
// this package covers the two states the orchestrator itself produces:
// crash replay (the input file arrives via the environment) and a binary
// built without instrumentation at all.
package fuzz

import (
	"fmt"
	"os"
)

// NotInstrumentedExit is the distinguished exit code signalling that the
// binary was not built with instrumentation. External tooling keys off
// this exact value; do not change it.
const NotInstrumentedExit = 17

// crashFileEnv mirrors launcher.CrashFileEnv; duplicated here so fuzz
// targets do not link the orchestrator's internals.
const crashFileEnv = "CARGO_HONGGFUZZ_CRASH_FILENAME"

// exit is swapped in tests.
var exit = os.Exit

// Fuzz hands input data to fn. In a crash replay session the file named
// by the crash-file environment variable is fed to fn exactly once. In a
// plain, uninstrumented build it prints guidance and exits with
// NotInstrumentedExit.
func Fuzz(fn func(data []byte)) {
	if path, ok := os.LookupEnv(crashFileEnv); ok {
		data, err := os.ReadFile(path) // #nosec G304 -- path is the user's crash file
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to read %q: %v\n", path, err)
			exit(1)
			return
		}
		fn(data)
		return
	}

	fmt.Fprintln(os.Stderr, "This executable hasn't been built with fuzzing instrumentation.")
	fmt.Fprintln(os.Stderr, "Try executing \"cargo-hfuzz build\" and check out the \"hfuzz_target\" directory.")
	fmt.Fprintln(os.Stderr, "Or execute \"cargo-hfuzz run TARGET\"")
	exit(NotInstrumentedExit)
}
