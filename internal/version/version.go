// Package version carries build-time identity for the cargo-hfuzz CLI.
// The engine version guard compares Version against the library version
// pinned by the fuzzed project, so releases must keep them in lockstep.
package version

var (
	// Version is the semantic version of the CLI. Overridden at build
	// time via -ldflags.
	Version = "0.5.2"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
