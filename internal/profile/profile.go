// Package profile resolves a requested build variant into a concrete,
// deterministic build configuration: rustc flag sequence, incremental
// toggle, release mode and the isolated output directory. Resolution is
// pure; probes (linker presence, host triple) are inputs, not lookups.
package profile

import "strings"

// BuildType selects one instrumentation profile. Chosen once per
// invocation and immutable afterwards.
type BuildType int

const (
	// Instrumented is a release build with coverage instrumentation,
	// ready for the fuzzing engine.
	Instrumented BuildType = iota
	// NotInstrumented is a release build without the coverage passes.
	NotInstrumented
	// Debug is a non-release build for crash replay under a debugger.
	Debug
	// Coverage is a non-release build instrumented for profile-guided
	// coverage reporting (grcov).
	Coverage
)

func (t BuildType) String() string {
	switch t {
	case Instrumented:
		return "instrumented"
	case NotInstrumented:
		return "no-instr"
	case Debug:
		return "debug"
	case Coverage:
		return "grcov"
	default:
		return "unknown"
	}
}

// Release reports whether the variant builds with cargo's release
// profile.
func (t BuildType) Release() bool {
	return t == Instrumented || t == NotInstrumented
}

// NeedsEngine reports whether the variant links against the fuzzing
// engine and therefore requires the engine version check and the
// placement environment markers.
func (t BuildType) NeedsEngine() bool {
	return t == Instrumented || t == Coverage
}

// Inputs carries everything resolution depends on besides the variant
// itself, so Resolve stays a pure function.
type Inputs struct {
	// Triple is the host target triple reported by rustc.
	Triple string
	// TargetDir is the isolated build-output directory.
	TargetDir string
	// UserFlags is the raw RUSTFLAGS value. It is whitespace-split with
	// no quoting support; flags containing spaces cannot be expressed.
	UserFlags string
	// GoldLinker is the outcome of the ld.gold search-path probe.
	GoldLinker bool
	// OS is the running platform (runtime.GOOS).
	OS string
}

// Config is the resolved build configuration, constructed fresh per
// invocation and handed to the toolchain driver.
type Config struct {
	Type      BuildType
	Triple    string
	TargetDir string
	// Flags is the ordered rustc flag sequence: generated flags first,
	// user flags appended last so user values win on duplicated keys.
	Flags []string
	// Incremental is the CARGO_INCREMENTAL value, "0" only for the
	// coverage profile.
	Incremental string
	Release     bool
	NeedsEngine bool
}

// RustFlags renders the flag sequence as a single RUSTFLAGS value.
func (c *Config) RustFlags() string {
	return strings.Join(c.Flags, " ")
}

// Resolve maps a build variant plus user overrides to a concrete
// configuration. Repeated calls with identical inputs yield an identical
// flag sequence.
func Resolve(t BuildType, in Inputs) *Config {
	flags := []string{
		"--cfg fuzzing",
		"-C debug-assertions",
		"-C overflow_checks",
	}

	incremental := "1"
	switch t {
	case Debug:
		flags = append(flags,
			"--cfg fuzzing_debug",
			"-C opt-level=0",
			"-C debuginfo=2",
		)

	case Coverage:
		flags = append(flags,
			"--cfg fuzzing_debug",
			"-Zprofile",
			"-Cpanic=abort",
			"-C opt-level=0",
			"-C debuginfo=2",
			"-Ccodegen-units=1",
			"-Cinline-threshold=0",
			"-Clink-dead-code",
		)
		incremental = "0"

	default:
		flags = append(flags,
			"-C opt-level=3",
			"-C target-cpu=native",
			"-C debuginfo=0",
		)

		if t == Instrumented {
			flags = append(flags,
				"-C passes=sancov",
				"-C llvm-args=-sanitizer-coverage-level=4",
				"-C llvm-args=-sanitizer-coverage-trace-pc-guard",
				"-C llvm-args=-sanitizer-coverage-trace-divs",
			)

			// trace-compares needs a sanitizer on macOS that we do not
			// otherwise request
			if in.OS != "darwin" {
				flags = append(flags,
					"-C llvm-args=-sanitizer-coverage-trace-compares",
				)
			}

			if in.GoldLinker {
				flags = append(flags, "-Clink-arg=-fuse-ld=gold")
			}
		}
	}

	// user flags last: a duplicated key overrides the generated value
	flags = append(flags, strings.Fields(in.UserFlags)...)

	return &Config{
		Type:        t,
		Triple:      in.Triple,
		TargetDir:   in.TargetDir,
		Flags:       flags,
		Incremental: incremental,
		Release:     t.Release(),
		NeedsEngine: t.NeedsEngine(),
	}
}
