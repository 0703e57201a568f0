package toolchain

import "fmt"

// VersionMismatchError aborts a build whose pinned engine library version
// disagrees with this executable's version. Comparison is exact string
// equality; no normalization, so "0.5.2" and "0.5.2 " differ.
type VersionMismatchError struct {
	// Library is the version of the engine library pinned by the
	// project's lockfile.
	Library string
	// Tool is the compiled-in version of this executable.
	Tool string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf(
		"the version of the honggfuzz library dependency (%s) and the version of the `cargo-hfuzz` executable (%s) do not match\n"+
			"if updating both with `cargo update` and `cargo install honggfuzz` does not work, you can either:\n"+
			"- change the dependency in `Cargo.toml` to `honggfuzz = \"=%s\"`\n"+
			"- or run `cargo install honggfuzz --version %s`",
		e.Library, e.Tool, e.Tool, e.Library)
}

// CheckEngineVersion enforces exact agreement between the tool and the
// pinned library before any build that links the engine.
func CheckEngineVersion(tool, library string) error {
	if tool == library {
		return nil
	}
	return &VersionMismatchError{Library: library, Tool: tool}
}
