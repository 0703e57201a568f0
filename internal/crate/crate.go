// Package crate locates the Cargo project the tool operates on and reads
// the pinned fuzzing-library version out of its lockfile.
package crate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnginePackage is the library dependency whose pinned version must agree
// with this tool's own version.
const EnginePackage = "honggfuzz"

// FindRoot walks up from startDir to the first directory containing a
// Cargo.toml, mirroring how cargo itself resolves the project root.
func FindRoot(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "Cargo.toml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return dir, nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.New("could not find `Cargo.toml` in current directory or any parent directory")
}

type lockfile struct {
	Packages []lockedPackage `toml:"package"`
}

type lockedPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// PinnedEngineVersion reads Cargo.lock under root and returns the locked
// version of the engine library dependency. The second return is false
// when the lockfile or the dependency entry does not exist; that is not
// an error, the caller decides whether a missing pin matters.
func PinnedEngineVersion(root string) (string, bool, error) {
	lockPath := filepath.Join(root, "Cargo.lock")
	var lf lockfile
	if _, err := toml.DecodeFile(lockPath, &lf); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: failed to parse lockfile: %w", lockPath, err)
	}
	for _, pkg := range lf.Packages {
		if pkg.Name == EnginePackage {
			return pkg.Version, true, nil
		}
	}
	return "", false, nil
}
