//go:build unix

package proc

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// OSReplacer swaps the current process image for the command via execve.
// Used only for the fuzzing engine launch; everything else is supervised.
type OSReplacer struct{}

func (OSReplacer) Replace(cmd *Command) error {
	path := cmd.Path
	if resolved, err := exec.LookPath(path); err == nil {
		path = resolved
	}
	if cmd.Dir != "" {
		if err := os.Chdir(cmd.Dir); err != nil {
			return fmt.Errorf("failed to enter %q: %w", cmd.Dir, err)
		}
	}
	env := append(os.Environ(), cmd.EnvSlice()...)
	if err := unix.Exec(path, cmd.Argv(), env); err != nil {
		return fmt.Errorf("failed to exec %q: %w", cmd.Path, err)
	}
	// unreachable: Exec does not return on success
	return nil
}
