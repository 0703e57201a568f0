//go:build !unix

package proc

import "fmt"

// Process-image replacement needs execve. Windows users run under WSL,
// same as upstream honggfuzz.
type OSReplacer struct{}

func (OSReplacer) Replace(cmd *Command) error {
	return fmt.Errorf("process replacement is not supported on this platform; run under WSL")
}
