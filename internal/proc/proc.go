// Package proc abstracts the two ways this tool hands control to an
// external process: spawn-and-wait (cargo, the debugger) and
// process-image replacement (the fuzzing engine). Keeping both behind
// small interfaces lets the rest of the pipeline stay pure and be
// exercised with stubs instead of real processes.
package proc

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command describes one external process invocation. Env is an overlay:
// entries are appended to the parent environment, so a duplicated key
// takes effect over the inherited value.
type Command struct {
	Path string
	Args []string
	Env  map[string]string
	Dir  string
}

// Argv returns the full argv, program first.
func (c *Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// EnvSlice renders the overlay in KEY=VALUE form with a stable order.
func (c *Command) EnvSlice() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+c.Env[k])
	}
	return out
}

func (c *Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// ExitError carries a child's exit code to main unchanged.
type ExitError struct {
	Cmd  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Cmd, e.Code)
}

// Runner spawns a child with inherited stdio and waits for it. A nonzero
// exit surfaces as *ExitError so callers can propagate the code verbatim.
type Runner interface {
	Run(cmd *Command) error
}

// Replacer replaces the current process image. On success it never
// returns; the only return path is a launch failure.
type Replacer interface {
	Replace(cmd *Command) error
}

// OSRunner runs commands through os/exec. Stdio is inherited verbatim so
// native diagnostics from cargo and the debugger reach the user; nothing
// is captured or parsed.
type OSRunner struct{}

func (OSRunner) Run(cmd *Command) error {
	// #nosec G204 -- argv is assembled by the orchestrator, not a shell
	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.EnvSlice()...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	err := c.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1
		}
		return &ExitError{Cmd: cmd.Path, Code: code}
	}
	return fmt.Errorf("failed to run %q: %w", cmd.Path, err)
}
