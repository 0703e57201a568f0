package proc

import (
	"errors"
	"reflect"
	"runtime"
	"testing"
)

func TestCommandArgv(t *testing.T) {
	cmd := &Command{Path: "cargo", Args: []string{"build", "--release"}}
	want := []string{"cargo", "build", "--release"}
	if got := cmd.Argv(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Argv = %v, want %v", got, want)
	}
}

func TestCommandEnvSliceStableOrder(t *testing.T) {
	cmd := &Command{Env: map[string]string{
		"RUSTFLAGS":         "--cfg fuzzing",
		"CARGO_INCREMENTAL": "1",
		"CRATE_ROOT":        "/proj",
	}}
	want := []string{
		"CARGO_INCREMENTAL=1",
		"CRATE_ROOT=/proj",
		"RUSTFLAGS=--cfg fuzzing",
	}
	for i := 0; i < 10; i++ {
		if got := cmd.EnvSlice(); !reflect.DeepEqual(got, want) {
			t.Fatalf("EnvSlice = %v, want %v", got, want)
		}
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Cmd: "cargo", Code: 101}
	if got := err.Error(); got != "cargo exited with status 101" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestOSRunnerPropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	err := OSRunner{}.Run(&Command{Path: "sh", Args: []string{"-c", "exit 7"}})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T (%v), want *ExitError", err, err)
	}
	if exitErr.Code != 7 {
		t.Fatalf("Code = %d, want 7", exitErr.Code)
	}
}

func TestOSRunnerSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	if err := (OSRunner{}).Run(&Command{Path: "sh", Args: []string{"-c", "true"}}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestOSRunnerMissingBinary(t *testing.T) {
	err := OSRunner{}.Run(&Command{Path: "definitely-not-a-real-binary-8271"})
	if err == nil {
		t.Fatalf("expected an error for a missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("missing binary must not look like a child exit status")
	}
}

func TestOSRunnerEnvOverlay(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	cmd := &Command{
		Path: "sh",
		Args: []string{"-c", `[ "$HFUZZ_TEST_MARKER" = "yes" ]`},
		Env:  map[string]string{"HFUZZ_TEST_MARKER": "yes"},
	}
	if err := (OSRunner{}).Run(cmd); err != nil {
		t.Fatalf("overlay variable not visible to the child: %v", err)
	}
}
