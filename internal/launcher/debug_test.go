package launcher

import (
	"errors"
	"reflect"
	"testing"

	"hfuzz/internal/config"
	"hfuzz/internal/proc"
)

func TestDebuggerCommandStyles(t *testing.T) {
	cases := []struct {
		name     string
		debugger string
		want     []string
	}{
		{
			"lldb scripted sequence",
			"rust-lldb",
			[]string{"-o", "b rust_panic", "-o", "r", "-o", "bt", "-f", "bin/demo", "--", "--seed", "1"},
		},
		{
			"lldb by path",
			"/usr/bin/lldb-17",
			[]string{"-o", "b rust_panic", "-o", "r", "-o", "bt", "-f", "bin/demo", "--", "--seed", "1"},
		},
		{
			"gdb args sequence",
			"rust-gdb",
			[]string{"-ex", "b rust_panic", "-ex", "r", "-ex", "bt", "--args", "bin/demo", "--seed", "1"},
		},
		{
			"unknown debugger falls back to gdb style",
			"/opt/tools/mydbg",
			[]string{"-ex", "b rust_panic", "-ex", "r", "-ex", "bt", "--args", "bin/demo", "--seed", "1"},
		},
		{
			"lldb substring in directory does not count",
			"/opt/lldb-tools/gdb",
			[]string{"-ex", "b rust_panic", "-ex", "r", "-ex", "bt", "--args", "bin/demo", "--seed", "1"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := DebuggerCommand(tc.debugger, "bin/demo", []string{"--seed", "1"})
			if cmd.Path != tc.debugger {
				t.Errorf("Path = %q, want %q", cmd.Path, tc.debugger)
			}
			if !reflect.DeepEqual(cmd.Args, tc.want) {
				t.Errorf("Args = %v\nwant %v", cmd.Args, tc.want)
			}
		})
	}
}

func TestDebugDeliversCrashFileViaEnvironment(t *testing.T) {
	l, runner, _ := testLauncher(t, config.Environment{})

	if err := l.Debug(DebugOptions{Target: "demo", CrashFile: "ws/demo/SIGABRT.fuzz"}); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if len(runner.commands) != 2 {
		t.Fatalf("expected cargo build then debugger, got %d commands", len(runner.commands))
	}
	dbg := runner.commands[1]
	if dbg.Env[CrashFileEnv] != "ws/demo/SIGABRT.fuzz" {
		t.Errorf("%s = %q", CrashFileEnv, dbg.Env[CrashFileEnv])
	}
	// crash file must not appear in argv
	for _, arg := range dbg.Args {
		if arg == "ws/demo/SIGABRT.fuzz" {
			t.Errorf("crash file leaked into argv: %v", dbg.Args)
		}
	}
}

func TestDebugBuildsDebugProfile(t *testing.T) {
	l, runner, _ := testLauncher(t, config.Environment{})

	if err := l.Debug(DebugOptions{Target: "demo", CrashFile: "c.fuzz"}); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	dbg := runner.commands[1]
	found := false
	for _, arg := range dbg.Args {
		if arg == "hfuzz_target/x86_64-unknown-linux-gnu/debug/demo" {
			found = true
		}
	}
	if !found {
		t.Errorf("debugger must receive the debug-profile binary, args = %v", dbg.Args)
	}
}

func TestDebugBacktraceDefaultsOn(t *testing.T) {
	l, runner, _ := testLauncher(t, config.Environment{})
	if err := l.Debug(DebugOptions{Target: "demo", CrashFile: "c.fuzz"}); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if got := runner.commands[1].Env["RUST_BACKTRACE"]; got != "1" {
		t.Errorf("RUST_BACKTRACE = %q, want 1", got)
	}
}

func TestDebugBacktracePropagated(t *testing.T) {
	l, runner, _ := testLauncher(t, config.Environment{Backtrace: "full"})
	if err := l.Debug(DebugOptions{Target: "demo", CrashFile: "c.fuzz"}); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if got := runner.commands[1].Env["RUST_BACKTRACE"]; got != "full" {
		t.Errorf("RUST_BACKTRACE = %q, want full", got)
	}
}

func TestDebugDebuggerPrecedence(t *testing.T) {
	cases := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{"default", "", "", config.DefaultDebugger},
		{"env wins over default", "", "gdb", "gdb"},
		{"flag wins over env", "lldb", "gdb", "lldb"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, runner, _ := testLauncher(t, config.Environment{Debugger: tc.env})
			if err := l.Debug(DebugOptions{Target: "demo", CrashFile: "c.fuzz", Debugger: tc.flag}); err != nil {
				t.Fatalf("Debug: %v", err)
			}
			if got := runner.commands[1].Path; got != tc.want {
				t.Errorf("debugger = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDebugMirrorsDebuggerExitStatus(t *testing.T) {
	l, runner, _ := testLauncher(t, config.Environment{})
	runner.err = &proc.ExitError{Cmd: "rust-lldb", Code: 3}
	runner.errOn = 2 // the debugger, not the build

	err := l.Debug(DebugOptions{Target: "demo", CrashFile: "c.fuzz"})
	var exitErr *proc.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *proc.ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Fatalf("Code = %d, want 3", exitErr.Code)
	}
}
