package toolchain

import (
	"fmt"
	"os/exec"
	"strings"
)

// HostTriple asks rustc for the host target triple. Queried once per
// invocation; every build passes it explicitly so nested invocations of
// build-time helpers do not inherit the instrumentation flags.
func HostTriple() (string, error) {
	out, err := exec.Command("rustc", "-vV").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query rustc for the host triple: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if rest, ok := strings.CutPrefix(line, "host: "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", fmt.Errorf("rustc -vV output contains no host line")
}

// ProbeGoldLinker reports whether ld.gold is on the search path. Absence
// is never an error; presence only changes the emitted link flags.
func ProbeGoldLinker() bool {
	_, err := exec.LookPath("ld.gold")
	return err == nil
}
