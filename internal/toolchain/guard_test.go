package toolchain

import (
	"strings"
	"testing"
)

func TestCheckEngineVersionAgreement(t *testing.T) {
	if err := CheckEngineVersion("0.5.2", "0.5.2"); err != nil {
		t.Fatalf("equal versions should pass, got %v", err)
	}
}

func TestCheckEngineVersionMismatch(t *testing.T) {
	cases := []struct {
		name          string
		tool, library string
	}{
		{"patch difference", "0.5.2", "0.5.1"},
		{"trailing whitespace", "0.5.2", "0.5.2 "},
		{"case difference", "0.5.2-RC", "0.5.2-rc"},
		{"empty reported", "0.5.2", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckEngineVersion(tc.tool, tc.library)
			if err == nil {
				t.Fatalf("CheckEngineVersion(%q, %q) should fail", tc.tool, tc.library)
			}
			msg := err.Error()
			if !strings.Contains(msg, tc.tool) || !strings.Contains(msg, tc.library) {
				t.Errorf("error must name both versions, got %q", msg)
			}
			if !strings.Contains(msg, "Cargo.toml") || !strings.Contains(msg, "cargo install") {
				t.Errorf("error must name both remediation paths, got %q", msg)
			}
		})
	}
}
