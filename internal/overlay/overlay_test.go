package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"atomica/internal/atomics"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write override file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[[rule]]
match = "exact"
pattern = "armv5te-unknown-linux-gnueabi"
missing = ["64"]
note = "no 64-bit CAS before ARMv6"

[[rule]]
match = "arch"
pattern = "msp430"
none = true
`)
	rules, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Load returned %d rules, want 2", len(rules))
	}
	if rules[0].Match != atomics.MatchExact || rules[0].Pattern != "armv5te-unknown-linux-gnueabi" {
		t.Errorf("rule 0 = %+v", rules[0])
	}
	if len(rules[0].Missing) != 1 || rules[0].Missing[0] != atomics.W64 {
		t.Errorf("rule 0 missing = %v, want [64]", rules[0].Missing)
	}
	if rules[1].Match != atomics.MatchArch || !rules[1].None {
		t.Errorf("rule 1 = %+v", rules[1])
	}
}

func TestLoad_MissingDefaultFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	rules, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load of absent default file failed: %v", err)
	}
	if rules != nil {
		t.Errorf("Load of absent default file = %v, want nil", rules)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	if _, err := Load(path, true); err == nil {
		t.Error("Load of absent explicit file succeeded, want error")
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing match", "[[rule]]\npattern = \"mips\"\nmissing = [\"64\"]\n"},
		{"bad match", "[[rule]]\nmatch = \"glob\"\npattern = \"mips\"\nmissing = [\"64\"]\n"},
		{"missing pattern", "[[rule]]\nmatch = \"arch\"\nmissing = [\"64\"]\n"},
		{"bad width", "[[rule]]\nmatch = \"arch\"\npattern = \"mips\"\nmissing = [\"128\"]\n"},
		{"downgrades nothing", "[[rule]]\nmatch = \"arch\"\npattern = \"mips\"\n"},
		{"none and missing", "[[rule]]\nmatch = \"arch\"\npattern = \"mips\"\nnone = true\nmissing = [\"64\"]\n"},
		{"unknown key", "[[rule]]\nmatch = \"arch\"\npattern = \"mips\"\nmissing = [\"64\"]\nextra = 1\n"},
	}
	for _, tc := range cases {
		path := writeFile(t, tc.content)
		if _, err := Load(path, true); err == nil {
			t.Errorf("%s: Load succeeded, want error", tc.name)
		}
	}
}
