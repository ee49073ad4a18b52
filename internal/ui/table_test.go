package ui

import (
	"strings"
	"testing"

	"atomica/internal/atomics"
)

func TestRenderRules(t *testing.T) {
	out := RenderRules(atomics.BuiltinRules(), false)
	for _, want := range []string{"MATCH", "PATTERN", "riscv32imc", "arm-linux-androideabi", "missing 64", "none"} {
		if !strings.Contains(out, want) {
			t.Errorf("rule table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMatrix(t *testing.T) {
	targets := []string{"x86_64-unknown-linux-gnu", "mips-unknown-linux-gnu"}
	full := atomics.All()
	mips := atomics.All()
	mips.Has64 = false

	out := RenderMatrix(targets, []atomics.Set{full, mips}, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("matrix has %d lines, want 3:\n%s", len(lines), out)
	}
	if got := strings.Count(lines[1], "yes"); got != 5 {
		t.Errorf("fully capable row has %d yes cells, want 5: %q", got, lines[1])
	}
	if got := strings.Count(lines[2], "yes"); got != 4 {
		t.Errorf("mips row has %d yes cells, want 4: %q", got, lines[2])
	}
	fields := strings.Fields(lines[2])
	if len(fields) != 6 || fields[4] != "-" {
		t.Errorf("mips row does not mark the 64 column missing: %q", lines[2])
	}
}
