package atomics

import "fmt"

// MatchKind says which component of the target identifier a rule is
// compared against.
type MatchKind uint8

const (
	// MatchExact compares against the full target identifier.
	MatchExact MatchKind = iota
	// MatchArch compares against the architecture component only
	// (the text before the first separator).
	MatchArch
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchArch:
		return "arch"
	default:
		return fmt.Sprintf("MatchKind(%d)", uint8(k))
	}
}

// Rule downgrades the capability set of targets it matches. A rule may
// clear individual widths (Missing) or every width at once (None); it
// can never restore a width.
type Rule struct {
	Match   MatchKind
	Pattern string
	None    bool
	Missing []Width
	Note    string
}

// Apply downgrades s according to the rule. Applying the same rule
// twice is a no-op.
func (r Rule) Apply(s *Set) {
	if r.None {
		*s = None()
		return
	}
	for _, w := range r.Missing {
		s.drop(w)
	}
}

// builtinRules is the single source of truth for targets whose atomic
// support deviates from the all-widths default. Exact rules cover
// targets whose deficiency depends on more than the architecture;
// arch rules cover whole architecture families.
//
// The table is necessarily incomplete: an unlisted deficient target
// probes as fully capable and fails downstream, at link time, in
// whatever consumes the generated configuration. Add entries here as
// gaps are discovered.
var builtinRules = []Rule{
	{
		Match:   MatchExact,
		Pattern: "arm-linux-androideabi",
		Missing: []Width{W64},
		Note:    "Android on 32-bit ARM lacks 64-bit atomics",
	},
	// riscv32imc-unknown-none-elf and riscv32imac-unknown-none-elf
	// differ only in the A extension, which no generic target
	// attribute exposes. The ISA string in the architecture component
	// is the only way to tell them apart.
	{
		Match:   MatchArch,
		Pattern: "riscv32i",
		None:    true,
		Note:    "RISC-V without the A extension has no atomics",
	},
	{
		Match:   MatchArch,
		Pattern: "riscv32im",
		None:    true,
		Note:    "RISC-V without the A extension has no atomics",
	},
	{
		Match:   MatchArch,
		Pattern: "riscv32ic",
		None:    true,
		Note:    "RISC-V without the A extension has no atomics",
	},
	{
		Match:   MatchArch,
		Pattern: "riscv32imc",
		None:    true,
		Note:    "RISC-V without the A extension has no atomics",
	},
	{
		Match:   MatchArch,
		Pattern: "riscv32imac",
		Missing: []Width{W64},
		Note:    "32-bit RISC-V with the A extension still lacks 64-bit atomics",
	},
	{
		Match:   MatchArch,
		Pattern: "mips",
		Missing: []Width{W64},
		Note:    "32-bit MIPS lacks 64-bit atomics",
	},
	{
		Match:   MatchArch,
		Pattern: "mipsel",
		Missing: []Width{W64},
		Note:    "32-bit MIPS (little-endian) lacks 64-bit atomics",
	},
	{
		Match:   MatchArch,
		Pattern: "powerpc",
		Missing: []Width{W64},
		Note:    "32-bit PowerPC lacks 64-bit atomics",
	},
}

// BuiltinRules returns a copy of the built-in rule table.
func BuiltinRules() []Rule {
	return append([]Rule(nil), builtinRules...)
}
