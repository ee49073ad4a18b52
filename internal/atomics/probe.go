package atomics

import "atomica/internal/target"

// Probe computes the capability set for a target. It starts from All
// and applies two downgrade passes over the rule table: exact rules
// against the full identifier, then arch rules against the
// architecture component. Both passes may fire for the same target;
// since rules only clear flags, the result is the most restrictive
// combination and does not depend on rule order.
//
// extra rules (from an overrides file) are consulted after the
// built-in table. They too can only downgrade.
func Probe(t target.Triple, extra ...Rule) Set {
	s := All()
	applyRules(&s, builtinRules, t)
	applyRules(&s, extra, t)
	return s
}

func applyRules(s *Set, rules []Rule, t target.Triple) {
	for _, r := range rules {
		switch r.Match {
		case MatchExact:
			if r.Pattern == t.Raw {
				r.Apply(s)
			}
		case MatchArch:
			if r.Pattern == t.Arch {
				r.Apply(s)
			}
		}
	}
}
