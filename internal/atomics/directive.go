package atomics

// Directive names use the "missing" polarity: a directive is emitted
// only for widths the target does NOT support, and downstream
// consumers treat presence as the default. The same names are consumed
// by the source filter, so emission and consumption can never disagree
// on polarity.
const (
	DirectiveMissing8   = "atomica_missing_8"
	DirectiveMissing16  = "atomica_missing_16"
	DirectiveMissing32  = "atomica_missing_32"
	DirectiveMissing64  = "atomica_missing_64"
	DirectiveMissingPtr = "atomica_missing_ptr"
)

// DirectiveFor returns the missing-width directive name for w.
func DirectiveFor(w Width) string {
	switch w {
	case W8:
		return DirectiveMissing8
	case W16:
		return DirectiveMissing16
	case W32:
		return DirectiveMissing32
	case W64:
		return DirectiveMissing64
	case WPtr:
		return DirectiveMissingPtr
	default:
		return ""
	}
}

// Directives projects a capability set into the directives to emit,
// one per missing width, in canonical order. A fully capable set
// yields nothing.
func Directives(s Set) []string {
	var out []string
	for _, w := range s.Missing() {
		out = append(out, DirectiveFor(w))
	}
	return out
}
