package atomics

// Set records which atomic widths a target supports. It is constructed
// once per probe, starting from All, and may only be downgraded: a flag
// that goes false never comes back. There is no identity beyond the
// target the set was computed for.
type Set struct {
	Has8   bool
	Has16  bool
	Has32  bool
	Has64  bool
	HasPtr bool
}

// All is the default assumption: a target supports atomics at every
// width unless a rule says otherwise.
func All() Set {
	return Set{Has8: true, Has16: true, Has32: true, Has64: true, HasPtr: true}
}

// None describes targets with no atomic instructions at all, such as
// RISC-V cores built without the A extension.
func None() Set {
	return Set{}
}

// Has reports whether the set supports atomics of width w.
func (s Set) Has(w Width) bool {
	switch w {
	case W8:
		return s.Has8
	case W16:
		return s.Has16
	case W32:
		return s.Has32
	case W64:
		return s.Has64
	case WPtr:
		return s.HasPtr
	default:
		return false
	}
}

// drop clears the flag for width w. Downgrades are the only legal
// mutation and are idempotent.
func (s *Set) drop(w Width) {
	switch w {
	case W8:
		s.Has8 = false
	case W16:
		s.Has16 = false
	case W32:
		s.Has32 = false
	case W64:
		s.Has64 = false
	case WPtr:
		s.HasPtr = false
	}
}

// Missing returns the widths the set does not support, in canonical
// order 8, 16, 32, 64, ptr.
func (s Set) Missing() []Width {
	var out []Width
	for _, w := range Widths() {
		if !s.Has(w) {
			out = append(out, w)
		}
	}
	return out
}
