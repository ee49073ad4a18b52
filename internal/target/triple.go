// Package target parses the hyphen-separated target identifier the
// build environment supplies (architecture-vendor-os-environment, not
// every component always present).
package target

import (
	"fmt"
	"strings"

	"github.com/xyproto/env/v2"
)

// EnvVar is the environment variable the surrounding build system uses
// to name the compilation target.
const EnvVar = "TARGET"

// Triple is a parsed target identifier. Only the architecture
// component is interpreted; the remaining components are kept for
// exact-match rules and display.
type Triple struct {
	Raw    string
	Arch   string
	Vendor string
	OS     string
	Env    string
}

// Parse splits a target identifier into its components. The identifier
// must be non-empty and carry at least one separator with a non-empty
// architecture component before it; anything less means the build does
// not know what it is compiling for, which is fatal.
func Parse(raw string) (Triple, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Triple{}, fmt.Errorf("empty target identifier")
	}
	parts := strings.Split(raw, "-")
	if len(parts) < 2 {
		return Triple{}, fmt.Errorf("invalid target identifier %q: no separator found", raw)
	}
	if parts[0] == "" {
		return Triple{}, fmt.Errorf("invalid target identifier %q: empty architecture component", raw)
	}
	t := Triple{Raw: raw, Arch: parts[0]}
	if len(parts) > 1 {
		t.Vendor = parts[1]
	}
	if len(parts) > 2 {
		t.OS = parts[2]
	}
	if len(parts) > 3 {
		t.Env = strings.Join(parts[3:], "-")
	}
	return t, nil
}

// FromEnvironment reads the target identifier from the TARGET
// environment variable. Absence is a fatal configuration error: there
// is no meaningful default to fall back to.
func FromEnvironment() (Triple, error) {
	raw := env.Str(EnvVar)
	if strings.TrimSpace(raw) == "" {
		return Triple{}, fmt.Errorf("%s is not set; pass --target or export %s", EnvVar, EnvVar)
	}
	return Parse(raw)
}

func (t Triple) String() string {
	return t.Raw
}
