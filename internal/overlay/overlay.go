// Package overlay loads per-project rule overrides from an
// atomica.toml file. Overrides extend the built-in table; they can
// only downgrade capabilities, never restore them.
package overlay

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"atomica/internal/atomics"
)

// DefaultFile is the override file name looked up next to the working
// directory when no explicit path is given.
const DefaultFile = "atomica.toml"

type overlayFile struct {
	Rule []overlayRule `toml:"rule"`
}

type overlayRule struct {
	Match   string   `toml:"match"`
	Pattern string   `toml:"pattern"`
	None    bool     `toml:"none"`
	Missing []string `toml:"missing"`
	Note    string   `toml:"note"`
}

// Load reads and validates an overrides file. A missing file at the
// default location is not an error; a missing file at an explicit path
// is.
func Load(path string, explicit bool) ([]atomics.Rule, error) {
	var file overlayFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	rules := make([]atomics.Rule, 0, len(file.Rule))
	for i, raw := range file.Rule {
		rule, err := raw.toRule()
		if err != nil {
			return nil, fmt.Errorf("%s: [[rule]] #%d: %w", path, i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r overlayRule) toRule() (atomics.Rule, error) {
	var kind atomics.MatchKind
	switch strings.TrimSpace(r.Match) {
	case "exact":
		kind = atomics.MatchExact
	case "arch":
		kind = atomics.MatchArch
	case "":
		return atomics.Rule{}, fmt.Errorf("missing match (expected exact|arch)")
	default:
		return atomics.Rule{}, fmt.Errorf("invalid match %q (expected exact|arch)", r.Match)
	}
	pattern := strings.TrimSpace(r.Pattern)
	if pattern == "" {
		return atomics.Rule{}, fmt.Errorf("missing pattern")
	}
	if !r.None && len(r.Missing) == 0 {
		return atomics.Rule{}, fmt.Errorf("rule downgrades nothing (set none or missing)")
	}
	if r.None && len(r.Missing) > 0 {
		return atomics.Rule{}, fmt.Errorf("none and missing are mutually exclusive")
	}
	widths := make([]atomics.Width, 0, len(r.Missing))
	for _, tok := range r.Missing {
		w, err := atomics.ParseWidth(tok)
		if err != nil {
			return atomics.Rule{}, err
		}
		widths = append(widths, w)
	}
	return atomics.Rule{
		Match:   kind,
		Pattern: pattern,
		None:    r.None,
		Missing: widths,
		Note:    r.Note,
	}, nil
}
