package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"atomica/internal/atomics"
	"atomica/internal/overlay"
	"atomica/internal/target"
)

// resolveTarget picks the target identifier from --target, falling
// back to the TARGET environment variable. Having neither is a fatal
// configuration error: the probe cannot guess what it is building for.
func resolveTarget(cmd *cobra.Command) (target.Triple, error) {
	raw, err := cmd.Root().PersistentFlags().GetString("target")
	if err != nil {
		return target.Triple{}, fmt.Errorf("failed to get target flag: %w", err)
	}
	if raw != "" {
		return target.Parse(raw)
	}
	return target.FromEnvironment()
}

// loadOverrides loads extra downgrade rules. An explicit --overrides
// path must exist; the default atomica.toml is optional.
func loadOverrides(cmd *cobra.Command) ([]atomics.Rule, error) {
	path, err := cmd.Root().PersistentFlags().GetString("overrides")
	if err != nil {
		return nil, fmt.Errorf("failed to get overrides flag: %w", err)
	}
	if path != "" {
		return overlay.Load(path, true)
	}
	return overlay.Load(overlay.DefaultFile, false)
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
