package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atomica/internal/atomics"
	"atomica/internal/cache"
	"atomica/internal/cfgfile"
)

var genCmd = &cobra.Command{
	Use:   "gen [flags]",
	Short: "Write the generated configuration file",
	Long: `Gen probes the target and writes a Go constants file recording which
atomic widths are available. The file is the single configuration
artifact downstream code consumes; it is produced before the main
build and never mutated afterwards.`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	genCmd.Flags().String("out", "atomic_cfg.go", "output path for the generated file")
	genCmd.Flags().String("package", cfgfile.DefaultPackage, "package name for the generated file")
	genCmd.Flags().Bool("no-cache", false, "skip the generation cache")
}

func runGen(cmd *cobra.Command, args []string) error {
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	pkg, err := cmd.Flags().GetString("package")
	if err != nil {
		return fmt.Errorf("failed to get package flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	tr, err := resolveTarget(cmd)
	if err != nil {
		return err
	}
	extra, err := loadOverrides(cmd)
	if err != nil {
		return err
	}

	set := atomics.Probe(tr, extra...)
	data := cfgfile.Render(pkg, tr, set)

	var disk *cache.Disk
	if !noCache {
		// Cache trouble never fails generation; it only costs a rewrite.
		disk, _ = cache.Open("atomica")
	}
	rules := append(atomics.BuiltinRules(), extra...)
	key := cache.Key(tr.Raw, rules, pkg)

	if disk != nil {
		var cached cache.Payload
		if hit, err := disk.Get(key, &cached); err == nil && hit && cached.Matches(data) {
			if changed, err := cfgfile.Write(outPath, data); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			} else if !changed && !quiet(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is up to date\n", outPath)
			}
			return nil
		}
	}

	if _, err := cfgfile.Write(outPath, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if disk != nil {
		if payload, err := cache.NewPayload(tr.Raw, set, data); err == nil {
			_ = disk.Put(key, payload)
		}
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s for %s\n", outPath, tr.Raw)
	}
	return nil
}
