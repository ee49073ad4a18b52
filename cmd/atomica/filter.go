package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"atomica/internal/atomics"
	"atomica/internal/cfgfile"
	"atomica/internal/guard"
)

var filterCmd = &cobra.Command{
	Use:   "filter [flags] file.go...",
	Short: "Strip declarations the target cannot support",
	Long: `Filter reads Go source files carrying //atomica:requires guard
comments and writes them back with every declaration elided whose
required atomic width the target lacks. Elision is total: neither the
declaration nor its name survives in the output. With a single input
file and no --out, the result goes to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().String("out", "", "output directory (defaults to stdout for one file)")
}

func runFilter(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	if outDir == "" && len(args) > 1 {
		return fmt.Errorf("--out is required with more than one input file")
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

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		res, err := guard.Filter(path, src, set)
		if err != nil {
			return err
		}
		if outDir == "" {
			if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
				return err
			}
		} else {
			dst := filepath.Join(outDir, filepath.Base(path))
			if _, err := cfgfile.Write(dst, res.Output); err != nil {
				return fmt.Errorf("failed to write %s: %w", dst, err)
			}
		}
		if !quiet(cmd) && len(res.Elided) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: elided %v\n", path, res.Elided)
		}
	}
	return nil
}
