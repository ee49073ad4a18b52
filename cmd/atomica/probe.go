package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"atomica/internal/atomics"
)

var probeCmd = &cobra.Command{
	Use:   "probe [flags]",
	Short: "Print build directives for the target",
	Long: `Probe maps the target identifier to its atomic capability set and
prints one directive per missing width to stdout. A fully capable
target prints nothing: presence is the default, directives mark
absence.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().Bool("verbose", false, "also print a capability summary to stderr")
}

func runProbe(cmd *cobra.Command, args []string) error {
	tr, err := resolveTarget(cmd)
	if err != nil {
		return err
	}
	extra, err := loadOverrides(cmd)
	if err != nil {
		return err
	}

	set := atomics.Probe(tr, extra...)
	for _, d := range atomics.Directives(set) {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if verbose && !quiet(cmd) {
		printSummary(cmd, tr.Raw, set)
	}
	return nil
}

func printSummary(cmd *cobra.Command, targetRaw string, set atomics.Set) {
	present := color.New(color.FgGreen)
	absent := color.New(color.FgRed)
	if !useColor(cmd, os.Stderr) {
		present.DisableColor()
		absent.DisableColor()
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", targetRaw)
	for _, w := range atomics.Widths() {
		if set.Has(w) {
			fmt.Fprintf(cmd.ErrOrStderr(), "  atomic %-4s %s\n", w, present.Sprint("present"))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "  atomic %-4s %s\n", w, absent.Sprint("missing"))
		}
	}
}
