package main

import (
	"os"

	"github.com/spf13/cobra"

	"atomica/internal/atomics"
	"atomica/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the downgrade rule table",
	Long: `List renders the built-in rule table plus any overrides. Targets not
matched by a rule are assumed fully capable.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	extra, err := loadOverrides(cmd)
	if err != nil {
		return err
	}
	rules := append(atomics.BuiltinRules(), extra...)
	_, err = cmd.OutOrStdout().Write([]byte(ui.RenderRules(rules, useColor(cmd, os.Stdout))))
	return err
}
