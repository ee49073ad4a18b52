// Package main implements the atomica CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"atomica/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "atomica",
	Short: "Target atomic-capability probe and code generator",
	Long: `atomica maps a target identifier to the atomic instruction widths
the target supports and projects that into build directives, a generated
configuration file, or filtered source.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("target", "", "target identifier (defaults to $TARGET)")
	rootCmd.PersistentFlags().String("overrides", "", "path to a rule overrides file (defaults to ./atomica.toml when present)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
