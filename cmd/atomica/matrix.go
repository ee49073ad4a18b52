package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"atomica/internal/atomics"
	"atomica/internal/target"
	"atomica/internal/ui"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix [flags] [target...]",
	Short: "Probe several targets and render a capability table",
	Long: `Matrix probes every target given as an argument or listed in --file
(one identifier per line, # starts a comment) and renders a
targets-by-widths table.`,
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().String("file", "", "file listing target identifiers, one per line")
	matrixCmd.Flags().Int("jobs", 0, "number of concurrent probes (0 = GOMAXPROCS)")
}

func runMatrix(cmd *cobra.Command, args []string) error {
	listPath, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	targets := append([]string(nil), args...)
	if listPath != "" {
		fromFile, err := readTargetsFile(listPath)
		if err != nil {
			return err
		}
		targets = append(targets, fromFile...)
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets given (pass identifiers or --file)")
	}

	extra, err := loadOverrides(cmd)
	if err != nil {
		return err
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns a distinct index, so no mutex is needed.
	sets := make([]atomics.Set, len(targets))
	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(min(jobs, len(targets)))

	for i, raw := range targets {
		i, raw := i, raw
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			tr, err := target.Parse(raw)
			if err != nil {
				return err
			}
			sets[i] = atomics.Probe(tr, extra...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write([]byte(ui.RenderMatrix(targets, sets, useColor(cmd, os.Stdout))))
	return err
}

// readTargetsFile parses a targets list: one identifier per line,
// blank lines and #-comments ignored.
func readTargetsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open targets file: %w", err)
	}
	defer f.Close()

	var targets []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	return targets, nil
}
