package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/extracto/internal/runlog"
)

func newLogCommand() *cobra.Command {
	var repoDir string
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the run history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runLog(absDir, failedOnly)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "only show failed runs")

	return cmd
}

func runLog(repoRoot string, failedOnly bool) error {
	entries, err := runlog.Read(repoRoot)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tRUN\tSTATUS\tRECORDS\tWARNINGS\tSOURCE\tRESULT")
	for _, e := range entries {
		if failedOnly && e.Status != runlog.StatusFailed {
			continue
		}
		result := e.Output
		if e.Status == runlog.StatusFailed {
			result = e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), shortID(e.RunID), e.Status,
			e.Records, e.Warnings, filepath.Base(e.Source), result)
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
