package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-enricher/internal/model"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded enrichment runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runs, err := st.ListRuns(ctx, runsLimit)
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// formatRunsList writes a tabular list of run summaries to w.
func formatRunsList(out io.Writer, runs []model.RunSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tFILE\tLEADS\tMATCHED\tAMBIG\tUNMATCHED\tDUPES\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-------\t-----\t---------\t-----\t-------")

	for _, r := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.LeadFile, r.LeadCount, r.MatchedCount, r.AmbiguousCount,
			r.UnmatchedCount, r.DuplicateCount,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 50, "max number of runs to display")
	rootCmd.AddCommand(runsCmd)
}
