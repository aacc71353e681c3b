package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/enrich"
	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/table"
)

var (
	enrichLeads      string
	enrichEmailCol   string
	enrichCompanyCol string
	enrichOutDir     string
	enrichCharset    string
	enrichRefresh    bool
	enrichSource     string
)

const (
	outEnriched   = "enriched_leads.csv"
	outAmbiguous  = "ambiguous_review.csv"
	outDuplicates = "dedupe_suggestions.csv"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a lead file against the account directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		if enrichSource != "" {
			cfg.Library.Source = enrichSource
		}

		lib, err := loadLibrary(ctx, st, enrichRefresh)
		if err != nil {
			return err
		}

		leads, err := readLeads(enrichLeads, enrichCharset)
		if err != nil {
			return err
		}

		required := []string{enrichEmailCol}
		if enrichCompanyCol != "" {
			required = append(required, enrichCompanyCol)
		}
		if missing := leads.RequireColumns(required...); len(missing) > 0 {
			return eris.Errorf("enrich: lead file is missing columns %v", missing)
		}

		opts := enrich.Options{
			CollapseSubdomains:       cfg.Enrich.CollapseSubdomains,
			TreatPersonalAsUnmatched: cfg.Enrich.TreatPersonalAsUnmatched,
		}
		if cmd.Flags().Changed("collapse-subdomains") {
			opts.CollapseSubdomains, _ = cmd.Flags().GetBool("collapse-subdomains")
		}
		if cmd.Flags().Changed("match-personal") {
			matchPersonal, _ := cmd.Flags().GetBool("match-personal")
			opts.TreatPersonalAsUnmatched = !matchPersonal
		}

		res, err := enrich.Run(leads, enrichEmailCol, lib.Accounts, lib.Aliases, opts)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(enrichOutDir, 0o755); err != nil {
			return eris.Wrap(err, "enrich: create output dir")
		}
		outputs := []struct {
			name string
			tbl  *table.Table
		}{
			{outEnriched, res.Enriched},
			{outAmbiguous, res.Ambiguous},
			{outDuplicates, res.Duplicates},
		}
		for _, out := range outputs {
			path := filepath.Join(enrichOutDir, out.name)
			if err := table.WriteCSVFile(out.tbl, path); err != nil {
				return err
			}
		}

		run, err := st.RecordRun(ctx, model.RunSummary{
			LeadFile:                 filepath.Base(enrichLeads),
			EmailColumn:              enrichEmailCol,
			LeadCount:                res.Summary.Leads,
			MatchedCount:             res.Summary.Matched,
			AmbiguousCount:           res.Summary.Ambiguous,
			UnmatchedCount:           res.Summary.Unmatched,
			DuplicateCount:           res.Summary.Duplicates,
			CollapseSubdomains:       opts.CollapseSubdomains,
			TreatPersonalAsUnmatched: opts.TreatPersonalAsUnmatched,
			OutputDir:                enrichOutDir,
		})
		if err != nil {
			return eris.Wrap(err, "record run")
		}

		zap.L().Info("enrichment complete",
			zap.String("run_id", run.ID),
			zap.Int("leads", res.Summary.Leads),
			zap.Int("matched", res.Summary.Matched),
			zap.Int("ambiguous", res.Summary.Ambiguous),
			zap.Int("unmatched", res.Summary.Unmatched),
			zap.Int("duplicates", res.Summary.Duplicates),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// readLeads reads the uploaded lead file, dispatching on extension. Charset
// applies to CSV only; XLSX carries its own encoding.
func readLeads(path, charset string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return table.ReadXLSXFile(path)
	}
	return table.ReadCSVFile(path, table.CSVOptions{Charset: charset, LazyQuotes: true})
}

func init() {
	enrichCmd.Flags().StringVar(&enrichLeads, "leads", "", "lead file to enrich, CSV or XLSX (required)")
	enrichCmd.Flags().StringVar(&enrichEmailCol, "email-column", "Email", "column holding lead email addresses")
	enrichCmd.Flags().StringVar(&enrichCompanyCol, "company-column", "", "column holding lead company names (validated when set)")
	enrichCmd.Flags().StringVar(&enrichOutDir, "output-dir", "out", "directory for exported CSVs")
	enrichCmd.Flags().StringVar(&enrichCharset, "charset", "", "lead CSV charset (e.g. windows-1252); default UTF-8")
	enrichCmd.Flags().BoolVar(&enrichRefresh, "refresh", false, "ignore the cached directory and re-fetch it")
	enrichCmd.Flags().StringVar(&enrichSource, "source", "", "account source override: csv or salesforce")
	enrichCmd.Flags().Bool("collapse-subdomains", true, "collapse lead domains to their last two labels")
	enrichCmd.Flags().Bool("match-personal", false, "let personal email domains match accounts")
	_ = enrichCmd.MarkFlagRequired("leads")
	rootCmd.AddCommand(enrichCmd)
}
