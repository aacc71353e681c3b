package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/enrich"
	"github.com/sells-group/lead-enricher/internal/library"
	"github.com/sells-group/lead-enricher/internal/store"
)

// loadLibrary fetches the account/alias directory. With refresh set, cached
// payloads are ignored and re-fetched. When the configured account source is
// "salesforce", accounts come from a live SOQL query instead of the published
// CSV; aliases always come from the published sheet.
func loadLibrary(ctx context.Context, st *store.Store, refresh bool) (*library.Library, error) {
	sources, err := library.LoadSources(cfg.Library.SourcesPath)
	if err != nil {
		return nil, err
	}

	fetcher := library.NewFetcher(library.FetchOptions{
		Timeout:    time.Duration(cfg.Library.FetchTimeoutSec) * time.Second,
		MaxRetries: cfg.Library.FetchRetries,
		RPS:        cfg.Library.FetchRPS,
	})

	loader := library.NewLoader(sources, fetcher, st, time.Duration(cfg.Library.CacheTTLSecs)*time.Second)
	if refresh {
		loader.Bypass()
	}

	lib, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.Library.Source == "salesforce" {
		sf, err := initSalesforce()
		if err != nil {
			return nil, err
		}
		accounts, err := library.AccountsFromSalesforce(ctx, sf)
		if err != nil {
			return nil, err
		}
		lib.Accounts = accounts
		lib.AccountRowsTotal = len(accounts)
		zap.L().Info("accounts loaded from salesforce", zap.Int("accounts", len(accounts)))
	}

	return lib, nil
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Inspect and refresh the account/alias directory",
}

var libraryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts for the loaded directory",
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

		lib, err := loadLibrary(ctx, st, false)
		if err != nil {
			return eris.Wrap(err, "library status")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tROWS")
		fmt.Fprintln(w, "------\t----")
		fmt.Fprintf(w, "accounts (with website)\t%d\n", len(lib.Accounts))
		fmt.Fprintf(w, "accounts (total)\t%d\n", lib.AccountRowsTotal)
		fmt.Fprintf(w, "alias rules\t%d\n", len(lib.Aliases))
		fmt.Fprintf(w, "personal domains\t%d\n", enrich.PersonalDomainCount())
		fmt.Fprintf(w, "contacts\t%d\n", len(lib.Contacts))
		return w.Flush()
	},
}

var libraryRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Clear the cached directory and re-fetch it",
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

		if err := st.ClearCache(ctx); err != nil {
			return eris.Wrap(err, "library refresh")
		}

		lib, err := loadLibrary(ctx, st, true)
		if err != nil {
			return eris.Wrap(err, "library refresh")
		}

		zap.L().Info("library refreshed",
			zap.Int("accounts", len(lib.Accounts)),
			zap.Int("alias_rules", len(lib.Aliases)),
		)
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryStatusCmd)
	libraryCmd.AddCommand(libraryRefreshCmd)
	rootCmd.AddCommand(libraryCmd)
}
