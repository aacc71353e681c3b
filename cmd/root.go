package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lead-enricher",
	Short: "Enrich uploaded lead lists against the account directory",
	Long:  "Matches lead email domains to account website domains (with alias mapping), flags in-file duplicates, and exports enriched, ambiguous-review, and dedupe-suggestion CSVs.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
