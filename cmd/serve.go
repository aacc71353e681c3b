package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/enrich"
	"github.com/sells-group/lead-enricher/internal/store"
	"github.com/sells-group/lead-enricher/internal/table"
)

var servePort int

type enrichRequest struct {
	Header      []string   `json:"header"`
	Rows        [][]string `json:"rows"`
	EmailColumn string     `json:"email_column"`
	// Toggle overrides; config defaults apply when omitted.
	CollapseSubdomains *bool `json:"collapse_subdomains,omitempty"`
	MatchPersonal      *bool `json:"match_personal,omitempty"`
}

type enrichResponse struct {
	Header  []string       `json:"header"`
	Rows    [][]string     `json:"rows"`
	Summary enrich.Summary `json:"summary"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for enrichment requests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		mux := newServeMux(st)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newServeMux(st *store.Store) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /enrich", func(w http.ResponseWriter, r *http.Request) {
		var req enrichRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.EmailColumn == "" {
			http.Error(w, `{"error":"email_column is required"}`, http.StatusBadRequest)
			return
		}

		leads := table.New(req.Header, req.Rows)
		if missing := leads.RequireColumns(req.EmailColumn); len(missing) > 0 {
			http.Error(w, `{"error":"email_column not found in header"}`, http.StatusBadRequest)
			return
		}

		// The loader's cache keeps repeated requests from re-fetching the
		// directory inside the TTL window.
		lib, err := loadLibrary(r.Context(), st, false)
		if err != nil {
			zap.L().Error("library load failed", zap.Error(err))
			http.Error(w, `{"error":"library unavailable"}`, http.StatusBadGateway)
			return
		}

		opts := enrich.Options{
			CollapseSubdomains:       cfg.Enrich.CollapseSubdomains,
			TreatPersonalAsUnmatched: cfg.Enrich.TreatPersonalAsUnmatched,
		}
		if req.CollapseSubdomains != nil {
			opts.CollapseSubdomains = *req.CollapseSubdomains
		}
		if req.MatchPersonal != nil {
			opts.TreatPersonalAsUnmatched = !*req.MatchPersonal
		}

		res, err := enrich.Run(leads, req.EmailColumn, lib.Accounts, lib.Aliases, opts)
		if err != nil {
			zap.L().Error("enrichment failed", zap.Error(err))
			http.Error(w, `{"error":"enrichment failed"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(enrichResponse{
			Header:  res.Enriched.Header,
			Rows:    res.Enriched.Rows,
			Summary: res.Summary,
		})
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
