package library

import (
	"bytes"
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/table"
)

// Account directory column names, matching the Salesforce export headers.
const (
	ColAccountID   = "AccountId"
	ColAccountName = "AccountName"
	ColWebsite     = "Website"
)

// Alias directory column names.
const (
	ColInputDomain     = "InputDomain"
	ColCanonicalDomain = "CanonicalDomain"
)

// Contacts directory column names.
const (
	ColContactID    = "ContactId"
	ColContactEmail = "Email"
)

// Cache is the time-boxed payload cache backing the loader. Satisfied by
// *store.Store.
type Cache interface {
	GetCache(ctx context.Context, key string) ([]byte, bool, error)
	SetCache(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Library is the loaded external directory set.
type Library struct {
	Accounts []model.Account
	Aliases  []model.AliasRule
	// Contacts is populated only when the optional contacts source is
	// configured and loads cleanly; it is informational.
	Contacts []model.Contact

	// AccountRowsTotal counts directory rows before the no-website drop.
	AccountRowsTotal int
}

// Loader fetches, caches, and parses the library tables.
type Loader struct {
	sources *Sources
	fetcher *Fetcher
	cache   Cache
	ttl     time.Duration
	// bypass skips cache reads (explicit refresh); fresh payloads are
	// still written back.
	bypass bool
}

// NewLoader creates a Loader. cache may be nil to disable caching.
func NewLoader(sources *Sources, fetcher *Fetcher, cache Cache, ttl time.Duration) *Loader {
	return &Loader{sources: sources, fetcher: fetcher, cache: cache, ttl: ttl}
}

// Bypass makes the next Load ignore cached payloads.
func (l *Loader) Bypass() { l.bypass = true }

// Load fetches the account and alias tables concurrently and parses them
// into records. The optional contacts table is loaded best-effort: a broken
// contacts source logs a warning instead of failing the run.
func (l *Loader) Load(ctx context.Context) (*Library, error) {
	log := zap.L().With(zap.String("component", "library"))

	var accountsTbl, aliasTbl *table.Table

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := l.fetchTable(gCtx, SourceAccounts, l.sources.Accounts())
		if err != nil {
			return err
		}
		accountsTbl = t
		return nil
	})
	g.Go(func() error {
		t, err := l.fetchTable(gCtx, SourceAlias, l.sources.Alias())
		if err != nil {
			return err
		}
		aliasTbl = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lib := &Library{}

	accounts, total, err := parseAccounts(accountsTbl)
	if err != nil {
		return nil, err
	}
	lib.Accounts = accounts
	lib.AccountRowsTotal = total

	aliases, err := parseAliases(aliasTbl)
	if err != nil {
		return nil, err
	}
	lib.Aliases = aliases

	if src, ok := l.sources.Contacts(); ok {
		contactsTbl, err := l.fetchTable(ctx, SourceContacts, src)
		if err != nil {
			log.Warn("optional contacts source failed to load", zap.Error(err))
		} else {
			lib.Contacts = parseContacts(contactsTbl)
		}
	}

	log.Info("library loaded",
		zap.Int("accounts", len(lib.Accounts)),
		zap.Int("alias_rules", len(lib.Aliases)),
		zap.Int("contacts", len(lib.Contacts)),
	)

	return lib, nil
}

// fetchTable returns the parsed CSV for one source, consulting the cache
// unless bypassed.
func (l *Loader) fetchTable(ctx context.Context, name string, src Source) (*table.Table, error) {
	if l.cache != nil && !l.bypass {
		if payload, ok, err := l.cache.GetCache(ctx, name); err != nil {
			return nil, err
		} else if ok {
			return parseSource(name, src, payload)
		}
	}

	payload, err := l.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, eris.Wrapf(err, "library: fetch %s", name)
	}

	tbl, err := parseSource(name, src, payload)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.SetCache(ctx, name, payload, l.ttl); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// parseSource parses a fetched payload and enforces the source's declared
// required columns. This is the boundary validation; the core never sees a
// table missing its designated columns.
func parseSource(name string, src Source, payload []byte) (*table.Table, error) {
	tbl, err := table.ReadCSV(bytes.NewReader(payload), table.CSVOptions{LazyQuotes: true})
	if err != nil {
		return nil, eris.Wrapf(err, "library: parse %s", name)
	}
	if missing := tbl.RequireColumns(src.RequiredColumns...); len(missing) > 0 {
		return nil, eris.Errorf("library: %s is missing required columns %v", name, missing)
	}
	return tbl, nil
}

func parseAccounts(tbl *table.Table) ([]model.Account, int, error) {
	if missing := tbl.RequireColumns(ColAccountID, ColAccountName, ColWebsite); len(missing) > 0 {
		return nil, 0, eris.Errorf("library: accounts table is missing required columns %v", missing)
	}

	accounts := make([]model.Account, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		accounts = append(accounts, model.Account{
			ID:      tbl.Value(i, ColAccountID),
			Name:    tbl.Value(i, ColAccountName),
			Website: tbl.Value(i, ColWebsite),
		})
	}
	return accounts, tbl.Len(), nil
}

func parseAliases(tbl *table.Table) ([]model.AliasRule, error) {
	if missing := tbl.RequireColumns(ColInputDomain, ColCanonicalDomain); len(missing) > 0 {
		return nil, eris.Errorf("library: alias table is missing required columns %v", missing)
	}

	rules := make([]model.AliasRule, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		rules = append(rules, model.AliasRule{
			InputDomain:     tbl.Value(i, ColInputDomain),
			CanonicalDomain: tbl.Value(i, ColCanonicalDomain),
		})
	}
	return rules, nil
}

func parseContacts(tbl *table.Table) []model.Contact {
	contacts := make([]model.Contact, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		contacts = append(contacts, model.Contact{
			ID:        tbl.Value(i, ColContactID),
			AccountID: tbl.Value(i, ColAccountID),
			Email:     tbl.Value(i, ColContactEmail),
		})
	}
	return contacts
}
