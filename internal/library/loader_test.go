package library

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accountsCSV = "AccountId,AccountName,Website\n001,Acme Corp,https://acme.com\n002,No Website,\n"
	aliasCSV    = "InputDomain,CanonicalDomain\nacmemail.com,acme.com\n"
	contactsCSV = "ContactId,AccountId,Email\nC1,001,a@acme.com\n"
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (m *memCache) GetCache(_ context.Context, key string) ([]byte, bool, error) {
	payload, ok := m.entries[key]
	return payload, ok, nil
}

func (m *memCache) SetCache(_ context.Context, key string, payload []byte, _ time.Duration) error {
	m.entries[key] = payload
	return nil
}

func libraryServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			if hits != nil {
				hits.Add(1)
			}
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/accounts.csv", serve(accountsCSV))
	mux.HandleFunc("/alias.csv", serve(aliasCSV))
	mux.HandleFunc("/contacts.csv", serve(contactsCSV))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testSources(base string, withContacts bool) *Sources {
	s := &Sources{Sources: map[string]Source{
		SourceAccounts: {
			URL:             base + "/accounts.csv",
			RequiredColumns: []string{"AccountId", "AccountName", "Website"},
		},
		SourceAlias: {
			URL:             base + "/alias.csv",
			RequiredColumns: []string{"InputDomain", "CanonicalDomain"},
		},
	}}
	if withContacts {
		s.Sources[SourceContacts] = Source{URL: base + "/contacts.csv"}
	}
	return s
}

func testFetcher() *Fetcher {
	return NewFetcher(FetchOptions{Timeout: 5 * time.Second, MaxRetries: 1, RPS: 1000})
}

func TestLoader_Load(t *testing.T) {
	srv := libraryServer(t, nil)
	loader := NewLoader(testSources(srv.URL, true), testFetcher(), nil, time.Minute)

	lib, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, lib.Accounts, 2)
	assert.Equal(t, "001", lib.Accounts[0].ID)
	assert.Equal(t, "Acme Corp", lib.Accounts[0].Name)
	assert.Equal(t, "https://acme.com", lib.Accounts[0].Website)
	assert.Equal(t, 2, lib.AccountRowsTotal)

	require.Len(t, lib.Aliases, 1)
	assert.Equal(t, "acmemail.com", lib.Aliases[0].InputDomain)
	assert.Equal(t, "acme.com", lib.Aliases[0].CanonicalDomain)

	require.Len(t, lib.Contacts, 1)
	assert.Equal(t, "a@acme.com", lib.Contacts[0].Email)
}

func TestLoader_CacheAvoidsRefetch(t *testing.T) {
	var hits atomic.Int64
	srv := libraryServer(t, &hits)
	cache := newMemCache()

	loader := NewLoader(testSources(srv.URL, false), testFetcher(), cache, time.Minute)
	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	first := hits.Load()
	assert.Equal(t, int64(2), first)

	// Second load should be served entirely from cache.
	loader = NewLoader(testSources(srv.URL, false), testFetcher(), cache, time.Minute)
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, hits.Load())
}

func TestLoader_BypassRefetches(t *testing.T) {
	var hits atomic.Int64
	srv := libraryServer(t, &hits)
	cache := newMemCache()

	loader := NewLoader(testSources(srv.URL, false), testFetcher(), cache, time.Minute)
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	loader = NewLoader(testSources(srv.URL, false), testFetcher(), cache, time.Minute)
	loader.Bypass()
	_, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), hits.Load())
}

func TestLoader_MissingRequiredColumns(t *testing.T) {
	srv := libraryServer(t, nil)
	sources := testSources(srv.URL, false)
	src := sources.Sources[SourceAccounts]
	src.RequiredColumns = append(src.RequiredColumns, "Industry")
	sources.Sources[SourceAccounts] = src

	loader := NewLoader(sources, testFetcher(), nil, time.Minute)
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Industry")
}

func TestLoader_ContactsFailureIsNonFatal(t *testing.T) {
	srv := libraryServer(t, nil)
	sources := testSources(srv.URL, false)
	sources.Sources[SourceContacts] = Source{URL: srv.URL + "/missing.csv"}

	loader := NewLoader(sources, testFetcher(), nil, time.Minute)
	lib, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lib.Contacts)
}

func TestLoader_FetchErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	loader := NewLoader(testSources(srv.URL, false), testFetcher(), nil, time.Minute)
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(FetchOptions{Timeout: 5 * time.Second, MaxRetries: 3, RPS: 1000})
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetcher_NonRetryableStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	f := testFetcher()
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
