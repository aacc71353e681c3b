package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-enricher/internal/store"
	sfpkg "github.com/sells-group/lead-enricher/pkg/salesforce"
)

// initStore opens the run-history database from config.
func initStore(_ context.Context) (*store.Store, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	return st, nil
}

// initSalesforce builds a JWT-authenticated Salesforce client from config.
func initSalesforce() (sfpkg.Client, error) {
	return sfpkg.NewJWT(sfpkg.Creds{
		ClientID: cfg.Salesforce.ClientID,
		Username: cfg.Salesforce.Username,
		KeyPath:  cfg.Salesforce.KeyPath,
		LoginURL: cfg.Salesforce.LoginURL,
	})
}
