package salesforce

import (
	"context"

	"github.com/rotisserie/eris"
)

// Account is the slice of the Salesforce Account object the enricher needs.
type Account struct {
	ID      string `json:"Id" salesforce:"Id"`
	Name    string `json:"Name" salesforce:"Name"`
	Website string `json:"Website" salesforce:"Website"`
}

// ListAccountsWithWebsites queries every Account that has a website set.
// Accounts without a website can never match a lead domain, so they are
// filtered server-side.
func ListAccountsWithWebsites(ctx context.Context, c Client) ([]Account, error) {
	const soql = "SELECT Id, Name, Website FROM Account WHERE Website != null"

	var accounts []Account
	if err := c.Query(ctx, soql, &accounts); err != nil {
		return nil, eris.Wrap(err, "sf: list accounts")
	}
	return accounts, nil
}
