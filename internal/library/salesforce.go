package library

import (
	"context"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/pkg/salesforce"
)

// AccountsFromSalesforce loads the account directory with a live SOQL query
// instead of a published CSV export. Alias rules have no Salesforce object
// and always come from the CSV source.
func AccountsFromSalesforce(ctx context.Context, client salesforce.Client) ([]model.Account, error) {
	sfAccounts, err := salesforce.ListAccountsWithWebsites(ctx, client)
	if err != nil {
		return nil, err
	}

	accounts := make([]model.Account, len(sfAccounts))
	for i, a := range sfAccounts {
		accounts[i] = model.Account{ID: a.ID, Name: a.Name, Website: a.Website}
	}
	return accounts, nil
}
