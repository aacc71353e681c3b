// Package model defines the typed records that flow through an enrichment run.
package model

// Account is one row of the external account directory (Salesforce Accounts
// or a published CSV export of them). Read-only to the enrichment core.
type Account struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`

	// Domain is the normalized website domain. Accounts with an empty
	// Domain can never match and are excluded from the account index.
	Domain string `json:"domain,omitempty"`
}

// AliasRule maps an observed domain variant to the canonical domain it
// should resolve to. Both sides are stored normalized.
type AliasRule struct {
	InputDomain     string `json:"input_domain"`
	CanonicalDomain string `json:"canonical_domain"`
}

// Contact is one row of the optional contacts directory. Loaded for library
// status reporting only; not consulted during matching.
type Contact struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id,omitempty"`
	Email     string `json:"email,omitempty"`
}
