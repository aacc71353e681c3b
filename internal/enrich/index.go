package enrich

import (
	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/normalize"
)

// AccountIndex is a multimap from normalized website domain to the accounts
// carrying that domain, in directory order.
type AccountIndex map[string][]model.Account

// BuildAccountIndex normalizes each account's website and buckets accounts
// by the resulting domain. Accounts whose website does not resolve to a
// domain are dropped: they can never match. Directory order is preserved
// within each bucket so ambiguous candidate lists are stable.
func BuildAccountIndex(accounts []model.Account, collapseSubdomains bool) AccountIndex {
	idx := make(AccountIndex)
	for _, a := range accounts {
		domain := normalize.NormalizeWebsiteToDomain(a.Website, collapseSubdomains)
		if domain == "" {
			continue
		}
		a.Domain = domain
		idx[domain] = append(idx[domain], a)
	}
	return idx
}

// Size returns the number of indexed accounts across all domains.
func (idx AccountIndex) Size() int {
	n := 0
	for _, bucket := range idx {
		n += len(bucket)
	}
	return n
}
