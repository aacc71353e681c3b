// Package enrich implements the lead enrichment core: alias resolution,
// the account index, per-lead match classification, in-batch duplicate
// grouping, and the orchestrator that ties them together over a batch.
package enrich

import (
	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/normalize"
)

// AliasMap maps an observed email domain to the canonical domain it should
// be matched under.
type AliasMap map[string]string

// BuildAliasMap normalizes both sides of each alias rule and keeps only
// rules where both sides survive normalization. When two rules share an
// input domain the later one wins; this is the documented overwrite policy,
// not an error.
func BuildAliasMap(rules []model.AliasRule, collapseSubdomains bool) AliasMap {
	m := make(AliasMap, len(rules))
	for _, r := range rules {
		input := normalize.NormalizeDomain(r.InputDomain, collapseSubdomains)
		canonical := normalize.NormalizeDomain(r.CanonicalDomain, collapseSubdomains)
		if input == "" || canonical == "" {
			continue
		}
		if prev, ok := m[input]; ok && prev != canonical {
			zap.L().Debug("alias map: overwriting earlier rule",
				zap.String("input_domain", input),
				zap.String("previous", prev),
				zap.String("canonical", canonical),
			)
		}
		m[input] = canonical
	}
	return m
}

// Canonicalize resolves a normalized domain through the alias map. Domains
// without a rule pass through unchanged; an empty domain stays empty.
func (m AliasMap) Canonicalize(domain string) string {
	if domain == "" {
		return ""
	}
	if canonical, ok := m[domain]; ok {
		return canonical
	}
	return domain
}
