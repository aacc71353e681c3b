package enrich

import (
	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/normalize"
)

// Options are the two caller-supplied matching toggles.
type Options struct {
	// CollapseSubdomains reduces domains with three or more labels to the
	// last two before comparison (mail.acme.com -> acme.com).
	CollapseSubdomains bool
	// TreatPersonalAsUnmatched excludes consumer email providers from
	// matching instead of looking them up in the account index.
	TreatPersonalAsUnmatched bool
}

// Classifier maps a lead's email value to a match outcome. It is pure over
// immutable inputs: the same email always yields the same outcome, and
// independent leads may be classified in any order.
type Classifier struct {
	aliases AliasMap
	index   AccountIndex
	opts    Options
}

// NewClassifier builds a classifier over the account directory and alias
// rules. The alias map and account index are constructed once up front.
func NewClassifier(accounts []model.Account, rules []model.AliasRule, opts Options) *Classifier {
	return &Classifier{
		aliases: BuildAliasMap(rules, opts.CollapseSubdomains),
		index:   BuildAccountIndex(accounts, opts.CollapseSubdomains),
		opts:    opts,
	}
}

// Classify produces the match outcome for one lead email. Every branch
// yields a fully populated outcome; malformed input maps to NoEmailDomain
// rather than an error.
func (c *Classifier) Classify(email string) model.MatchOutcome {
	raw := normalize.ExtractEmailDomain(email)
	normalized := normalize.NormalizeDomain(raw, c.opts.CollapseSubdomains)
	canonical := c.aliases.Canonicalize(normalized)

	out := model.MatchOutcome{
		EmailDomainRaw:        raw,
		EmailDomainNormalized: normalized,
		DomainCanonical:       canonical,
	}

	if canonical == "" {
		out.Reason = model.ReasonNoEmailDomain
		out.Confidence = model.ConfidenceLow
		return out
	}

	if c.opts.TreatPersonalAsUnmatched && IsPersonalDomain(canonical) {
		out.Reason = model.ReasonPersonalEmail
		out.Confidence = model.ConfidenceLow
		return out
	}

	candidates := c.index[canonical]
	switch {
	case len(candidates) == 1:
		a := candidates[0]
		suggested := model.Candidate{ID: a.ID, Name: a.Name, Domain: canonical}
		out.Reason = model.ReasonDomainMatch
		out.Confidence = model.ConfidenceHigh
		out.Suggested = &suggested
		out.CandidateCount = 1
		out.Candidates = []model.Candidate{suggested}

	case len(candidates) > 1:
		out.Reason = model.ReasonAmbiguous
		out.Confidence = model.ConfidenceMedium
		// Count stays uncapped; only the carried list is truncated.
		out.CandidateCount = len(candidates)
		capped := candidates
		if len(capped) > model.MaxCandidates {
			capped = capped[:model.MaxCandidates]
		}
		out.Candidates = make([]model.Candidate, len(capped))
		for i, a := range capped {
			out.Candidates[i] = model.Candidate{ID: a.ID, Name: a.Name, Domain: canonical}
		}

	default:
		out.Reason = model.ReasonNoMatch
		out.Confidence = model.ConfidenceLow
	}

	return out
}
