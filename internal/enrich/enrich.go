package enrich

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/lead-enricher/internal/model"
	"github.com/sells-group/lead-enricher/internal/table"
)

// Columns appended to the uploaded batch, in export order.
const (
	ColEmailDomainRaw        = "EmailDomainRaw"
	ColEmailDomainNormalized = "EmailDomainNormalized"
	ColDomainCanonical       = "DomainCanonical"
	ColSuggestedAccountID    = "SuggestedAccountId"
	ColSuggestedAccountName  = "SuggestedAccountName"
	ColMatchReason           = "MatchReason"
	ColMatchConfidence       = "MatchConfidence"
	ColMatchCandidatesCount  = "MatchCandidatesCount"
	ColMatchCandidates       = "MatchCandidates"
	ColIsPotentialDuplicate  = "IsPotentialDuplicate"
	ColDuplicateGroupID      = "DuplicateGroupId"
	ColDuplicateReason       = "DuplicateReason"
)

// Summary is the per-run outcome breakdown.
type Summary struct {
	Leads      int `json:"leads"`
	Matched    int `json:"matched"`
	Ambiguous  int `json:"ambiguous"`
	Unmatched  int `json:"unmatched"`
	Duplicates int `json:"duplicates"`
}

// Result is the full output of one enrichment run: the annotated batch plus
// the review views sliced from it.
type Result struct {
	// Enriched is the uploaded batch with match and duplicate columns
	// appended, one row per lead in upload order.
	Enriched *table.Table
	// Matched holds rows with High confidence.
	Matched *table.Table
	// Ambiguous holds rows whose domain hit two or more accounts.
	Ambiguous *table.Table
	// Unmatched holds NoMatch, NoEmailDomain, and PersonalEmail rows.
	Unmatched *table.Table
	// Duplicates holds only the duplicate-flagged rows. Empty (but with
	// the full header) when the batch has no duplicates.
	Duplicates *table.Table

	Summary Summary
}

// Run classifies every lead in the batch against the account directory,
// annotates each row, partitions the batch into review views, and flags
// in-batch duplicates. The input table is not modified.
//
// Duplicate grouping is orthogonal to matching: a High-confidence row can
// still carry a duplicate flag.
func Run(leads *table.Table, emailCol string, accounts []model.Account, rules []model.AliasRule, opts Options) (*Result, error) {
	log := zap.L().With(zap.String("component", "enrich"))

	classifier := NewClassifier(accounts, rules, opts)
	log.Debug("classifier ready",
		zap.Int("accounts_indexed", classifier.index.Size()),
		zap.Int("alias_rules", len(classifier.aliases)),
	)

	work := cloneTable(leads)
	n := work.Len()

	outcomes := make([]model.MatchOutcome, n)
	for i := 0; i < n; i++ {
		outcomes[i] = classifier.Classify(work.Value(i, emailCol))
	}

	flags := GroupDuplicates(work.Column(emailCol))

	if err := annotate(work, outcomes, flags); err != nil {
		return nil, err
	}

	result := &Result{
		Enriched: work,
		Matched: work.Filter(func(i int) bool {
			return outcomes[i].Confidence == model.ConfidenceHigh
		}),
		Ambiguous: work.Filter(func(i int) bool {
			return outcomes[i].Reason == model.ReasonAmbiguous
		}),
		Unmatched: work.Filter(func(i int) bool {
			switch outcomes[i].Reason {
			case model.ReasonNoMatch, model.ReasonNoEmailDomain, model.ReasonPersonalEmail:
				return true
			}
			return false
		}),
		Duplicates: work.Filter(func(i int) bool {
			return flags[i].IsDuplicate
		}),
	}
	result.Summary = Summary{
		Leads:      n,
		Matched:    result.Matched.Len(),
		Ambiguous:  result.Ambiguous.Len(),
		Unmatched:  result.Unmatched.Len(),
		Duplicates: result.Duplicates.Len(),
	}

	log.Info("enrichment complete",
		zap.Int("leads", result.Summary.Leads),
		zap.Int("matched", result.Summary.Matched),
		zap.Int("ambiguous", result.Summary.Ambiguous),
		zap.Int("unmatched", result.Summary.Unmatched),
		zap.Int("duplicates", result.Summary.Duplicates),
	)

	return result, nil
}

// annotate appends the match and duplicate columns to the batch.
func annotate(t *table.Table, outcomes []model.MatchOutcome, flags []model.DuplicateFlag) error {
	n := t.Len()
	cols := map[string][]string{}
	for _, name := range []string{
		ColEmailDomainRaw, ColEmailDomainNormalized, ColDomainCanonical,
		ColSuggestedAccountID, ColSuggestedAccountName,
		ColMatchReason, ColMatchConfidence, ColMatchCandidatesCount, ColMatchCandidates,
		ColIsPotentialDuplicate, ColDuplicateGroupID, ColDuplicateReason,
	} {
		cols[name] = make([]string, n)
	}

	for i := 0; i < n; i++ {
		o := outcomes[i]
		cols[ColEmailDomainRaw][i] = o.EmailDomainRaw
		cols[ColEmailDomainNormalized][i] = o.EmailDomainNormalized
		cols[ColDomainCanonical][i] = o.DomainCanonical
		if o.Suggested != nil {
			cols[ColSuggestedAccountID][i] = o.Suggested.ID
			cols[ColSuggestedAccountName][i] = o.Suggested.Name
		}
		cols[ColMatchReason][i] = string(o.Reason)
		cols[ColMatchConfidence][i] = string(o.Confidence)
		cols[ColMatchCandidatesCount][i] = strconv.Itoa(o.CandidateCount)
		cols[ColMatchCandidates][i] = model.PackCandidates(o.Candidates)

		f := flags[i]
		cols[ColIsPotentialDuplicate][i] = strconv.FormatBool(f.IsDuplicate)
		cols[ColDuplicateGroupID][i] = f.GroupID
		cols[ColDuplicateReason][i] = f.Reason
	}

	for _, name := range []string{
		ColEmailDomainRaw, ColEmailDomainNormalized, ColDomainCanonical,
		ColSuggestedAccountID, ColSuggestedAccountName,
		ColMatchReason, ColMatchConfidence, ColMatchCandidatesCount, ColMatchCandidates,
		ColIsPotentialDuplicate, ColDuplicateGroupID, ColDuplicateReason,
	} {
		if err := t.AddColumn(name, cols[name]); err != nil {
			return err
		}
	}
	return nil
}

// cloneTable deep-copies header and rows so annotation never touches the
// caller's batch.
func cloneTable(t *table.Table) *table.Table {
	header := make([]string, len(t.Header))
	copy(header, t.Header)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}
	return table.New(header, rows)
}
