package model

import "time"

// RunSummary records the bookkeeping of one enrichment run: how many leads
// came in, how the outcomes broke down, and which toggles were active.
// Individual match decisions are intentionally not persisted.
type RunSummary struct {
	ID                       string    `json:"id"`
	LeadFile                 string    `json:"lead_file"`
	EmailColumn              string    `json:"email_column"`
	LeadCount                int       `json:"lead_count"`
	MatchedCount             int       `json:"matched_count"`
	AmbiguousCount           int       `json:"ambiguous_count"`
	UnmatchedCount           int       `json:"unmatched_count"`
	DuplicateCount           int       `json:"duplicate_count"`
	CollapseSubdomains       bool      `json:"collapse_subdomains"`
	TreatPersonalAsUnmatched bool      `json:"treat_personal_as_unmatched"`
	OutputDir                string    `json:"output_dir,omitempty"`
	CreatedAt                time.Time `json:"created_at"`
}
