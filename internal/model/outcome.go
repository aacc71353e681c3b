package model

import "strings"

// MatchReason explains how a lead's match outcome was decided.
type MatchReason string

// Match reasons.
const (
	ReasonDomainMatch   MatchReason = "DomainMatch"
	ReasonAmbiguous     MatchReason = "Ambiguous"
	ReasonNoMatch       MatchReason = "NoMatch"
	ReasonNoEmailDomain MatchReason = "NoEmailDomain"
	ReasonPersonalEmail MatchReason = "PersonalEmail"
)

// Confidence is the certainty tier of a match outcome.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Candidate is an account whose normalized website domain equals a lead's
// canonical domain.
type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// MaxCandidates caps the candidate list carried on an ambiguous outcome.
// The uncapped total is still reported via CandidateCount.
const MaxCandidates = 10

// MatchOutcome is the per-lead classification result. Every lead receives a
// fully populated outcome; no branch of the classifier can fail.
type MatchOutcome struct {
	EmailDomainRaw        string      `json:"email_domain_raw,omitempty"`
	EmailDomainNormalized string      `json:"email_domain_normalized,omitempty"`
	DomainCanonical       string      `json:"domain_canonical,omitempty"`
	Reason                MatchReason `json:"reason"`
	Confidence            Confidence  `json:"confidence"`
	Suggested             *Candidate  `json:"suggested,omitempty"`
	CandidateCount        int         `json:"candidate_count"`
	Candidates            []Candidate `json:"candidates,omitempty"`
}

// PackCandidates serializes candidates into the exported wire form:
// "id|name|domain" entries joined by " || ". This packed string is purely an
// export convention; in-memory consumers should use the structured list.
func PackCandidates(candidates []Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	packed := make([]string, len(candidates))
	for i, c := range candidates {
		packed[i] = c.ID + "|" + c.Name + "|" + c.Domain
	}
	return strings.Join(packed, " || ")
}

// DuplicateFlag marks a lead's membership in an in-batch duplicate group.
type DuplicateFlag struct {
	IsDuplicate bool   `json:"is_duplicate"`
	GroupID     string `json:"group_id,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// DuplicateReasonEmailExact is the only duplicate detection rule currently
// implemented: exact match on the normalized email value.
const DuplicateReasonEmailExact = "EmailExact"
