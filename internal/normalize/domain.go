// Package normalize converts raw email, website, and company-name strings
// into comparable keys for domain matching.
package normalize

import (
	"regexp"
	"strings"
)

var schemeRe = regexp.MustCompile(`^https?://`)

// ExtractEmailDomain returns the lowercased domain part of an email address,
// or "" when the input is empty or contains no "@". Inputs with multiple "@"
// are tolerated by taking the segment after the last one.
func ExtractEmailDomain(email string) string {
	s := strings.ToLower(strings.TrimSpace(email))
	if s == "" || !strings.Contains(s, "@") {
		return ""
	}
	parts := strings.Split(s, "@")
	return strings.TrimSpace(parts[len(parts)-1])
}

// NormalizeDomain standardizes a domain or URL-ish string into a comparable
// domain key by:
//  1. Trimming whitespace and lowercasing
//  2. Stripping a leading http:// or https:// scheme
//  3. Stripping a leading "www." label
//  4. Truncating at the first "/", "?", or "#"
//  5. Optionally collapsing subdomains to the last two labels
//     (mail.eu.acme.com -> acme.com)
//
// Returns "" when nothing remains after normalization.
//
// NOTE: the subdomain collapse is naive and is wrong for multi-label public
// suffixes (acme.co.uk collapses to co.uk). Accurate handling would need a
// public-suffix-list library; the heuristic is kept as-is on purpose.
func NormalizeDomain(raw string, collapseSubdomains bool) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return ""
	}

	d = schemeRe.ReplaceAllString(d, "")
	d = strings.TrimPrefix(d, "www.")

	// Drop path, query, and fragment.
	for _, sep := range []string{"/", "?", "#"} {
		if i := strings.Index(d, sep); i >= 0 {
			d = d[:i]
		}
	}
	d = strings.TrimSpace(d)
	if d == "" {
		return ""
	}

	if collapseSubdomains && strings.Count(d, ".") >= 2 {
		parts := strings.Split(d, ".")
		d = strings.Join(parts[len(parts)-2:], ".")
	}

	return d
}

// NormalizeWebsiteToDomain converts a website field, which may be a full URL,
// to a normalized domain key. Returns "" for missing input.
func NormalizeWebsiteToDomain(website string, collapseSubdomains bool) string {
	return NormalizeDomain(website, collapseSubdomains)
}
