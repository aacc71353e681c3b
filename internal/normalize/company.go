package normalize

import (
	"regexp"
	"strings"
)

var (
	companySuffixRe = regexp.MustCompile(`\b(inc|inc\.|llc|l\.l\.c\.|ltd|ltd\.|limited|corp|corp\.|corporation|co|co\.|company|gmbh|s\.a\.|sa|sarl)\b`)
	punctRe         = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// CleanCompanyName lowercases a company name, strips punctuation and common
// legal suffixes (Inc, LLC, GmbH, ...), and collapses whitespace. Groundwork
// for future fuzzy company matching; the domain matcher does not use it.
func CleanCompanyName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}

	s = companySuffixRe.ReplaceAllString(s, "")
	s = punctRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
