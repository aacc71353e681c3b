package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmailDomain_Empty(t *testing.T) {
	assert.Equal(t, "", ExtractEmailDomain(""))
	assert.Equal(t, "", ExtractEmailDomain("   "))
}

func TestExtractEmailDomain_NoAtSign(t *testing.T) {
	assert.Equal(t, "", ExtractEmailDomain("not-an-email"))
	assert.Equal(t, "", ExtractEmailDomain("acme.com"))
}

func TestExtractEmailDomain_CaseFolded(t *testing.T) {
	assert.Equal(t, "sub.example.com", ExtractEmailDomain("user@Sub.Example.COM"))
}

func TestExtractEmailDomain_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "acme.com", ExtractEmailDomain("  a@acme.com  "))
}

func TestExtractEmailDomain_MultipleAtSigns(t *testing.T) {
	// Rightmost segment wins.
	assert.Equal(t, "acme.com", ExtractEmailDomain("weird@stuff@acme.com"))
}

func TestNormalizeDomain_Empty(t *testing.T) {
	assert.Equal(t, "", NormalizeDomain("", true))
	assert.Equal(t, "", NormalizeDomain("   ", true))
	assert.Equal(t, "", NormalizeDomain("https://", true))
}

func TestNormalizeDomain_StripsSchemeWWWAndPath(t *testing.T) {
	assert.Equal(t, "acme.com", NormalizeDomain("https://www.Acme.com/path?x=1", true))
	assert.Equal(t, "acme.com", NormalizeDomain("http://acme.com/", true))
	assert.Equal(t, "acme.com", NormalizeDomain("acme.com#section", true))
	assert.Equal(t, "acme.com", NormalizeDomain("acme.com?utm=1", true))
}

func TestNormalizeDomain_CollapseSubdomains(t *testing.T) {
	assert.Equal(t, "acme.com", NormalizeDomain("mail.eu.acme.com", true))
	assert.Equal(t, "mail.eu.acme.com", NormalizeDomain("mail.eu.acme.com", false))
}

func TestNormalizeDomain_TwoLabelsNotCollapsed(t *testing.T) {
	assert.Equal(t, "acme.com", NormalizeDomain("acme.com", true))
}

func TestNormalizeDomain_KnownMultiLabelSuffixLimitation(t *testing.T) {
	// Documented heuristic: three or more labels always collapse to the
	// last two, even when those two are a public suffix.
	assert.Equal(t, "co.uk", NormalizeDomain("acme.co.uk", true))
	assert.Equal(t, "acme.co.uk", NormalizeDomain("acme.co.uk", false))
}

func TestNormalizeDomain_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.Acme.com/path?x=1",
		"mail.eu.acme.com",
		"acme.co.uk",
		"ACME.COM",
		"",
	}
	for _, collapse := range []bool{true, false} {
		for _, in := range inputs {
			once := NormalizeDomain(in, collapse)
			assert.Equal(t, once, NormalizeDomain(once, collapse), "input %q collapse=%v", in, collapse)
		}
	}
}

func TestNormalizeWebsiteToDomain(t *testing.T) {
	assert.Equal(t, "acme.com", NormalizeWebsiteToDomain("https://www.acme.com/about", true))
	assert.Equal(t, "", NormalizeWebsiteToDomain("", true))
}
