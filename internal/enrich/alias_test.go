package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/lead-enricher/internal/model"
)

func TestBuildAliasMap_NormalizesBothSides(t *testing.T) {
	m := BuildAliasMap([]model.AliasRule{
		{InputDomain: "https://www.Acme-Mail.com/", CanonicalDomain: "ACME.COM"},
	}, true)

	assert.Equal(t, AliasMap{"acme-mail.com": "acme.com"}, m)
}

func TestBuildAliasMap_SkipsUnresolvableSides(t *testing.T) {
	m := BuildAliasMap([]model.AliasRule{
		{InputDomain: "", CanonicalDomain: "acme.com"},
		{InputDomain: "acme-mail.com", CanonicalDomain: "   "},
		{InputDomain: "https://", CanonicalDomain: "acme.com"},
	}, true)

	assert.Empty(t, m)
}

func TestBuildAliasMap_LastRuleWins(t *testing.T) {
	m := BuildAliasMap([]model.AliasRule{
		{InputDomain: "acmemail.com", CanonicalDomain: "acme.com"},
		{InputDomain: "acmemail.com", CanonicalDomain: "acme.io"},
	}, true)

	assert.Equal(t, "acme.io", m["acmemail.com"])
}

func TestBuildAliasMap_CollapseApplies(t *testing.T) {
	m := BuildAliasMap([]model.AliasRule{
		{InputDomain: "mail.eu.acme.com", CanonicalDomain: "acme.com"},
	}, true)

	// Input collapsed to acme.com, which maps to itself.
	assert.Equal(t, AliasMap{"acme.com": "acme.com"}, m)
}

func TestCanonicalize_HitAndMiss(t *testing.T) {
	m := AliasMap{"acmemail.com": "acme.com"}

	assert.Equal(t, "acme.com", m.Canonicalize("acmemail.com"))
	assert.Equal(t, "globex.com", m.Canonicalize("globex.com"))
}

func TestCanonicalize_EmptyMapIsIdentity(t *testing.T) {
	assert.Equal(t, "acme.com", AliasMap{}.Canonicalize("acme.com"))
}

func TestCanonicalize_EmptyDomainStaysEmpty(t *testing.T) {
	assert.Equal(t, "", AliasMap{"": "acme.com"}.Canonicalize(""))
}
