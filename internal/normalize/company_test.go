package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCompanyName_Empty(t *testing.T) {
	assert.Equal(t, "", CleanCompanyName(""))
	assert.Equal(t, "", CleanCompanyName("   "))
}

func TestCleanCompanyName_StripsSuffixes(t *testing.T) {
	assert.Equal(t, "acme", CleanCompanyName("Acme Inc"))
	assert.Equal(t, "acme", CleanCompanyName("Acme LLC"))
	assert.Equal(t, "acme", CleanCompanyName("ACME Corporation"))
	assert.Equal(t, "acme", CleanCompanyName("Acme GmbH"))
}

func TestCleanCompanyName_StripsPunctuation(t *testing.T) {
	assert.Equal(t, "smith jones", CleanCompanyName("Smith & Jones, Ltd."))
}

func TestCleanCompanyName_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "acme widgets", CleanCompanyName("  Acme   Widgets  Co.  "))
	// Single tabs and newlines collapse to one space too.
	assert.Equal(t, "acme widgets", CleanCompanyName("Acme\tWidgets"))
	assert.Equal(t, "acme widgets", CleanCompanyName("Acme\nWidgets"))
}
