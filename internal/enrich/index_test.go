package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-enricher/internal/model"
)

func TestBuildAccountIndex_NormalizesWebsites(t *testing.T) {
	idx := BuildAccountIndex([]model.Account{
		{ID: "001", Name: "Acme", Website: "https://www.acme.com/about"},
	}, true)

	require.Len(t, idx["acme.com"], 1)
	assert.Equal(t, "001", idx["acme.com"][0].ID)
	assert.Equal(t, "acme.com", idx["acme.com"][0].Domain)
}

func TestBuildAccountIndex_DropsAccountsWithoutDomain(t *testing.T) {
	idx := BuildAccountIndex([]model.Account{
		{ID: "001", Name: "No Website"},
		{ID: "002", Name: "Blank", Website: "   "},
		{ID: "003", Name: "Acme", Website: "acme.com"},
	}, true)

	assert.Equal(t, 1, idx.Size())
	assert.Len(t, idx["acme.com"], 1)
}

func TestBuildAccountIndex_PreservesDirectoryOrder(t *testing.T) {
	idx := BuildAccountIndex([]model.Account{
		{ID: "002", Name: "Acme East", Website: "acme.com"},
		{ID: "001", Name: "Acme West", Website: "www.acme.com"},
	}, true)

	bucket := idx["acme.com"]
	require.Len(t, bucket, 2)
	assert.Equal(t, "002", bucket[0].ID)
	assert.Equal(t, "001", bucket[1].ID)
}

func TestBuildAccountIndex_CollapseMergesSubdomains(t *testing.T) {
	accounts := []model.Account{
		{ID: "001", Name: "Acme", Website: "shop.acme.com"},
		{ID: "002", Name: "Acme HQ", Website: "acme.com"},
	}

	collapsed := BuildAccountIndex(accounts, true)
	assert.Len(t, collapsed["acme.com"], 2)

	kept := BuildAccountIndex(accounts, false)
	assert.Len(t, kept["shop.acme.com"], 1)
	assert.Len(t, kept["acme.com"], 1)
}
