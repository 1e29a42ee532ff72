package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edikit/edikit/internal/partner"
)

func TestPartnersAddAndList(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	require.NoError(t, RunPartnersAdd(&buf, partner.Config{
		Name:       "acme",
		Standard:   "x12",
		Qualifier:  "ZZ",
		Identifier: "ACME",
	}))
	assert.Contains(t, buf.String(), "stored partner acme")

	var list bytes.Buffer
	require.NoError(t, RunPartnersList(&list))
	assert.Contains(t, list.String(), "acme  x12 ZZ ACME")
	assert.Contains(t, list.String(), "1 partner(s)")
}

func TestPartnersAddRejectsBadStandard(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunPartnersAdd(&buf, partner.Config{Name: "acme", Standard: "tradacoms"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown standard")
}

func TestPartnersExportImportRoundTrip(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	require.NoError(t, RunPartnersAdd(&buf, partner.Config{Name: "acme", Standard: "x12", Identifier: "ACME"}))
	require.NoError(t, RunPartnersAdd(&buf, partner.Config{Name: "globex", Standard: "edifact", UseGroups: true}))

	var yamlOut bytes.Buffer
	require.NoError(t, RunPartnersExport(&yamlOut))
	assert.Contains(t, yamlOut.String(), "name: acme")
	assert.Contains(t, yamlOut.String(), "use_groups: true")

	writeSample(t, "profiles.yaml", yamlOut.String())
	storeFlag = "other.db"
	t.Cleanup(func() { storeFlag = "edikit.db" })

	var imported bytes.Buffer
	require.NoError(t, RunPartnersImport(&imported, "profiles.yaml"))
	assert.Contains(t, imported.String(), "imported 2 partner(s)")

	var list bytes.Buffer
	require.NoError(t, RunPartnersList(&list))
	assert.Contains(t, list.String(), "2 partner(s)")
}

func TestPartnersImportMissingFile(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunPartnersImport(&buf, "nope.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening nope.yaml")
}
