package partner

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edikit/edikit/internal/edi"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "edikit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t)

	cfg := Config{
		Name:       "acme",
		Standard:   "x12",
		Qualifier:  "ZZ",
		Identifier: "ACME",
		Version:    "00401",
		LineBreaks: true,
	}
	require.NoError(t, s.Put(cfg))

	got, err := s.Get("acme")
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)
}

func TestStorePutUpdatesExisting(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(Config{Name: "acme", Standard: "x12"}))
	require.NoError(t, s.Put(Config{Name: "acme", Standard: "edifact", Version: "3"}))

	got, err := s.Get("acme")
	require.NoError(t, err)
	assert.Equal(t, "edifact", got.Standard)
	assert.Equal(t, "3", got.Version)

	all, err := s.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStoreListOrdersByName(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(Config{Name: "zeta", Standard: "x12"}))
	require.NoError(t, s.Put(Config{Name: "acme", Standard: "edifact"}))

	all, err := s.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "acme", all[0].Name)
	assert.Equal(t, "zeta", all[1].Name)
}

func TestStoreDelimitersRoundTrip(t *testing.T) {
	s := openTestStore(t)

	cfg := Config{
		Name:       "acme",
		Standard:   "edifact",
		Delimiters: &Delimiters{Element: "|", Segment: "\n"},
	}
	require.NoError(t, s.Put(cfg))

	got, err := s.Get("acme")
	require.NoError(t, err)
	require.NotNil(t, got.Delimiters)
	assert.Equal(t, "|", got.Delimiters.Element)
	assert.Equal(t, "\n", got.Delimiters.Segment)
}

func TestStoreRejectsInvalidConfig(t *testing.T) {
	s := openTestStore(t)

	err := s.Put(Config{Standard: "x12"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	err = s.Put(Config{Name: "acme", Standard: "tradacoms"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown standard")
}

func TestRecordDetectsDuplicates(t *testing.T) {
	s := openTestStore(t)

	r := Receipt{
		Standard:      "X12",
		Sender:        "SENDER",
		Receiver:      "RECEIVER",
		ControlNumber: "000000001",
		OK:            true,
	}
	dup, err := s.Record(r)
	require.NoError(t, err)
	assert.False(t, dup)

	dup, err = s.Record(r)
	require.NoError(t, err)
	assert.True(t, dup)

	receipts, err := s.Receipts()
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.NotEmpty(t, receipts[0].ID)
	assert.True(t, receipts[0].OK)
}

func TestRecordDistinctControlNumbers(t *testing.T) {
	s := openTestStore(t)

	base := Receipt{Standard: "X12", Sender: "A", Receiver: "B"}

	first := base
	first.ControlNumber = "1"
	dup, err := s.Record(first)
	require.NoError(t, err)
	assert.False(t, dup)

	second := base
	second.ControlNumber = "2"
	second.OK = false
	second.ErrorCount = 3
	dup, err = s.Record(second)
	require.NoError(t, err)
	assert.False(t, dup)

	receipts, err := s.Receipts()
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
}

func TestImportExportRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put(Config{Name: "acme", Standard: "x12", Qualifier: "ZZ", Identifier: "ACME"}))
	require.NoError(t, s.Put(Config{
		Name:       "globex",
		Standard:   "edifact",
		UseGroups:  true,
		Delimiters: &Delimiters{Element: "|"},
	}))

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))
	assert.Contains(t, buf.String(), "name: acme")
	assert.Contains(t, buf.String(), "standard: edifact")

	other := openTestStore(t)
	n, err := other.Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := other.Get("globex")
	require.NoError(t, err)
	assert.True(t, got.UseGroups)
	require.NotNil(t, got.Delimiters)
	assert.Equal(t, "|", got.Delimiters.Element)
}

func TestImportRejectsBadProfile(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Import(strings.NewReader("partners:\n  - standard: x12\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestEDIDelimitersOverlaysDefaults(t *testing.T) {
	cfg := Config{
		Name:       "acme",
		Standard:   "x12",
		Delimiters: &Delimiters{Element: "|"},
	}

	d, err := cfg.EDIDelimiters()
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, byte('|'), d.Element)
	assert.Equal(t, byte('~'), d.Segment)
}

func TestEDIDelimitersRejectsMultiChar(t *testing.T) {
	cfg := Config{
		Name:       "acme",
		Standard:   "x12",
		Delimiters: &Delimiters{Element: "||"},
	}

	_, err := cfg.EDIDelimiters()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one character")
}

func TestGenerationOptionsGroupsOnlyForEdifact(t *testing.T) {
	x12 := Config{Name: "acme", Standard: "x12", UseGroups: true}
	opts, err := x12.GenerationOptions()
	require.NoError(t, err)
	assert.Nil(t, opts.UseGroups)

	ed := Config{Name: "globex", Standard: "edifact", UseGroups: true}
	std, err := ed.EDIStandard()
	require.NoError(t, err)
	assert.Equal(t, edi.EDIFACT, std)

	opts, err = ed.GenerationOptions()
	require.NoError(t, err)
	require.NotNil(t, opts.UseGroups)
	assert.True(t, *opts.UseGroups)
}
