package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanInterchange(t *testing.T) {
	inTempDir(t)
	writeSample(t, "order.edi", x12Sample)

	var buf bytes.Buffer
	require.NoError(t, RunValidate(&buf, "order.edi"))
	assert.Contains(t, buf.String(), "0 error(s)")
}

func TestValidate_FailsOnIntegrityErrors(t *testing.T) {
	inTempDir(t)
	bad := "UNA:+.? '" +
		"UNB+UNOA:3+SENDER+RECEIVER+210101:1200+1'" +
		"UNH+1+ORDERS:D:96A:UN'" +
		"BGM+220+PO123+9'" +
		"UNT+3+1'" +
		"UNZ+1+999'"
	writeSample(t, "bad.edi", bad)

	var buf bytes.Buffer
	err := RunValidate(&buf, "bad.edi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation with 1 error(s)")
	assert.Contains(t, buf.String(), "integrity-control-mismatch")
}

func TestValidate_FailsOnStructuralErrors(t *testing.T) {
	inTempDir(t)
	truncated := "UNA:+.? '" +
		"UNB+UNOA:3+SENDER+RECEIVER+210101:1200+1'" +
		"UNH+1+ORDERS:D:96A:UN'" +
		"BGM+220+PO123+9'"
	writeSample(t, "truncated.edi", truncated)

	var buf bytes.Buffer
	err := RunValidate(&buf, "truncated.edi")

	require.Error(t, err)
	assert.Contains(t, buf.String(), "structural-unterminated-interchange")
}
