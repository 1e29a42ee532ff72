package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const x12Sample = "ISA*00*          *00*          *ZZ*SENDER*ZZ*RECEIVER*210101*1200*^*00401*000000001*0*P*:~" +
	"GS*PO*SENDER*RECEIVER*20210101*1200*1*X*004010~" +
	"ST*850*0001~" +
	"BEG*00*SA*PO123**20210101~" +
	"PO1*1*10*EA*9.99**VP*SKU1~" +
	"CTT*1~" +
	"SE*5*0001~" +
	"GE*1*1~" +
	"IEA*1*000000001~"

const edifactSample = "UNA:+.? '" +
	"UNB+UNOA:3+SENDER+RECEIVER+210101:1200+1'" +
	"UNH+1+ORDERS:D:96A:UN'" +
	"BGM+220+PO123+9'" +
	"UNT+3+1'" +
	"UNZ+1+1'"

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func writeSample(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func TestParse_X12Summary(t *testing.T) {
	inTempDir(t)
	writeSample(t, "order.edi", x12Sample)

	var buf bytes.Buffer
	require.NoError(t, RunParse(&buf, "order.edi", false))

	assert.Contains(t, buf.String(), "X12 interchange 000000001")
	assert.Contains(t, buf.String(), "1 transaction(s)")
	assert.Contains(t, buf.String(), "0 error(s)")
}

func TestParse_EDIFACTSummary(t *testing.T) {
	inTempDir(t)
	writeSample(t, "orders.edi", edifactSample)

	var buf bytes.Buffer
	require.NoError(t, RunParse(&buf, "orders.edi", false))

	assert.Contains(t, buf.String(), "EDIFACT interchange 1")
}

func TestParse_ReportsDiagnostics(t *testing.T) {
	inTempDir(t)
	bad := "ISA*00*          *00*          *ZZ*SENDER*ZZ*RECEIVER*210101*1200*^*00401*000000001*0*P*:~" +
		"GS*PO*SENDER*RECEIVER*20210101*1200*1*X*004010~" +
		"ST*850*0001~" +
		"SE*2*0001~" +
		"GE*1*1~" +
		"IEA*1*000000999~"
	writeSample(t, "bad.edi", bad)

	var buf bytes.Buffer
	require.NoError(t, RunParse(&buf, "bad.edi", false))

	assert.Contains(t, buf.String(), "integrity-control-mismatch")
	assert.Contains(t, buf.String(), "1 error(s)")
}

func TestParse_UnrecognizableInput(t *testing.T) {
	inTempDir(t)
	writeSample(t, "notes.txt", "hello world")

	var buf bytes.Buffer
	err := RunParse(&buf, "notes.txt", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a recognizable interchange")
	assert.Contains(t, buf.String(), "envelope-malformed")
}

func TestParse_MissingFile(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunParse(&buf, "nope.edi", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading nope.edi")
}

func TestParse_RecordFlagsDuplicates(t *testing.T) {
	inTempDir(t)
	writeSample(t, "order.edi", x12Sample)

	var first bytes.Buffer
	require.NoError(t, RunParse(&first, "order.edi", true))
	assert.NotContains(t, first.String(), "duplicate")

	var second bytes.Buffer
	require.NoError(t, RunParse(&second, "order.edi", true))
	assert.Contains(t, second.String(), "duplicate")
	assert.Contains(t, second.String(), "000000001")
}

func TestParse_RecordedReceiptAppearsInLog(t *testing.T) {
	inTempDir(t)
	writeSample(t, "order.edi", x12Sample)

	var buf bytes.Buffer
	require.NoError(t, RunParse(&buf, "order.edi", true))

	var log bytes.Buffer
	require.NoError(t, RunLog(&log))
	assert.Contains(t, log.String(), "000000001")
	assert.Contains(t, log.String(), "SENDER -> RECEIVER")
	assert.Contains(t, log.String(), "1 receipt(s)")
}

func TestLog_EmptyStore(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	require.NoError(t, RunLog(&buf))
	assert.Contains(t, buf.String(), "0 receipt(s)")
}
