package edi

import (
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

func TestParse_X12Envelope(t *testing.T) {
	res := Parse([]byte(x12Sample))

	require.True(t, res.OK)
	require.Empty(t, res.Errors)
	ic := res.Interchange
	require.NotNil(t, ic)
	assert.Equal(t, X12, ic.Standard)
	assert.Equal(t, "000000001", ic.ControlNumber())
	assert.Equal(t, "SENDER", ic.Header.Elem(6), "fixed-width padding is trimmed")

	require.Len(t, ic.Groups, 1)
	grp := ic.Groups[0]
	assert.Equal(t, "1", grp.Header.Elem(6))

	require.Len(t, grp.Transactions, 1)
	txn := grp.Transactions[0]
	assert.Equal(t, "850", txn.Header.Elem(1))
	assert.Equal(t, "0001", txn.Header.Elem(2))
	assert.Equal(t, "5", txn.Trailer.Elem(1))
	require.Len(t, txn.Segments, 3)
	assert.Equal(t, "BEG", txn.Segments[0].ID)
	assert.Equal(t, "PO123", txn.Segments[0].Elem(3))
}

func TestParse_EDIFACTEnvelope(t *testing.T) {
	res := Parse([]byte(edifactSample))

	require.True(t, res.OK)
	require.Empty(t, res.Errors)
	ic := res.Interchange
	assert.Equal(t, EDIFACT, ic.Standard)
	assert.Equal(t, "1", ic.ControlNumber())
	assert.Empty(t, ic.Groups)
	require.Len(t, ic.Transactions, 1)

	msg := ic.Transactions[0]
	assert.Equal(t, "ORDERS", msg.Header.Comp(2, 1))
	require.Len(t, msg.Segments, 1)
	assert.Equal(t, "BGM", msg.Segments[0].ID)
}

func TestParse_MissingInterchangeTrailer(t *testing.T) {
	buf := "UNB+UNOA:3+S+R+210101:1200+1'UNH+1+ORDERS:D:96A:UN'BGM+220+PO1+9'UNT+3+1'"
	res := Parse([]byte(buf))

	assert.False(t, res.OK)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, CodeUntermInterchange, res.Errors[0].Code)
	require.NotNil(t, res.Interchange, "a best-effort partial tree is still returned")
	assert.Len(t, res.Interchange.Transactions, 1)
}

func TestParse_MissingTransactionTrailer(t *testing.T) {
	buf := "UNB+UNOA:3+S+R+210101:1200+1'UNH+1+ORDERS:D:96A:UN'BGM+220+PO1+9'UNZ+1+1'"
	res := Parse([]byte(buf))

	assert.False(t, res.OK)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, CodeUntermTransaction, res.Errors[0].Code)
	require.Len(t, res.Interchange.Transactions, 1, "the open frame is closed speculatively")
	assert.Nil(t, res.Interchange.Transactions[0].Trailer)
}

func TestParse_FirstSegmentNotHeader(t *testing.T) {
	res := Parse([]byte("ISB*00~"))

	assert.False(t, res.OK)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, CodeMalformedEnvelope, res.Errors[0].Code)
	assert.Nil(t, res.Interchange)
}

func TestParse_SegmentOutsideTransaction(t *testing.T) {
	buf := "UNB+UNOA:3+S+R+210101:1200+1'BGM+220+PO1+9'UNZ+0+1'"
	res := Parse([]byte(buf))

	assert.False(t, res.OK)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, CodeUnexpectedSegment, res.Errors[0].Code)
	assert.Equal(t, "BGM", res.Errors[0].Message[8:11])
}

func TestParse_TrailingContent(t *testing.T) {
	buf := edifactSample + "UNH+2+ORDERS:D:96A:UN'"
	res := Parse([]byte(buf))

	assert.False(t, res.OK)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, CodeTrailingContent, res.Errors[0].Code)
}

func TestParse_TrailerWithoutHeader(t *testing.T) {
	buf := "UNB+UNOA:3+S+R+210101:1200+1'UNT+2+1'UNZ+0+1'"
	res := Parse([]byte(buf))

	assert.False(t, res.OK)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, CodeUnexpectedSegment, res.Errors[0].Code)
}

func TestParse_DiagnosticPositions(t *testing.T) {
	buf := "UNB+UNOA:3+S+R+210101:1200+1'BGM+220'UNZ+0+1'"
	res := Parse([]byte(buf))

	require.NotEmpty(t, res.Errors)
	d := res.Errors[0]
	assert.Equal(t, 1, d.Pos.Line)
	assert.Equal(t, 30, d.Pos.Column, "diagnostic points at the offending segment")
}

func TestParse_ExplicitDelimiters(t *testing.T) {
	buf := "UNB&UNOA;3&S&R&210101;1200&42|UNH&1&ORDERS;D;96A;UN|UNT&2&1|UNZ&1&42|"
	res := ParseWithOptions([]byte(buf), ParseOptions{Delimiters: &Delimiters{
		Element: '&', Component: ';', Segment: '|', Release: '!', Decimal: '.',
	}})

	require.True(t, res.OK, "errors: %v", res.Errors)
	assert.Equal(t, "42", res.Interchange.ControlNumber())
}

func TestParse_UngroupedVersusGrouped(t *testing.T) {
	grouped := "UNB+UNOA:3+S+R+210101:1200+7'" +
		"UNG+ORDERS+S+R+210101:1200+1+UN'" +
		"UNH+1+ORDERS:D:96A:UN'BGM+220+A+9'UNT+3+1'" +
		"UNE+1+1'UNZ+1+7'"
	res := Parse([]byte(grouped))

	require.True(t, res.OK, "errors: %v", res.Errors)
	require.Len(t, res.Interchange.Groups, 1)
	assert.Empty(t, res.Interchange.Transactions)
	assert.Len(t, res.Interchange.AllTransactions(), 1)
}
