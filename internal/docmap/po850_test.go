package docmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edikit/edikit/internal/edi"
)

func txn850() *edi.TransactionSet {
	return &edi.TransactionSet{
		Header: edi.NewSegment("ST", "850", "0001"),
		Segments: []*edi.Segment{
			edi.NewSegment("BEG", "00", "SA", "PO123", "", "20210101"),
			edi.NewSegment("N1", "BY", "ACME CORP", "92", "ACME01"),
			edi.NewSegment("N1", "ST", "ACME WAREHOUSE", "92", "ACME02"),
			edi.NewSegment("PO1", "1", "10", "EA", "9.99", "", "VP", "SKU1"),
			edi.NewSegment("PID", "F", "", "", "", "BLUE WIDGET"),
			edi.NewSegment("PO1", "2", "5", "CA", "24.50", "", "VP", "SKU2"),
			edi.NewSegment("CTT", "2"),
		},
	}
}

func TestFrom850(t *testing.T) {
	po, err := From850(txn850())
	require.NoError(t, err)

	assert.Equal(t, "PO123", po.Number)
	assert.Equal(t, "00", po.PurposeCode)
	assert.Equal(t, "SA", po.TypeCode)
	assert.Equal(t, "20210101", po.Date)

	require.Len(t, po.Parties, 2)
	assert.Equal(t, Party{Qualifier: "BY", Name: "ACME CORP", IDQualifier: "92", ID: "ACME01"}, po.Parties[0])

	require.Len(t, po.Lines, 2)
	assert.Equal(t, "BLUE WIDGET", po.Lines[0].Description, "PID attaches to the preceding PO1")
	assert.Equal(t, "SKU2", po.Lines[1].ItemID)
	assert.Empty(t, po.Lines[1].Description)
}

func TestFrom850_WrongType(t *testing.T) {
	ts := txn850()
	ts.Header = edi.NewSegment("ST", "810", "0001")

	_, err := From850(ts)
	var me *MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrWrongType, me.Code)
}

func TestFrom850_MissingBEG(t *testing.T) {
	ts := txn850()
	ts.Segments = ts.Segments[1:]

	_, err := From850(ts)
	var me *MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrMissingSegment, me.Code)
	assert.Equal(t, "BEG", me.SegmentID)
}

func TestFrom850_MissingOrderNumber(t *testing.T) {
	ts := txn850()
	ts.Segments[0] = edi.NewSegment("BEG", "00", "SA")

	_, err := From850(ts)
	var me *MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, ErrMissingElement, me.Code)
}

func TestFrom850_ReferencesAndDeliveryDate(t *testing.T) {
	ts := txn850()
	ts.Segments = append(ts.Segments[:1], append([]*edi.Segment{
		edi.NewSegment("REF", "CO", "CUST789"),
		edi.NewSegment("DTM", "002", "20210215"),
		edi.NewSegment("DTM", "011", "20210110"),
	}, ts.Segments[1:]...)...)

	po, err := From850(ts)
	require.NoError(t, err)

	require.Len(t, po.References, 1)
	assert.Equal(t, Reference{Qualifier: "CO", Value: "CUST789"}, po.References[0])
	assert.Equal(t, "20210215", po.DeliveryDate, "only qualifier 002 is the delivery date")
}

func TestTo850_EmitsReferencesAndDeliveryDate(t *testing.T) {
	po := &PurchaseOrder{
		Number:       "PO123",
		DeliveryDate: "20210215",
		References:   []Reference{{Qualifier: "CO", Value: "CUST789"}},
		Lines:        []OrderLine{{Number: "1", Quantity: "10", Unit: "EA"}},
	}

	ts := To850(po, "0001")

	ref := ts.Find("REF")
	require.NotNil(t, ref)
	assert.Equal(t, "CO", ref.Elem(1))
	assert.Equal(t, "CUST789", ref.Elem(2))

	dtm := ts.Find("DTM")
	require.NotNil(t, dtm)
	assert.Equal(t, "002", dtm.Elem(1))
	assert.Equal(t, "20210215", dtm.Elem(2))
}

func TestTo850_RoundTripsThroughWire(t *testing.T) {
	orig, err := From850(txn850())
	require.NoError(t, err)

	ic := edi.NewInterchange(edi.EnvelopeSpec{
		Standard:          edi.X12,
		SenderQualifier:   "ZZ",
		Sender:            "SENDER",
		ReceiverQualifier: "ZZ",
		Receiver:          "RECEIVER",
		FunctionalCode:    "PO",
		Timestamp:         time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC),
	}, To850(orig, "0001"))

	wire, err := edi.Generate(ic, edi.Options{})
	require.NoError(t, err)

	res := edi.Parse([]byte(wire))
	require.True(t, res.OK, "errors: %v", res.Errors)
	require.Empty(t, res.Errors)

	back, err := From850(res.Interchange.Groups[0].Transactions[0])
	require.NoError(t, err)
	assert.Equal(t, orig, back)
}
