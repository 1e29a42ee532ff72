package docmap

import (
	"strconv"

	"github.com/edikit/edikit/internal/edi"
)

// From855 maps an X12 855 purchase order acknowledgment. An ACK segment
// following a PO1 carries that line's status.
func From855(ts *edi.TransactionSet) (*Acknowledgment, error) {
	if got := ts.Header.Elem(1); got != "855" {
		return nil, wrongType("855", got)
	}
	bak := ts.Find("BAK")
	if bak == nil {
		return nil, missingSegment("BAK")
	}
	if bak.Elem(3) == "" {
		return nil, missingElement(bak, 3, "purchase order number")
	}

	ack := &Acknowledgment{
		PurposeCode: bak.Elem(1),
		AckType:     bak.Elem(2),
		OrderNumber: bak.Elem(3),
		Date:        bak.Elem(4),
	}

	var line *AckLine
	for _, seg := range ts.Segments {
		switch seg.ID {
		case "PO1":
			ack.Lines = append(ack.Lines, AckLine{
				Number:      seg.Elem(1),
				Quantity:    seg.Elem(2),
				Unit:        seg.Elem(3),
				IDQualifier: seg.Elem(6),
				ItemID:      seg.Elem(7),
			})
			line = &ack.Lines[len(ack.Lines)-1]
		case "ACK":
			if line != nil {
				line.Status = seg.Elem(1)
			}
		}
	}
	return ack, nil
}

// To855 maps an acknowledgment to an X12 855 transaction set.
func To855(ack *Acknowledgment, control string) *edi.TransactionSet {
	ts := &edi.TransactionSet{Header: edi.NewSegment("ST", "855", control)}

	ts.Segments = append(ts.Segments,
		edi.NewSegment("BAK", defaulted(ack.PurposeCode, "00"), defaulted(ack.AckType, "AD"), ack.OrderNumber, ack.Date))
	for _, l := range ack.Lines {
		ts.Segments = append(ts.Segments,
			edi.NewSegment("PO1", l.Number, l.Quantity, l.Unit, "", "", l.IDQualifier, l.ItemID))
		if l.Status != "" {
			ts.Segments = append(ts.Segments, edi.NewSegment("ACK", l.Status, l.Quantity, l.Unit))
		}
	}
	ts.Segments = append(ts.Segments, edi.NewSegment("CTT", strconv.Itoa(len(ack.Lines))))
	return ts
}
