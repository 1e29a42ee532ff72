package docmap

import (
	"strconv"

	"github.com/edikit/edikit/internal/edi"
)

// From850 maps an X12 850 transaction set to a purchase order. A PID
// description segment following a PO1 attaches to that line.
func From850(ts *edi.TransactionSet) (*PurchaseOrder, error) {
	if got := ts.Header.Elem(1); got != "850" {
		return nil, wrongType("850", got)
	}
	beg := ts.Find("BEG")
	if beg == nil {
		return nil, missingSegment("BEG")
	}
	number := beg.Elem(3)
	if number == "" {
		return nil, missingElement(beg, 3, "purchase order number")
	}

	po := &PurchaseOrder{
		Number:      number,
		PurposeCode: beg.Elem(1),
		TypeCode:    beg.Elem(2),
		Date:        beg.Elem(5),
	}

	var line *OrderLine
	for _, seg := range ts.Segments {
		switch seg.ID {
		case "REF":
			po.References = append(po.References, Reference{
				Qualifier: seg.Elem(1),
				Value:     seg.Elem(2),
			})
		case "DTM":
			// 002 = delivery requested
			if seg.Elem(1) == "002" {
				po.DeliveryDate = seg.Elem(2)
			}
		case "N1":
			po.Parties = append(po.Parties, Party{
				Qualifier:   seg.Elem(1),
				Name:        seg.Elem(2),
				IDQualifier: seg.Elem(3),
				ID:          seg.Elem(4),
			})
		case "PO1":
			po.Lines = append(po.Lines, OrderLine{
				Number:      seg.Elem(1),
				Quantity:    seg.Elem(2),
				Unit:        seg.Elem(3),
				UnitPrice:   seg.Elem(4),
				IDQualifier: seg.Elem(6),
				ItemID:      seg.Elem(7),
			})
			line = &po.Lines[len(po.Lines)-1]
		case "PID":
			if line != nil && seg.Elem(1) == "F" {
				line.Description = seg.Elem(5)
			}
		}
	}
	return po, nil
}

// To850 maps a purchase order to an X12 850 transaction set. Counts and
// the SE trailer are left to the generator.
func To850(po *PurchaseOrder, control string) *edi.TransactionSet {
	ts := &edi.TransactionSet{Header: edi.NewSegment("ST", "850", control)}

	ts.Segments = append(ts.Segments,
		edi.NewSegment("BEG", defaulted(po.PurposeCode, "00"), defaulted(po.TypeCode, "SA"), po.Number, "", po.Date))
	for _, r := range po.References {
		ts.Segments = append(ts.Segments, edi.NewSegment("REF", r.Qualifier, r.Value))
	}
	if po.DeliveryDate != "" {
		ts.Segments = append(ts.Segments, edi.NewSegment("DTM", "002", po.DeliveryDate))
	}
	for _, p := range po.Parties {
		ts.Segments = append(ts.Segments, edi.NewSegment("N1", p.Qualifier, p.Name, p.IDQualifier, p.ID))
	}
	for _, l := range po.Lines {
		ts.Segments = append(ts.Segments,
			edi.NewSegment("PO1", l.Number, l.Quantity, l.Unit, l.UnitPrice, "", l.IDQualifier, l.ItemID))
		if l.Description != "" {
			ts.Segments = append(ts.Segments, edi.NewSegment("PID", "F", "", "", "", l.Description))
		}
	}
	ts.Segments = append(ts.Segments, edi.NewSegment("CTT", strconv.Itoa(len(po.Lines))))
	return ts
}

func defaulted(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
