package docmap

import (
	"strconv"

	"github.com/edikit/edikit/internal/edi"
)

// From810 maps an X12 810 invoice.
func From810(ts *edi.TransactionSet) (*Invoice, error) {
	if got := ts.Header.Elem(1); got != "810" {
		return nil, wrongType("810", got)
	}
	big := ts.Find("BIG")
	if big == nil {
		return nil, missingSegment("BIG")
	}
	if big.Elem(2) == "" {
		return nil, missingElement(big, 2, "invoice number")
	}

	inv := &Invoice{
		Date:        big.Elem(1),
		Number:      big.Elem(2),
		OrderNumber: big.Elem(4),
	}

	for _, seg := range ts.Segments {
		switch seg.ID {
		case "N1":
			inv.Parties = append(inv.Parties, Party{
				Qualifier:   seg.Elem(1),
				Name:        seg.Elem(2),
				IDQualifier: seg.Elem(3),
				ID:          seg.Elem(4),
			})
		case "IT1":
			inv.Lines = append(inv.Lines, InvoiceLine{
				Number:      seg.Elem(1),
				Quantity:    seg.Elem(2),
				Unit:        seg.Elem(3),
				UnitPrice:   seg.Elem(4),
				IDQualifier: seg.Elem(6),
				ItemID:      seg.Elem(7),
			})
		case "TDS":
			inv.TotalAmount = seg.Elem(1)
		}
	}
	return inv, nil
}

// To810 maps an invoice to an X12 810 transaction set.
func To810(inv *Invoice, control string) *edi.TransactionSet {
	ts := &edi.TransactionSet{Header: edi.NewSegment("ST", "810", control)}

	ts.Segments = append(ts.Segments,
		edi.NewSegment("BIG", inv.Date, inv.Number, "", inv.OrderNumber))
	for _, p := range inv.Parties {
		ts.Segments = append(ts.Segments, edi.NewSegment("N1", p.Qualifier, p.Name, p.IDQualifier, p.ID))
	}
	for _, l := range inv.Lines {
		ts.Segments = append(ts.Segments,
			edi.NewSegment("IT1", l.Number, l.Quantity, l.Unit, l.UnitPrice, "", l.IDQualifier, l.ItemID))
	}
	if inv.TotalAmount != "" {
		ts.Segments = append(ts.Segments, edi.NewSegment("TDS", inv.TotalAmount))
	}
	ts.Segments = append(ts.Segments, edi.NewSegment("CTT", strconv.Itoa(len(inv.Lines))))
	return ts
}
