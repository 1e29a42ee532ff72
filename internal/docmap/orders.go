package docmap

import (
	"strconv"

	"github.com/edikit/edikit/internal/edi"
)

// FromOrders maps an EDIFACT ORDERS message to the same canonical purchase
// order record the 850 mapper produces. NAD parties and LIN/QTY/PRI line
// groups are walked in document order.
func FromOrders(msg *edi.TransactionSet) (*PurchaseOrder, error) {
	if got := msg.Header.Comp(2, 1); got != "ORDERS" {
		return nil, wrongType("ORDERS", got)
	}
	bgm := msg.Find("BGM")
	if bgm == nil {
		return nil, missingSegment("BGM")
	}
	if bgm.Elem(2) == "" {
		return nil, missingElement(bgm, 2, "document number")
	}

	po := &PurchaseOrder{
		TypeCode:    bgm.Elem(1),
		Number:      bgm.Elem(2),
		PurposeCode: bgm.Elem(3),
	}

	var line *OrderLine
	for _, seg := range msg.Segments {
		switch seg.ID {
		case "DTM":
			if seg.Comp(1, 1) == "137" {
				po.Date = seg.Comp(1, 2)
			}
		case "NAD":
			po.Parties = append(po.Parties, Party{
				Qualifier:   seg.Elem(1),
				ID:          seg.Comp(2, 1),
				IDQualifier: seg.Comp(2, 3),
				Name:        seg.Elem(4),
			})
		case "LIN":
			po.Lines = append(po.Lines, OrderLine{
				Number:      seg.Elem(1),
				ItemID:      seg.Comp(3, 1),
				IDQualifier: seg.Comp(3, 2),
			})
			line = &po.Lines[len(po.Lines)-1]
		case "QTY":
			if line != nil && seg.Comp(1, 1) == "21" {
				line.Quantity = seg.Comp(1, 2)
				line.Unit = seg.Comp(1, 3)
			}
		case "PRI":
			if line != nil && seg.Comp(1, 1) == "AAA" {
				line.UnitPrice = seg.Comp(1, 2)
			}
		case "IMD":
			if line != nil {
				line.Description = seg.Comp(3, 4)
			}
		}
	}
	return po, nil
}

// ToOrders maps a purchase order to an EDIFACT ORDERS message (D.96A).
func ToOrders(po *PurchaseOrder, reference string) *edi.TransactionSet {
	msg := &edi.TransactionSet{Header: &edi.Segment{ID: "UNH", Elements: []edi.Element{
		{Components: []string{reference}},
		{Components: []string{"ORDERS", "D", "96A", "UN"}},
	}}}

	msg.Segments = append(msg.Segments,
		edi.NewSegment("BGM", defaulted(po.TypeCode, "220"), po.Number, defaulted(po.PurposeCode, "9")))
	if po.Date != "" {
		msg.Segments = append(msg.Segments, &edi.Segment{ID: "DTM", Elements: []edi.Element{
			{Components: []string{"137", po.Date, "102"}},
		}})
	}
	for _, p := range po.Parties {
		msg.Segments = append(msg.Segments, &edi.Segment{ID: "NAD", Elements: []edi.Element{
			{Components: []string{p.Qualifier}},
			{Components: []string{p.ID, "", p.IDQualifier}},
			{Components: []string{""}},
			{Components: []string{p.Name}},
		}})
	}
	for _, l := range po.Lines {
		msg.Segments = append(msg.Segments, &edi.Segment{ID: "LIN", Elements: []edi.Element{
			{Components: []string{l.Number}},
			{Components: []string{""}},
			{Components: []string{l.ItemID, defaulted(l.IDQualifier, "EN")}},
		}})
		if l.Quantity != "" {
			msg.Segments = append(msg.Segments, &edi.Segment{ID: "QTY", Elements: []edi.Element{
				{Components: []string{"21", l.Quantity, l.Unit}},
			}})
		}
		if l.UnitPrice != "" {
			msg.Segments = append(msg.Segments, &edi.Segment{ID: "PRI", Elements: []edi.Element{
				{Components: []string{"AAA", l.UnitPrice}},
			}})
		}
	}
	msg.Segments = append(msg.Segments,
		edi.NewSegment("UNS", "S"),
		&edi.Segment{ID: "CNT", Elements: []edi.Element{
			{Components: []string{"2", strconv.Itoa(len(po.Lines))}},
		}})
	return msg
}
