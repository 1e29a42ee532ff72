package docmap

import (
	"strconv"

	"github.com/edikit/edikit/internal/edi"
)

// From856 maps an X12 856 advance ship notice. The HL hierarchy is walked
// in document order and flattened: every LIN opens an item, the SN1 that
// follows supplies its quantity.
func From856(ts *edi.TransactionSet) (*ShipNotice, error) {
	if got := ts.Header.Elem(1); got != "856" {
		return nil, wrongType("856", got)
	}
	bsn := ts.Find("BSN")
	if bsn == nil {
		return nil, missingSegment("BSN")
	}
	if bsn.Elem(2) == "" {
		return nil, missingElement(bsn, 2, "shipment identification")
	}

	sn := &ShipNotice{
		PurposeCode: bsn.Elem(1),
		ShipmentID:  bsn.Elem(2),
		Date:        bsn.Elem(3),
		Time:        bsn.Elem(4),
	}

	var item *ShipItem
	for _, seg := range ts.Segments {
		switch seg.ID {
		case "TD1":
			sn.PackagingCode = seg.Elem(1)
			sn.LadingQuantity = seg.Elem(2)
		case "LIN":
			sn.Items = append(sn.Items, ShipItem{
				IDQualifier: seg.Elem(2),
				ItemID:      seg.Elem(3),
			})
			item = &sn.Items[len(sn.Items)-1]
		case "SN1":
			if item != nil {
				item.Quantity = seg.Elem(2)
				item.Unit = seg.Elem(3)
			}
		}
	}
	return sn, nil
}

// To856 maps a ship notice to an X12 856 transaction set: one shipment HL
// followed by one item HL per shipped item.
func To856(sn *ShipNotice, control string) *edi.TransactionSet {
	ts := &edi.TransactionSet{Header: edi.NewSegment("ST", "856", control)}

	ts.Segments = append(ts.Segments,
		edi.NewSegment("BSN", defaulted(sn.PurposeCode, "00"), sn.ShipmentID, sn.Date, sn.Time))
	ts.Segments = append(ts.Segments, edi.NewSegment("HL", "1", "", "S"))
	if sn.PackagingCode != "" || sn.LadingQuantity != "" {
		ts.Segments = append(ts.Segments, edi.NewSegment("TD1", sn.PackagingCode, sn.LadingQuantity))
	}
	for i, item := range sn.Items {
		ts.Segments = append(ts.Segments,
			edi.NewSegment("HL", strconv.Itoa(i+2), "1", "I"),
			edi.NewSegment("LIN", strconv.Itoa(i+1), item.IDQualifier, item.ItemID),
			edi.NewSegment("SN1", "", item.Quantity, item.Unit))
	}
	ts.Segments = append(ts.Segments, edi.NewSegment("CTT", strconv.Itoa(len(sn.Items))))
	return ts
}
