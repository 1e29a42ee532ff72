package docmap

import (
	"strconv"

	"github.com/edikit/edikit/internal/edi"
)

// From997 maps an X12 997 functional acknowledgment.
func From997(ts *edi.TransactionSet) (*FunctionalAck, error) {
	if got := ts.Header.Elem(1); got != "997" {
		return nil, wrongType("997", got)
	}
	ak1 := ts.Find("AK1")
	if ak1 == nil {
		return nil, missingSegment("AK1")
	}
	ak9 := ts.Find("AK9")
	if ak9 == nil {
		return nil, missingSegment("AK9")
	}

	fa := &FunctionalAck{
		FunctionalCode: ak1.Elem(1),
		GroupControl:   ak1.Elem(2),
		Status:         ak9.Elem(1),
	}
	fa.Included, _ = strconv.Atoi(ak9.Elem(2))
	fa.Received, _ = strconv.Atoi(ak9.Elem(3))
	fa.Accepted, _ = strconv.Atoi(ak9.Elem(4))

	var txn *TransactionAck
	for _, seg := range ts.Segments {
		switch seg.ID {
		case "AK2":
			fa.Transactions = append(fa.Transactions, TransactionAck{
				SetID:   seg.Elem(1),
				Control: seg.Elem(2),
			})
			txn = &fa.Transactions[len(fa.Transactions)-1]
		case "AK5":
			if txn != nil {
				txn.Status = seg.Elem(1)
			}
		}
	}
	return fa, nil
}

// To997 maps a functional acknowledgment to an X12 997 transaction set.
func To997(fa *FunctionalAck, control string) *edi.TransactionSet {
	ts := &edi.TransactionSet{Header: edi.NewSegment("ST", "997", control)}

	ts.Segments = append(ts.Segments, edi.NewSegment("AK1", fa.FunctionalCode, fa.GroupControl))
	for _, t := range fa.Transactions {
		ts.Segments = append(ts.Segments,
			edi.NewSegment("AK2", t.SetID, t.Control),
			edi.NewSegment("AK5", defaulted(t.Status, "A")))
	}
	ts.Segments = append(ts.Segments, edi.NewSegment("AK9",
		defaulted(fa.Status, "A"),
		strconv.Itoa(fa.Included), strconv.Itoa(fa.Received), strconv.Itoa(fa.Accepted)))
	return ts
}

// Acknowledge builds a 997 record answering a parsed functional group,
// accepting every transaction set when ok is true and rejecting the group
// otherwise.
func Acknowledge(grp *edi.FunctionalGroup, ok bool) *FunctionalAck {
	fa := &FunctionalAck{
		FunctionalCode: grp.Header.Elem(1),
		GroupControl:   grp.Header.Elem(6),
		Status:         "A",
		Included:       len(grp.Transactions),
		Received:       len(grp.Transactions),
		Accepted:       len(grp.Transactions),
	}
	status := "A"
	if !ok {
		fa.Status = "R"
		fa.Accepted = 0
		status = "R"
	}
	for _, t := range grp.Transactions {
		fa.Transactions = append(fa.Transactions, TransactionAck{
			SetID:   t.Header.Elem(1),
			Control: t.Header.Elem(2),
			Status:  status,
		})
	}
	return fa
}
