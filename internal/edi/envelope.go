package edi

import "time"

// EnvelopeSpec describes the identities, control numbers and versions for
// an interchange built from scratch (the outbound path). Trailers are left
// nil; the generator recomputes them anyway.
type EnvelopeSpec struct {
	Standard          Standard
	SenderQualifier   string
	Sender            string
	ReceiverQualifier string
	Receiver          string
	// ControlNumber is the interchange control reference; "1" when empty.
	ControlNumber string
	// GroupControlNumber seeds GS06/UNG05; "1" when empty.
	GroupControlNumber string
	// FunctionalCode is the group's functional identifier (GS01/UNG01),
	// e.g. "PO" for purchase orders.
	FunctionalCode string
	// Version is ISA12 for X12 ("00401") or the UNB syntax version for
	// EDIFACT ("3").
	Version string
	// GroupVersion is GS08 for X12 ("004010"); ignored for EDIFACT.
	GroupVersion string
	UseGroups    bool
	Timestamp    time.Time
}

// NewInterchange wraps transaction sets in a fresh envelope. The returned
// tree carries the standard's default delimiters; Generate applies any
// overrides at emit time.
func NewInterchange(spec EnvelopeSpec, txns ...*TransactionSet) *Interchange {
	if spec.ControlNumber == "" {
		spec.ControlNumber = "1"
	}
	if spec.GroupControlNumber == "" {
		spec.GroupControlNumber = "1"
	}
	ts := spec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	if spec.Standard == EDIFACT {
		return newEdifactInterchange(spec, ts, txns)
	}
	return newX12Interchange(spec, ts, txns)
}

func newX12Interchange(spec EnvelopeSpec, ts time.Time, txns []*TransactionSet) *Interchange {
	version := spec.Version
	if version == "" {
		version = "00401"
	}
	groupVersion := spec.GroupVersion
	if groupVersion == "" {
		groupVersion = "004010"
	}

	header := NewSegment("ISA",
		"00", "", "00", "",
		spec.SenderQualifier, spec.Sender,
		spec.ReceiverQualifier, spec.Receiver,
		ts.Format("060102"), ts.Format("1504"),
		"", // ISA11: generator writes the repetition separator
		version, spec.ControlNumber, "0", "P",
		"", // ISA16: generator writes the component separator
	)

	ic := &Interchange{Standard: X12, Delims: DefaultX12(), Header: header}
	group := &FunctionalGroup{
		Header: NewSegment("GS",
			spec.FunctionalCode, spec.Sender, spec.Receiver,
			ts.Format("20060102"), ts.Format("1504"),
			spec.GroupControlNumber, "X", groupVersion),
		Transactions: txns,
	}
	ic.Groups = []*FunctionalGroup{group}
	return ic
}

func newEdifactInterchange(spec EnvelopeSpec, ts time.Time, txns []*TransactionSet) *Interchange {
	version := spec.Version
	if version == "" {
		version = "3"
	}

	header := &Segment{ID: "UNB", Elements: []Element{
		{Components: []string{"UNOA", version}},
		{Components: []string{spec.Sender, spec.SenderQualifier}},
		{Components: []string{spec.Receiver, spec.ReceiverQualifier}},
		{Components: []string{ts.Format("060102"), ts.Format("1504")}},
		{Components: []string{spec.ControlNumber}},
	}}

	ic := &Interchange{Standard: EDIFACT, Delims: DefaultEDIFACT(), Header: header}
	if !spec.UseGroups {
		ic.Transactions = txns
		return ic
	}
	ic.Groups = []*FunctionalGroup{{
		Header: &Segment{ID: "UNG", Elements: []Element{
			{Components: []string{spec.FunctionalCode}},
			{Components: []string{spec.Sender}},
			{Components: []string{spec.Receiver}},
			{Components: []string{ts.Format("060102"), ts.Format("1504")}},
			{Components: []string{spec.GroupControlNumber}},
			{Components: []string{"UN"}},
		}},
		Transactions: txns,
	}}
	return ic
}
