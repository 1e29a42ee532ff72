package edi

import (
	"fmt"
	"strconv"
	"strings"
)

// Options configures generation. The tree itself is never mutated: trailer
// counts and control references are recomputed at emit time so freshly
// generated output is always internally consistent.
type Options struct {
	// Delimiters overrides the tree's delimiter set.
	Delimiters *Delimiters
	// OmitUNA suppresses the EDIFACT service string advice (emitted by
	// default; X12 has no equivalent, its ISA is always present).
	OmitUNA bool
	// LineBreaks inserts a newline after every segment terminator.
	LineBreaks bool
	// Version overrides the interchange syntax version identifier
	// (ISA12 for X12, the UNB01 version component for EDIFACT).
	Version string
	// UseGroups, when set to false, flattens functional groups and emits
	// their transactions directly under the interchange.
	UseGroups *bool
	// ControlNumber overrides the interchange control reference in both
	// header and trailer.
	ControlNumber string
}

// Generate serializes a document tree to delimited text. It is a pure
// function of the tree and options and fails closed: a data value that
// cannot be escaped under the active delimiter set yields an error rather
// than corrupt output.
func Generate(ic *Interchange, opts Options) (string, error) {
	if ic == nil || ic.Header == nil {
		return "", fmt.Errorf("generate: interchange has no header")
	}
	d := ic.Delims
	if opts.Delimiters != nil {
		d = *opts.Delimiters
	}
	if d.Element == 0 {
		if ic.Standard == EDIFACT {
			d = DefaultEDIFACT()
		} else {
			d = DefaultX12()
		}
	}
	if ic.Standard == EDIFACT && d.Decimal == 0 {
		d.Decimal = '.'
	}
	if ic.Standard == EDIFACT && d.Release == 0 {
		return "", Diagnostic{
			Code:     CodeUnescapable,
			Severity: SeverityError,
			Message:  "EDIFACT requires a release character and the configured delimiters define none",
		}
	}
	if err := d.Validate(); err != nil {
		return "", err
	}

	g := &generator{d: d, dial: dialectFor(ic.Standard), opts: opts}
	g.active = activeDelimiters(d)
	if err := g.interchange(ic); err != nil {
		return "", err
	}
	return g.b.String(), nil
}

type generator struct {
	b      strings.Builder
	d      Delimiters
	dial   dialect
	opts   Options
	active string
}

func activeDelimiters(d Delimiters) string {
	var b []byte
	for _, c := range []byte{d.Element, d.Component, d.Repetition, d.Segment, d.Release} {
		if c != 0 {
			b = append(b, c)
		}
	}
	return string(b)
}

func (g *generator) interchange(ic *Interchange) error {
	useGroups := len(ic.Groups) > 0
	if g.opts.UseGroups != nil {
		useGroups = *g.opts.UseGroups && len(ic.Groups) > 0
	}

	var flat []*TransactionSet
	childCount := len(ic.Groups) + len(ic.Transactions)
	if !useGroups {
		flat = ic.AllTransactions()
		childCount = len(flat)
	}

	ref := ic.Header.Elem(g.dial.icRefHeader)
	if g.opts.ControlNumber != "" {
		ref = g.opts.ControlNumber
	}

	if ic.Standard == X12 {
		ref = leftPadZeros(ref, 9)
		g.isa(ic.Header, ref)
	} else {
		if !g.opts.OmitUNA {
			g.una()
		}
		ov := map[int]Element{g.dial.icRefHeader: simpleElement(ref)}
		if g.opts.Version != "" {
			var syntax Element
			if len(ic.Header.Elements) > 0 {
				syntax = ic.Header.Elements[0]
			}
			comps := append([]string(nil), syntax.Components...)
			for len(comps) < 2 {
				comps = append(comps, "")
			}
			comps[1] = g.opts.Version
			ov[1] = Element{Components: comps}
		}
		if err := g.segment(ic.Header, ov, true); err != nil {
			return err
		}
	}

	if useGroups {
		for _, grp := range ic.Groups {
			if err := g.group(grp); err != nil {
				return err
			}
		}
		for _, t := range ic.Transactions {
			if err := g.transaction(t); err != nil {
				return err
			}
		}
	} else {
		for _, t := range flat {
			if err := g.transaction(t); err != nil {
				return err
			}
		}
	}

	trailer := ic.Trailer
	if trailer == nil {
		trailer = NewSegment(g.dial.interchangeTrailer, "", "")
	}
	ov := map[int]Element{
		g.dial.icCount:      simpleElement(strconv.Itoa(childCount)),
		g.dial.icRefTrailer: simpleElement(ref),
	}
	return g.segment(trailer, ov, true)
}

func (g *generator) group(grp *FunctionalGroup) error {
	if grp.Header == nil {
		return fmt.Errorf("generate: functional group has no header")
	}
	if err := g.segment(grp.Header, nil, true); err != nil {
		return err
	}
	for _, t := range grp.Transactions {
		if err := g.transaction(t); err != nil {
			return err
		}
	}
	trailer := grp.Trailer
	if trailer == nil {
		trailer = NewSegment(g.dial.groupTrailer, "", "")
	}
	ov := map[int]Element{
		g.dial.grpCount:      simpleElement(strconv.Itoa(len(grp.Transactions))),
		g.dial.grpRefTrailer: simpleElement(grp.Header.Elem(g.dial.grpRefHeader)),
	}
	return g.segment(trailer, ov, true)
}

func (g *generator) transaction(t *TransactionSet) error {
	if t.Header == nil {
		return fmt.Errorf("generate: transaction set has no header")
	}
	if err := g.segment(t.Header, nil, true); err != nil {
		return err
	}
	for _, s := range t.Segments {
		if err := g.segment(s, nil, true); err != nil {
			return err
		}
	}
	count := len(t.Segments)
	if g.dial.countIncludesEnvelope {
		count += 2
	}
	trailer := t.Trailer
	if trailer == nil {
		trailer = NewSegment(g.dial.txnTrailer, "", "")
	}
	ov := map[int]Element{
		g.dial.txnCount:      simpleElement(strconv.Itoa(count)),
		g.dial.txnRefTrailer: simpleElement(t.Header.Elem(g.dial.txnRefHeader)),
	}
	return g.segment(trailer, ov, true)
}

// segment emits one segment, applying 1-based element overrides. Escaping
// is skipped for X12 envelope segments (the syntax has no release
// character and ISA is fixed-width).
func (g *generator) segment(seg *Segment, ov map[int]Element, escape bool) error {
	g.b.WriteString(seg.ID)
	n := len(seg.Elements)
	for idx := range ov {
		if idx > n {
			n = idx
		}
	}
	for i := 1; i <= n; i++ {
		g.b.WriteByte(g.d.Element)
		el := Element{Components: []string{""}}
		if i <= len(seg.Elements) {
			el = seg.Elements[i-1]
		}
		if o, ok := ov[i]; ok {
			el = o
		}
		if err := g.element(el, seg.ID, i, escape); err != nil {
			return err
		}
	}
	g.terminate()
	return nil
}

func (g *generator) element(el Element, segID string, idx int, escape bool) error {
	if err := g.components(el.Components, segID, idx, escape); err != nil {
		return err
	}
	for _, rep := range el.Repeats {
		if g.d.Repetition == 0 {
			return Diagnostic{
				Code:         CodeUnescapable,
				Severity:     SeverityError,
				Message:      "element repetition requires a repetition separator, none is active",
				SegmentID:    segID,
				ElementIndex: idx,
			}
		}
		g.b.WriteByte(g.d.Repetition)
		if err := g.components(rep.Components, segID, idx, escape); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) components(comps []string, segID string, idx int, escape bool) error {
	if len(comps) == 0 {
		comps = []string{""}
	}
	for i, c := range comps {
		if i > 0 {
			g.b.WriteByte(g.d.Component)
		}
		v := c
		if escape {
			escaped, err := g.escape(c)
			if err != nil {
				if d, ok := err.(Diagnostic); ok {
					d.SegmentID = segID
					d.ElementIndex = idx
					d.ComponentIndex = i + 1
					return d
				}
				return err
			}
			v = escaped
		}
		g.b.WriteString(v)
	}
	return nil
}

// escape prefixes the release character to any data character colliding
// with an active delimiter. Without a release character (X12) such a value
// cannot be represented; emitting it would corrupt the interchange.
func (g *generator) escape(v string) (string, error) {
	if !strings.ContainsAny(v, g.active) {
		return v, nil
	}
	if g.d.Release == 0 {
		return "", Diagnostic{
			Code:     CodeUnescapable,
			Severity: SeverityError,
			Message:  fmt.Sprintf("value %q contains an active delimiter and no release character is defined", v),
		}
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if strings.IndexByte(g.active, v[i]) >= 0 {
			b.WriteByte(g.d.Release)
		}
		b.WriteByte(v[i])
	}
	return b.String(), nil
}

// isaWidths are the fixed field widths of the X12 ISA segment.
var isaWidths = [16]int{2, 10, 2, 10, 2, 15, 2, 15, 6, 4, 1, 5, 9, 1, 1, 1}

// isa emits the fixed-width X12 interchange header. ISA11 and ISA16 are
// rewritten from the active delimiter set so the emitted header describes
// the output rather than the input it was parsed from.
func (g *generator) isa(header *Segment, ref string) {
	g.b.WriteString("ISA")
	for i := 1; i <= 16; i++ {
		g.b.WriteByte(g.d.Element)
		v := header.Elem(i)
		switch i {
		case 11:
			if g.d.Repetition != 0 {
				v = string(g.d.Repetition)
			} else if v == "" {
				v = "U"
			}
		case 12:
			if g.opts.Version != "" {
				v = g.opts.Version
			}
			if v == "" {
				v = "00401"
			}
		case 13:
			v = ref
		case 16:
			v = string(g.d.Component)
		}
		g.b.WriteString(padISA(v, isaWidths[i-1]))
	}
	g.terminate()
}

// una emits the EDIFACT service string advice for the active delimiters.
func (g *generator) una() {
	rep := byte(' ')
	if g.d.Repetition != 0 {
		rep = g.d.Repetition
	}
	g.b.WriteString("UNA")
	g.b.WriteByte(g.d.Component)
	g.b.WriteByte(g.d.Element)
	g.b.WriteByte(g.d.Decimal)
	g.b.WriteByte(g.d.Release)
	g.b.WriteByte(rep)
	g.terminate()
}

func (g *generator) terminate() {
	g.b.WriteByte(g.d.Segment)
	if g.opts.LineBreaks {
		g.b.WriteByte('\n')
	}
}

func simpleElement(v string) Element {
	return Element{Components: []string{v}}
}

func padISA(v string, width int) string {
	if len(v) > width {
		return v[:width]
	}
	return v + strings.Repeat(" ", width-len(v))
}

func leftPadZeros(v string, width int) string {
	v = strings.TrimSpace(v)
	if len(v) >= width {
		return v
	}
	return strings.Repeat("0", width-len(v)) + v
}
