package edi

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate runs the cross-referential integrity checks over a structurally
// complete tree: control references must match between each header/trailer
// pair, and trailer-declared counts must equal the parsed contents. All
// checks run; nothing short-circuits. Integrity problems are errors,
// cosmetic ones warnings.
func Validate(ic *Interchange) (errs, warns []Diagnostic) {
	if ic == nil || ic.Header == nil || ic.Trailer == nil {
		return nil, nil
	}
	d := dialectFor(ic.Standard)
	v := &validator{d: d}

	v.checkControl("interchange", ic.Header, d.icRefHeader, ic.Trailer, d.icRefTrailer)
	v.checkCount("interchange", ic.Trailer, d.icCount, len(ic.Groups)+len(ic.Transactions))

	for _, g := range ic.Groups {
		v.checkControl("group", g.Header, d.grpRefHeader, g.Trailer, d.grpRefTrailer)
		v.checkCount("group", g.Trailer, d.grpCount, len(g.Transactions))
		for _, t := range g.Transactions {
			v.checkTransaction(t)
		}
	}
	for _, t := range ic.Transactions {
		v.checkTransaction(t)
	}

	v.checkSyntax(ic)
	return v.errs, v.warns
}

type validator struct {
	d     dialect
	errs  []Diagnostic
	warns []Diagnostic
}

func (v *validator) checkControl(level string, header *Segment, hElem int, trailer *Segment, tElem int) {
	if header == nil || trailer == nil {
		return
	}
	want := header.Elem(hElem)
	got := trailer.Elem(tElem)
	if controlEqual(want, got) {
		return
	}
	diag := errDiag(CodeControlMismatch,
		fmt.Sprintf("%s control number mismatch: header %s declares %q, trailer %s carries %q", level, header.ID, want, trailer.ID, got),
		trailer.Pos)
	diag.SegmentID = trailer.ID
	diag.ElementIndex = tElem
	v.errs = append(v.errs, diag)
}

func (v *validator) checkCount(level string, trailer *Segment, elem, actual int) {
	if trailer == nil {
		return
	}
	raw := trailer.Elem(elem)
	declared, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		diag := errDiag(CodeBadCount, fmt.Sprintf("%s trailer %s count %q is not numeric", level, trailer.ID, raw), trailer.Pos)
		diag.SegmentID = trailer.ID
		diag.ElementIndex = elem
		v.errs = append(v.errs, diag)
		return
	}
	if declared == actual {
		return
	}
	diag := errDiag(CodeCountMismatch,
		fmt.Sprintf("%s trailer %s declares %d, parsed %d", level, trailer.ID, declared, actual),
		trailer.Pos)
	diag.SegmentID = trailer.ID
	diag.ElementIndex = elem
	v.errs = append(v.errs, diag)
}

func (v *validator) checkTransaction(t *TransactionSet) {
	v.checkControl("transaction", t.Header, v.d.txnRefHeader, t.Trailer, v.d.txnRefTrailer)
	actual := len(t.Segments)
	if v.d.countIncludesEnvelope {
		actual += 2 // header and trailer count themselves
	}
	v.checkCount("transaction", t.Trailer, v.d.txnCount, actual)
}

// checkSyntax flags parseable but non-standard header values.
func (v *validator) checkSyntax(ic *Interchange) {
	switch ic.Standard {
	case X12:
		if ic.Delims.Repetition == 0 {
			v.warns = append(v.warns, warnDiag(CodeNonStandardSyntax,
				"ISA11 holds no repetition separator; element repetition is disabled", ic.Header.Pos))
		}
	case EDIFACT:
		if id := ic.Header.Comp(1, 1); id != "" && !strings.HasPrefix(id, "UNO") {
			v.warns = append(v.warns, warnDiag(CodeNonStandardSyntax,
				fmt.Sprintf("syntax identifier %q does not name a UNO character set", id), ic.Header.Pos))
		}
	}
}

// controlEqual compares control references ignoring the leading-zero and
// space padding senders commonly apply.
func controlEqual(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == b {
		return true
	}
	at := strings.TrimLeft(a, "0")
	bt := strings.TrimLeft(b, "0")
	return at != "" && at == bt
}
