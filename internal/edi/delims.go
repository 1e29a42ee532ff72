package edi

import (
	"bytes"
	"fmt"
)

// Standard identifies the EDI syntax family of an interchange.
type Standard int

const (
	X12 Standard = iota
	EDIFACT
)

func (s Standard) String() string {
	switch s {
	case X12:
		return "X12"
	case EDIFACT:
		return "EDIFACT"
	}
	return "unknown"
}

// Delimiters is the active delimiter set for one interchange. A zero byte
// means the delimiter is not in use (X12 has no release character; the
// repetition separator is absent below version 00402). Resolved once per
// interchange and never mutated afterwards.
type Delimiters struct {
	Element    byte
	Component  byte
	Repetition byte
	Segment    byte
	Release    byte
	Decimal    byte
}

// DefaultX12 returns the customary X12 delimiter set.
func DefaultX12() Delimiters {
	return Delimiters{Element: '*', Component: ':', Repetition: '^', Segment: '~'}
}

// DefaultEDIFACT returns the UNA defaults from ISO 9735.
func DefaultEDIFACT() Delimiters {
	return Delimiters{Element: '+', Component: ':', Repetition: 0, Segment: '\'', Release: '?', Decimal: '.'}
}

// Validate reports a configuration error when two in-use delimiters share
// the same character. A misconfigured set is a programmer error, not a
// malformed-input diagnostic.
func (d Delimiters) Validate() error {
	chars := []byte{d.Element, d.Component, d.Repetition, d.Segment, d.Release}
	seen := map[byte]bool{}
	for _, c := range chars {
		if c == 0 {
			continue
		}
		if seen[c] {
			return fmt.Errorf("delimiters: character %q used twice", c)
		}
		seen[c] = true
	}
	if d.Element == 0 || d.Segment == 0 || d.Component == 0 {
		return fmt.Errorf("delimiters: element, component and segment delimiters are required")
	}
	return nil
}

// isDelimiter reports whether c is any in-use delimiter or the release char.
func (d Delimiters) isDelimiter(c byte) bool {
	if c == 0 {
		return false
	}
	return c == d.Element || c == d.Component || c == d.Repetition || c == d.Segment || c == d.Release
}

const (
	// minX12Header covers "ISA" plus enough separators to locate the
	// component separator and terminator even with empty fields.
	minX12Header = 20
	// unaLength is "UNA" plus the six service characters.
	unaLength = 9
)

// detectStandard inspects the buffer prefix, skipping leading whitespace.
func detectStandard(buf []byte) (Standard, *Diagnostic) {
	trimmed := bytes.TrimLeft(buf, " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte("ISA")):
		return X12, nil
	case bytes.HasPrefix(trimmed, []byte("UNA")), bytes.HasPrefix(trimmed, []byte("UNB")):
		return EDIFACT, nil
	}
	d := errDiag(CodeMalformedEnvelope, "interchange does not begin with ISA, UNA or UNB", Position{Line: 1, Column: 1})
	return 0, &d
}

// resolveDelimiters derives the delimiter set for the buffer, honoring an
// explicit override when given.
func resolveDelimiters(buf []byte, std Standard, explicit *Delimiters) (Delimiters, *Diagnostic) {
	if explicit != nil {
		if err := explicit.Validate(); err != nil {
			d := errDiag(CodeMalformedEnvelope, err.Error(), Position{Line: 1, Column: 1})
			return Delimiters{}, &d
		}
		return *explicit, nil
	}
	buf = bytes.TrimLeft(buf, " \t\r\n")
	if std == X12 {
		return resolveX12(buf)
	}
	return resolveEDIFACT(buf)
}

// resolveX12 reads the delimiter set out of the ISA segment itself: the
// element separator is the fourth character, the component separator is the
// value of ISA16, and the segment terminator follows it. ISA11 is taken as
// the repetition separator when it is not alphanumeric (below version 00402
// that position holds the standards identifier "U" instead).
func resolveX12(buf []byte) (Delimiters, *Diagnostic) {
	if len(buf) < minX12Header {
		d := errDiag(CodeMalformedEnvelope, fmt.Sprintf("buffer too short for an ISA header (%d bytes)", len(buf)), Position{Line: 1, Column: 1})
		return Delimiters{}, &d
	}
	d := Delimiters{Element: buf[3]}

	// Walk the ISA fields counting element separators; ISA16 starts after
	// the sixteenth one.
	seps := 0
	i := 3
	elemStart := -1
	for ; i < len(buf); i++ {
		if buf[i] != d.Element {
			continue
		}
		seps++
		if seps == 11 {
			elemStart = i + 1
		}
		if seps == 16 {
			break
		}
	}
	if seps < 16 || i+2 >= len(buf) {
		diag := errDiag(CodeMalformedEnvelope, "ISA segment is truncated before ISA16", Position{Line: 1, Column: 1})
		return Delimiters{}, &diag
	}
	if elemStart >= 0 && !isAlnum(buf[elemStart]) {
		d.Repetition = buf[elemStart]
	}
	d.Component = buf[i+1]
	d.Segment = buf[i+2]

	if err := d.Validate(); err != nil {
		diag := errDiag(CodeMalformedEnvelope, err.Error(), Position{Line: 1, Column: 1})
		return Delimiters{}, &diag
	}
	return d, nil
}

// resolveEDIFACT honors an explicit UNA service string advice and falls
// back to the ISO 9735 defaults otherwise. The six characters after "UNA"
// are component, element, decimal, release, repetition (reserved before
// syntax version 4) and segment terminator, in that order.
func resolveEDIFACT(buf []byte) (Delimiters, *Diagnostic) {
	if !bytes.HasPrefix(buf, []byte("UNA")) {
		return DefaultEDIFACT(), nil
	}
	if len(buf) < unaLength {
		d := errDiag(CodeMalformedEnvelope, fmt.Sprintf("UNA advice is truncated (%d bytes)", len(buf)), Position{Line: 1, Column: 1})
		return Delimiters{}, &d
	}
	d := Delimiters{
		Component: buf[3],
		Element:   buf[4],
		Decimal:   buf[5],
		Release:   buf[6],
		Segment:   buf[8],
	}
	if buf[7] != ' ' {
		d.Repetition = buf[7]
	}
	if err := d.Validate(); err != nil {
		diag := errDiag(CodeMalformedEnvelope, err.Error(), Position{Line: 1, Column: 1})
		return Delimiters{}, &diag
	}
	return d, nil
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}
