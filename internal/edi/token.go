package edi

// TokenKind classifies a lexical token.
type TokenKind int

const (
	// TokenSegmentID is the identifier opening a segment, e.g. "ISA" or "PO1".
	TokenSegmentID TokenKind = iota
	// TokenElement is a data element value.
	TokenElement
	// TokenComponent is a sub-element value within a composite element.
	TokenComponent
	// TokenRepetition is a repeated occurrence of the preceding element (X12 only).
	TokenRepetition
	// TokenSegmentTerminator marks the end of a segment.
	TokenSegmentTerminator
	// TokenEOF marks the end of the buffer. Exactly one is produced per scan.
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenSegmentID:
		return "segment-id"
	case TokenElement:
		return "element"
	case TokenComponent:
		return "component"
	case TokenRepetition:
		return "repetition"
	case TokenSegmentTerminator:
		return "segment-terminator"
	case TokenEOF:
		return "eof"
	}
	return "unknown"
}

// Token is one lexical unit of an interchange. Release characters are
// already stripped from Value; Value holds the literal data.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   Position
}
