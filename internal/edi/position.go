package edi

import "fmt"

// Position locates a token or diagnostic within the raw interchange text.
// Line and Column are 1-based; Offset is the 0-based byte offset.
// SegmentIndex is the 0-based segment position in the interchange.
// ElementIndex follows EDI's 1-based element numbering, with 0 meaning the
// segment identifier itself. ComponentIndex is only meaningful for
// component tokens and component-level diagnostics.
type Position struct {
	Line           int
	Column         int
	Offset         int
	SegmentIndex   int
	ElementIndex   int
	ComponentIndex int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}
