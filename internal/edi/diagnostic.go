package edi

import (
	"fmt"
	"strings"
)

// Code identifies a diagnostic category. Codes are grouped by class:
// envelope (delimiter resolution), structural (parser), integrity
// (validator) and generate (generator).
type Code string

const (
	// CodeMalformedEnvelope indicates delimiter resolution failed; no tree
	// is produced.
	CodeMalformedEnvelope Code = "envelope-malformed"

	// CodeMissingHeader indicates the interchange header was not the first
	// segment.
	CodeMissingHeader Code = "structural-missing-header"
	// CodeUnexpectedSegment indicates a segment identifier that is not valid
	// in the current envelope state.
	CodeUnexpectedSegment Code = "structural-unexpected-segment"
	// CodeUntermInterchange indicates end of input before the interchange
	// trailer.
	CodeUntermInterchange Code = "structural-unterminated-interchange"
	// CodeUntermGroup indicates a group frame left open at a higher-level
	// trailer or at end of input.
	CodeUntermGroup Code = "structural-unterminated-group"
	// CodeUntermTransaction indicates a transaction frame left open.
	CodeUntermTransaction Code = "structural-unterminated-transaction"
	// CodeTrailingContent indicates segments after the interchange trailer.
	CodeTrailingContent Code = "structural-trailing-content"
	// CodeEmptySegment indicates a segment with an empty identifier; the
	// segment is skipped.
	CodeEmptySegment Code = "structural-empty-segment"

	// CodeControlMismatch indicates a header/trailer control number pair
	// that does not match.
	CodeControlMismatch Code = "integrity-control-mismatch"
	// CodeCountMismatch indicates a trailer-declared child count that does
	// not equal the parsed count.
	CodeCountMismatch Code = "integrity-count-mismatch"
	// CodeBadCount indicates a trailer count that is not numeric.
	CodeBadCount Code = "integrity-count-not-numeric"
	// CodeNonStandardSyntax flags parseable but non-standard header values.
	CodeNonStandardSyntax Code = "syntax-non-standard"

	// CodeUnescapable indicates a data value that cannot be emitted under
	// the active delimiter set (no release character available).
	CodeUnescapable Code = "generate-unescapable"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic describes one problem found while resolving, parsing,
// validating or generating an interchange. Diagnostics are collected and
// returned, never panicked.
type Diagnostic struct {
	Code      Code
	Severity  Severity
	Message   string
	Pos       Position
	SegmentID string
	// ElementIndex and ComponentIndex are 1-based when set, 0 when absent.
	ElementIndex   int
	ComponentIndex int
}

// Error formats the diagnostic with its code, message and position.
func (d Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Code, d.Message)
	if d.SegmentID != "" {
		fmt.Fprintf(&b, " in segment %s", d.SegmentID)
		if d.ElementIndex > 0 {
			fmt.Fprintf(&b, " element %d", d.ElementIndex)
		}
	}
	if d.Pos.Line > 0 {
		fmt.Fprintf(&b, " at %s", d.Pos)
	}
	return b.String()
}

func errDiag(code Code, msg string, pos Position) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityError, Message: msg, Pos: pos}
}

func warnDiag(code Code, msg string, pos Position) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityWarning, Message: msg, Pos: pos}
}

// Result is the outcome of parsing one interchange. OK reports structural
// success: integrity errors found by validation are collected in Errors but
// leave OK true, since the tree itself is complete. On fatal structural
// failure Interchange may still hold a best-effort partial tree.
type Result struct {
	OK          bool
	Interchange *Interchange
	Errors      []Diagnostic
	Warnings    []Diagnostic
}
