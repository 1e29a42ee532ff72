package edi

import "strings"

// ParseOptions configures parsing. A nil Delimiters means the set is
// resolved from the interchange header itself.
type ParseOptions struct {
	Delimiters *Delimiters
}

// Parse resolves delimiters, tokenizes and structurally parses one
// interchange, then runs integrity validation when the structure is sound.
// It never panics on malformed input: all problems are reported through the
// Result's diagnostic lists, and a best-effort partial tree is returned
// even on fatal structural errors.
func Parse(input []byte) Result {
	return ParseWithOptions(input, ParseOptions{})
}

// ParseWithOptions is Parse with explicit configuration.
func ParseWithOptions(input []byte, opts ParseOptions) Result {
	std, diag := detectStandard(input)
	if diag != nil {
		return Result{Errors: []Diagnostic{*diag}}
	}
	delims, diag := resolveDelimiters(input, std, opts.Delimiters)
	if diag != nil {
		return Result{Errors: []Diagnostic{*diag}}
	}

	l := newLexer(input, delims)
	if std == EDIFACT {
		l.skipServiceAdvice()
	}
	toks := l.scan()

	p := &parser{toks: toks, d: dialectFor(std)}
	ic := p.run()
	if ic != nil {
		ic.Standard = std
		ic.Delims = delims
	}

	res := Result{
		OK:          !p.fatal && ic != nil,
		Interchange: ic,
		Errors:      p.errs,
		Warnings:    p.warns,
	}
	if res.OK {
		verrs, vwarns := Validate(ic)
		res.Errors = append(res.Errors, verrs...)
		res.Warnings = append(res.Warnings, vwarns...)
	}
	return res
}

// parser assembles the token stream into the envelope tree. It is a small
// state machine: the open transaction and group frames are the state, and
// envelope-boundary segment identifiers drive the transitions. Anything
// else inside a transaction frame is an ordinary data segment.
type parser struct {
	toks []Token
	i    int
	d    dialect

	errs  []Diagnostic
	warns []Diagnostic
	fatal bool
}

func (p *parser) structural(code Code, msg string, pos Position) {
	p.errs = append(p.errs, errDiag(code, msg, pos))
	p.fatal = true
}

func (p *parser) run() *Interchange {
	seg := p.nextSegment()
	if seg == nil || seg.ID != p.d.interchangeHeader {
		pos := p.eofPosition()
		got := "end of input"
		if seg != nil {
			pos = seg.Pos
			got = "segment " + seg.ID
		}
		p.structural(CodeMissingHeader, "expected interchange header "+p.d.interchangeHeader+", got "+got, pos)
		return nil
	}
	if p.d.standard == X12 {
		trimFixedWidth(seg)
	}

	ic := &Interchange{Header: seg}
	var group *FunctionalGroup
	var txn *TransactionSet

	closeTxn := func(pos Position) {
		if txn == nil {
			return
		}
		p.structural(CodeUntermTransaction, "transaction "+txn.Header.Elem(p.d.txnRefHeader)+" has no "+p.d.txnTrailer+" trailer", pos)
		p.attach(ic, group, txn)
		txn = nil
	}
	closeGroup := func(pos Position) {
		if group == nil {
			return
		}
		p.structural(CodeUntermGroup, "group "+group.Header.Elem(p.d.grpRefHeader)+" has no "+p.d.groupTrailer+" trailer", pos)
		ic.Groups = append(ic.Groups, group)
		group = nil
	}

	for {
		seg = p.nextSegment()
		if seg == nil {
			if ic.Trailer == nil {
				closeTxn(p.eofPosition())
				closeGroup(p.eofPosition())
				p.structural(CodeUntermInterchange, "end of input before interchange trailer "+p.d.interchangeTrailer, p.eofPosition())
			}
			return ic
		}
		if ic.Trailer != nil {
			p.structural(CodeTrailingContent, "segment "+seg.ID+" after interchange trailer", seg.Pos)
			return ic
		}

		switch seg.ID {
		case p.d.groupHeader:
			closeTxn(seg.Pos)
			if group != nil {
				closeGroup(seg.Pos)
			}
			group = &FunctionalGroup{Header: seg}

		case p.d.groupTrailer:
			closeTxn(seg.Pos)
			if group == nil {
				p.structural(CodeUnexpectedSegment, p.d.groupTrailer+" without a matching "+p.d.groupHeader, seg.Pos)
				continue
			}
			group.Trailer = seg
			ic.Groups = append(ic.Groups, group)
			group = nil

		case p.d.txnHeader:
			closeTxn(seg.Pos)
			txn = &TransactionSet{Header: seg}

		case p.d.txnTrailer:
			if txn == nil {
				p.structural(CodeUnexpectedSegment, p.d.txnTrailer+" without a matching "+p.d.txnHeader, seg.Pos)
				continue
			}
			txn.Trailer = seg
			p.attach(ic, group, txn)
			txn = nil

		case p.d.interchangeTrailer:
			closeTxn(seg.Pos)
			closeGroup(seg.Pos)
			ic.Trailer = seg

		case p.d.interchangeHeader:
			p.structural(CodeUnexpectedSegment, "nested interchange header "+seg.ID, seg.Pos)

		default:
			if txn != nil {
				txn.Segments = append(txn.Segments, seg)
				continue
			}
			p.structural(CodeUnexpectedSegment, "segment "+seg.ID+" outside a transaction set", seg.Pos)
		}
	}
}

func (p *parser) attach(ic *Interchange, group *FunctionalGroup, txn *TransactionSet) {
	if group != nil {
		group.Transactions = append(group.Transactions, txn)
		return
	}
	ic.Transactions = append(ic.Transactions, txn)
}

// nextSegment assembles tokens into the next Segment, or nil at EOF.
// Segments with an empty identifier are skipped with a warning.
func (p *parser) nextSegment() *Segment {
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF {
			return nil
		}

		seg := &Segment{Pos: tok.Pos}
		if tok.Kind == TokenSegmentID {
			seg.ID = tok.Value
			p.i++
		}

	loop:
		for {
			tok = p.peek()
			switch tok.Kind {
			case TokenElement:
				seg.Elements = append(seg.Elements, Element{Components: []string{tok.Value}})
				p.i++
			case TokenComponent:
				if len(seg.Elements) == 0 {
					seg.Elements = append(seg.Elements, Element{Components: []string{""}})
				}
				last := &seg.Elements[len(seg.Elements)-1]
				if len(last.Repeats) > 0 {
					rep := &last.Repeats[len(last.Repeats)-1]
					rep.Components = append(rep.Components, tok.Value)
				} else {
					last.Components = append(last.Components, tok.Value)
				}
				p.i++
			case TokenRepetition:
				if len(seg.Elements) == 0 {
					seg.Elements = append(seg.Elements, Element{Components: []string{""}})
				}
				last := &seg.Elements[len(seg.Elements)-1]
				last.Repeats = append(last.Repeats, Element{Components: []string{tok.Value}})
				p.i++
			case TokenSegmentTerminator:
				p.i++
				break loop
			case TokenEOF:
				// Unterminated final segment; let the FSM report the
				// missing trailer.
				break loop
			default: // TokenSegmentID mid-segment cannot happen
				p.i++
			}
		}

		if seg.ID == "" {
			if len(seg.Elements) > 0 {
				p.warns = append(p.warns, warnDiag(CodeEmptySegment, "segment with empty identifier skipped", seg.Pos))
			}
			continue
		}
		return seg
	}
}

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return Token{Kind: TokenEOF}
	}
	return p.toks[p.i]
}

func (p *parser) eofPosition() Position {
	if len(p.toks) == 0 {
		return Position{Line: 1, Column: 1}
	}
	return p.toks[len(p.toks)-1].Pos
}

// trimFixedWidth strips the space padding X12's fixed-width ISA fields
// carry, so identifiers compare naturally and regenerated output can be
// re-padded without doubling up.
func trimFixedWidth(seg *Segment) {
	for i := range seg.Elements {
		for j := range seg.Elements[i].Components {
			seg.Elements[i].Components[j] = strings.TrimRight(seg.Elements[i].Components[j], " ")
		}
	}
}
