package edi

import "strings"

// lexer scans an interchange buffer into a flat token stream using a
// resolved delimiter set. It is a single forward pass with no lookahead
// beyond the release character; unknown segment identifiers are not its
// concern.
type lexer struct {
	src []byte
	d   Delimiters

	off  int
	line int
	col  int

	segIdx  int
	elemIdx int
	compIdx int

	// termPos is the position of the most recently consumed delimiter.
	termPos Position
}

func newLexer(src []byte, d Delimiters) *lexer {
	return &lexer{src: src, d: d, line: 1, col: 1}
}

// scan tokenizes the whole buffer, ending with exactly one EOF token.
func (l *lexer) scan() []Token {
	var toks []Token
	nextKind := TokenSegmentID
	l.skipTrivia()

	for l.off < len(l.src) {
		pos := l.position()
		value, delim := l.scanValue()
		switch nextKind {
		case TokenComponent:
			pos.ComponentIndex = l.compIdx
		case TokenSegmentID, TokenElement, TokenRepetition:
			pos.ComponentIndex = 0
		}
		toks = append(toks, Token{Kind: nextKind, Value: value, Pos: pos})

		switch delim {
		case l.d.Element:
			l.elemIdx++
			l.compIdx = 0
			nextKind = TokenElement
		case l.d.Component:
			l.compIdx++
			nextKind = TokenComponent
		case l.d.Repetition:
			if l.d.Repetition != 0 {
				l.compIdx = 0
				nextKind = TokenRepetition
			}
		case l.d.Segment:
			toks = append(toks, Token{Kind: TokenSegmentTerminator, Pos: l.termPos})
			l.segIdx++
			l.elemIdx = 0
			l.compIdx = 0
			nextKind = TokenSegmentID
			l.skipTrivia()
		default: // end of buffer
		}
	}

	toks = append(toks, Token{Kind: TokenEOF, Pos: l.position()})
	return toks
}

// scanValue reads characters until the next unescaped delimiter, consuming
// the delimiter. It returns the literal value (release characters stripped)
// and the delimiter that ended it, 0 at end of buffer. The position of the
// consumed delimiter is left in l.termPos for terminator tokens.
func (l *lexer) scanValue() (string, byte) {
	var b strings.Builder
	for l.off < len(l.src) {
		c := l.src[l.off]
		if c == l.d.Release && l.d.Release != 0 {
			l.advance()
			if l.off >= len(l.src) {
				break
			}
			b.WriteByte(l.src[l.off])
			l.advance()
			continue
		}
		if l.d.isDelimiter(c) && c != l.d.Release {
			l.termPos = l.position()
			l.advance()
			return b.String(), c
		}
		b.WriteByte(c)
		l.advance()
	}
	return b.String(), 0
}

// skipServiceAdvice advances past a leading UNA segment. Its six service
// characters are delimiter definitions, not data, so they must not reach
// the token stream.
func (l *lexer) skipServiceAdvice() {
	l.skipTrivia()
	if l.off+unaLength > len(l.src) || string(l.src[l.off:l.off+3]) != "UNA" {
		return
	}
	for i := 0; i < unaLength; i++ {
		l.advance()
	}
}

// skipTrivia skips whitespace between a segment terminator and the next
// segment identifier. Line breaks inserted for readability advance the
// position but produce no tokens.
func (l *lexer) skipTrivia() {
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *lexer) advance() {
	if l.src[l.off] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.off++
}

func (l *lexer) position() Position {
	return Position{
		Line:         l.line,
		Column:       l.col,
		Offset:       l.off,
		SegmentIndex: l.segIdx,
		ElementIndex: l.elemIdx,
	}
}
