package grammar

import (
	"fmt"
	"strings"
)

// tokenKind identifies the lexical class of a token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString // quoted keyword literal, quotes stripped
	tokPunct  // one of : ; = | ( ) [ ] { } , ? * + @ . or the compound += ?=
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokPunct:
		return "punctuation"
	default:
		return "?"
	}
}

// token is one lexical unit of a grammar file.
type token struct {
	Kind tokenKind
	Text string
	Pos  Position
	End  Position
}

// Rng returns the source range covered by the token.
func (t token) Rng() Range { return Range{Start: t.Pos, End: t.End} }

// lexer iterates byte-by-byte over grammar source, tracking line/column
// positions and string literal boundaries. Comments (// and /* */) are
// skipped as whitespace.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
	errs []error
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// position returns the current source position.
func (l *lexer) position() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// advance consumes one byte, updating line/column.
func (l *lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

// peek returns the next byte without advancing, or 0 at end of input.
func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

// lookingAt checks if the remaining input starts with the given prefix.
func (l *lexer) lookingAt(prefix string) bool {
	return strings.HasPrefix(l.src[l.pos:], prefix)
}

// skipBlanks consumes whitespace and comments.
func (l *lexer) skipBlanks() {
	for !l.eof() {
		switch {
		case l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\r' || l.peek() == '\n':
			l.advance()
		case l.lookingAt("//"):
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}
		case l.lookingAt("/*"):
			start := l.position()
			l.advance()
			l.advance()
			for !l.eof() && !l.lookingAt("*/") {
				l.advance()
			}
			if l.eof() {
				l.errs = append(l.errs, &ParseError{Pos: start, Msg: "unterminated comment"})
				return
			}
			l.advance()
			l.advance()
		default:
			return
		}
	}
}

// next scans and returns the next token.
func (l *lexer) next() token {
	l.skipBlanks()
	start := l.position()
	if l.eof() {
		return token{Kind: tokEOF, Pos: start, End: start}
	}

	ch := l.peek()
	switch {
	case isIdentStart(ch):
		var sb strings.Builder
		for !l.eof() && isIdentPart(l.peek()) {
			sb.WriteByte(l.advance())
		}
		return token{Kind: tokIdent, Text: sb.String(), Pos: start, End: l.position()}

	case ch == '\'' || ch == '"':
		quote := l.advance()
		var sb strings.Builder
		for !l.eof() && l.peek() != quote && l.peek() != '\n' {
			c := l.advance()
			if c == '\\' && !l.eof() {
				c = l.advance()
			}
			sb.WriteByte(c)
		}
		if l.eof() || l.peek() != quote {
			l.errs = append(l.errs, &ParseError{Pos: start, Msg: "unterminated string"})
		} else {
			l.advance()
		}
		return token{Kind: tokString, Text: sb.String(), Pos: start, End: l.position()}

	case l.lookingAt("+="), l.lookingAt("?="):
		a := l.advance()
		b := l.advance()
		return token{Kind: tokPunct, Text: string([]byte{a, b}), Pos: start, End: l.position()}

	case strings.IndexByte(":;=|()[]{},?*+@.", ch) >= 0:
		l.advance()
		return token{Kind: tokPunct, Text: string(ch), Pos: start, End: l.position()}

	default:
		l.advance()
		l.errs = append(l.errs, &ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", ch)})
		return l.next()
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ('0' <= ch && ch <= '9')
}
