package lexer

import (
	"io"
	"strconv"
	"unicode"
)

// TokenType describes the kind of token.
type TokenType string

const (
	// Special
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"

	// Delimiters
	LPAREN TokenType = "("
	RPAREN TokenType = ")"
)

// Token represents a single lexical token.
type Token struct {
	Type   TokenType
	Lexeme string
	Value  int64 // parsed integer, set for NUMBER only
	Line   int
	Column int
}

// Lexer converts a character stream into tokens. It reads one rune at a
// time and keeps a one-rune pushback buffer, so the underlying reader is
// never consumed past the end of the current token.
//
// The lexer itself never fails: a rune it does not recognize comes back
// verbatim as an ILLEGAL token for the parser to reject, and end of input
// yields an EOF token on every call from then on.
type Lexer struct {
	r   io.RuneReader
	eof bool

	buf     rune
	bufLine int
	bufCol  int
	haveBuf bool

	line    int
	col     int
	newline bool
}

// New creates a lexer over the given character source.
func New(r io.RuneReader) *Lexer {
	return &Lexer{r: r, line: 1}
}

// Next returns the next token from the stream.
func (l *Lexer) Next() Token {
	ch, ok := l.read()
	for ok && unicode.IsSpace(ch) {
		ch, ok = l.read()
	}
	if !ok {
		return Token{Type: EOF, Line: l.line, Column: l.col}
	}

	line, col := l.line, l.col

	switch {
	case ch == '(':
		return Token{Type: LPAREN, Lexeme: "(", Line: line, Column: col}
	case ch == ')':
		return Token{Type: RPAREN, Lexeme: ")", Line: line, Column: col}
	case isLetter(ch):
		return l.lexIdentifier(ch, line, col)
	case isDigit(ch):
		return l.lexNumber(ch, line, col)
	default:
		return Token{Type: ILLEGAL, Lexeme: string(ch), Line: line, Column: col}
	}
}

// read consumes one rune, preferring the pushback buffer, and keeps
// l.line/l.col pointing at the rune just returned.
func (l *Lexer) read() (rune, bool) {
	if l.haveBuf {
		l.haveBuf = false
		l.line, l.col = l.bufLine, l.bufCol
		return l.buf, true
	}
	if l.eof {
		return 0, false
	}
	ch, _, err := l.r.ReadRune()
	if err != nil {
		l.eof = true
		return 0, false
	}
	if l.newline {
		l.line++
		l.col = 0
		l.newline = false
	}
	l.col++
	if ch == '\n' {
		l.newline = true
	}
	return ch, true
}

func (l *Lexer) unread(ch rune) {
	l.buf = ch
	l.bufLine = l.line
	l.bufCol = l.col
	l.haveBuf = true
}

// lexIdentifier scans a letter followed by any run of letters and digits.
func (l *Lexer) lexIdentifier(first rune, line, col int) Token {
	lex := []rune{first}
	for {
		ch, ok := l.read()
		if !ok {
			break
		}
		if !isLetter(ch) && !isDigit(ch) {
			l.unread(ch)
			break
		}
		lex = append(lex, ch)
	}
	return Token{Type: IDENT, Lexeme: string(lex), Line: line, Column: col}
}

// lexNumber scans an integer literal. A literal starting with '0' is
// exactly that single digit, so "01" lexes as two numbers; otherwise a
// nonzero digit is followed by any run of further digits.
func (l *Lexer) lexNumber(first rune, line, col int) Token {
	lex := []rune{first}
	if first != '0' {
		for {
			ch, ok := l.read()
			if !ok {
				break
			}
			if !isDigit(ch) {
				l.unread(ch)
				break
			}
			lex = append(lex, ch)
		}
	}
	s := string(lex)
	// A digit run past the int64 range clamps to the nearest bound;
	// the lexer never fails, and the full run stays in Lexeme.
	v, _ := strconv.ParseInt(s, 10, 64)
	return Token{Type: NUMBER, Lexeme: s, Value: v, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}
