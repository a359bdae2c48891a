package lexer

import (
	"unicode"

	"github.com/darilrt/ripl/internal/token"
	"github.com/samber/lo"
)

var keywords = []string{"let"}

var operatorChars = []rune{'+', '-', '*', '/', '=', '!', '<', '>', '&', '|'}

var symbolChars = []rune{'(', ')', '{', '}', ',', ';', ':', '.', '[', ']', '@', '$', '?'}

// Lexer turns source text into tokens one at a time. A Lexer keeps a cursor
// into the source and must not be shared between goroutines.
type Lexer struct {
	source   []rune
	index    int
	location token.Location
}

func New(source string) *Lexer {
	return &Lexer{
		source:   []rune(source),
		index:    0,
		location: token.Location{Line: 1, Column: 1},
	}
}

// ReadAll drains the lexer. The returned slice always ends with an
// EndOfInput or Unknown token.
func (l *Lexer) ReadAll() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind.IsTerminal() {
			return tokens
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()

		c, ok := l.peek(0)
		if !ok {
			return l.emit(token.EndOfInput, "")
		}

		switch {
		case isAlphabetic(c) || c == '_':
			return l.readIdentifier()
		case isDigit(c):
			return l.readNumber()
		case c == '"' || c == '\'':
			return l.readString(c)
		case c == '/' && l.peekIs(1, '/'):
			l.skipLineComment()
		default:
			return l.readSymbolOrOperator()
		}
	}
}

func (l *Lexer) peek(offset int) (rune, bool) {
	i := l.index + offset
	if i >= len(l.source) {
		return 0, false
	}
	return l.source[i], true
}

func (l *Lexer) peekIs(offset int, want rune) bool {
	c, ok := l.peek(offset)
	return ok && c == want
}

func (l *Lexer) advance() (rune, bool) {
	c, ok := l.peek(0)
	if !ok {
		return 0, false
	}

	l.index++
	if c == '\n' {
		l.location.Line++
		l.location.Column = 1
	} else {
		l.location.Column++
	}
	return c, true
}

// advanceWhile consumes runes while pred holds and returns them.
func (l *Lexer) advanceWhile(pred func(rune) bool) string {
	begin := l.index
	for {
		c, ok := l.peek(0)
		if !ok || !pred(c) {
			break
		}
		l.advance()
	}
	return string(l.source[begin:l.index])
}

func (l *Lexer) emit(kind token.Kind, literal string) token.Token {
	return token.Token{
		Kind:     kind,
		Literal:  literal,
		Location: l.location,
	}
}

func (l *Lexer) skipWhitespace() {
	l.advanceWhile(unicode.IsSpace)
}

func (l *Lexer) skipLineComment() {
	for {
		c, ok := l.advance()
		if !ok || c == '\n' {
			return
		}
	}
}

func (l *Lexer) readIdentifier() token.Token {
	ident := l.advanceWhile(func(c rune) bool {
		return isAlphabetic(c) || unicode.IsNumber(c) || c == '_'
	})

	if lo.Contains(keywords, ident) {
		return l.emit(token.Keyword, ident)
	}
	return l.emit(token.Identifier, ident)
}

func (l *Lexer) readNumber() token.Token {
	begin := l.index
	l.advanceWhile(isDigit)

	if !l.peekIs(0, '.') {
		return l.emit(token.Integer, string(l.source[begin:l.index]))
	}

	l.advance() // '.'
	l.advanceWhile(isDigit)
	return l.emit(token.Float, string(l.source[begin:l.index]))
}

// readString reads a literal quoted by quote. An unterminated literal runs to
// the end of the input.
func (l *Lexer) readString(quote rune) token.Token {
	l.advance()
	contents := l.advanceWhile(func(c rune) bool {
		return c != quote
	})
	l.advance()
	return l.emit(token.String, contents)
}

func (l *Lexer) readSymbolOrOperator() token.Token {
	c, _ := l.advance()

	switch {
	case lo.Contains(operatorChars, c) && l.peekIs(0, '='):
		l.advance()
		return l.emit(token.Operator, string(c)+"=")
	case lo.Contains(operatorChars, c):
		return l.emit(token.Operator, string(c))
	case c == '-' && l.peekIs(0, '>'):
		// not reached while '-' is in operatorChars; "->" lexes as "-" ">"
		l.advance()
		return l.emit(token.Operator, "->")
	case lo.Contains(symbolChars, c):
		return l.emit(token.Symbol, string(c))
	default:
		return l.emit(token.Unknown, string(c))
	}
}

// isAlphabetic reports whether c has the Unicode Alphabetic property, which
// adds letter numbers and combining vowel signs to the letter categories.
func isAlphabetic(c rune) bool {
	return unicode.In(c, unicode.Letter, unicode.Nl, unicode.Other_Alphabetic)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
