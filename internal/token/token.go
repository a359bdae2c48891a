package token

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	EndOfInput Kind = iota
	Identifier
	Integer
	Float
	String
	Symbol
	Keyword
	Operator
	Unknown // terminal: lexing stops right after it
)

var kindNames = map[Kind]string{
	EndOfInput: "EndOfInput",
	Identifier: "Identifier",
	Integer:    "Integer",
	Float:      "Float",
	String:     "String",
	Symbol:     "Symbol",
	Keyword:    "Keyword",
	Operator:   "Operator",
	Unknown:    "Unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTerminal reports whether a token of this kind ends the token stream.
func (k Kind) IsTerminal() bool {
	return k == EndOfInput || k == Unknown
}

// Location is a 1-based line and column pair.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Token is one lexical unit. Location points just past the consumed text.
type Token struct {
	Kind     Kind
	Literal  string
	Location Location
}

func (t Token) String() string {
	return t.Kind.String() + "(" + strconv.Quote(t.Literal) + ")"
}

// Is reports whether t has the given kind and, when literal is not empty, the
// given literal.
func (t Token) Is(kind Kind, literal string) bool {
	return t.Kind == kind && (literal == "" || t.Literal == literal)
}
