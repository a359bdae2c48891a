// Package frontend wires the lexer and the parser together for callers that
// start from source text.
package frontend

import (
	"fmt"

	"github.com/darilrt/ripl/internal/ast"
	"github.com/darilrt/ripl/internal/lexer"
	"github.com/darilrt/ripl/internal/parser"
	"github.com/darilrt/ripl/internal/token"
	"github.com/darilrt/ripl/internal/types"
)

func Tokenize(source string) []token.Token {
	return lexer.New(source).ReadAll()
}

// Parse lexes and parses source. A token stream cut short by an Unknown token
// is reported as a LexicalUnknown error before the parser runs.
func Parse(source string, opts ...parser.Option) (*ast.AST, error) {
	tokens := Tokenize(source)
	if last := tokens[len(tokens)-1]; last.Kind == token.Unknown {
		return nil, types.NewTokenError(types.LexicalUnknownTag, last,
			fmt.Errorf("unknown character %q at %s", last.Literal, last.Location))
	}

	return parser.Parse(tokens, opts...)
}
