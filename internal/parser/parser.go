package parser

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/darilrt/ripl/internal/ast"
	"github.com/darilrt/ripl/internal/token"
	"github.com/darilrt/ripl/internal/types"
	"github.com/k0kubun/pp/v3"
	"github.com/samber/lo"
)

var (
	additiveOperators       = []string{"+", "-"}
	multiplicativeOperators = []string{"*", "/"}
)

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("RIPL_PARSER_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

type Option func(*Parser)

// WithDebugOutput logs every production and dumps the result to stderr.
func WithDebugOutput() Option {
	return func(p *Parser) {
		p.debug = true
	}
}

// WithDebugWriter is WithDebugOutput writing to w instead of stderr.
func WithDebugWriter(w io.Writer) Option {
	return func(p *Parser) {
		p.debug = true
		p.debugOut = w
	}
}

// WithStrictEnd makes Parse fail when tokens other than EndOfInput remain
// after the expression.
func WithStrictEnd() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// Parser is a recursive descent parser over a fixed token slice. Its cursor
// only moves forward, so a Parser parses once and is not safe for concurrent
// use.
type Parser struct {
	tokens []token.Token
	pos    int
	strict bool

	debug    bool
	debugOut io.Writer
	logger   *log.Logger
}

func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens, debug: parserDebugLog}
	for _, opt := range opts {
		opt(p)
	}
	if p.debugOut == nil {
		p.debugOut = os.Stderr
	}
	p.logger = log.New(p.debugOut, "", log.LstdFlags)
	return p
}

func Parse(tokens []token.Token, opts ...Option) (*ast.AST, error) {
	return New(tokens, opts...).Parse()
}

func (p *Parser) Parse() (*ast.AST, error) {
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if p.strict {
		if tok, ok := p.peek(); ok && tok.Kind != token.EndOfInput {
			if p.debug {
				p.logger.Println("not consumed token: ", tok)
			}
			return nil, p.createInvalidTokenError(tok, "end of input")
		}
	}

	tree := &ast.AST{Statement: stmt}
	if p.debug {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		printer.Fprintln(p.debugOut, p.tokens)
		printer.Fprintln(p.debugOut, tree)
		p.logger.Println(tree)
	}
	return tree, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr}, nil
}

// expression = additive
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAdditive()
}

// additive = multiplicative ( ('+' | '-') additive )?
func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	op, ok := p.acceptOperator(additiveOperators)
	if !ok {
		return left, nil
	}

	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{Left: left, Operator: op, Right: right}, nil
}

// multiplicative = primary ( ('*' | '/') multiplicative )?
func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	op, ok := p.acceptOperator(multiplicativeOperators)
	if !ok {
		return left, nil
	}

	right, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{Left: left, Operator: op, Right: right}, nil
}

// primary = Integer | Float | String | '(' expression ')'
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.createEndOfTokensError("a primary expression")
	}
	if p.debug {
		p.logger.Println("primary token: ", tok)
	}

	switch {
	case tok.Is(token.Integer, ""):
		p.next()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.createError(tok, fmt.Errorf("invalid integer %s at %s: %w", tok.Literal, tok.Location, err))
		}
		return &ast.IntegerLiteral{Value: v}, nil

	case tok.Is(token.Float, ""):
		p.next()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.createError(tok, fmt.Errorf("invalid number %s at %s: %w", tok.Literal, tok.Location, err))
		}
		return &ast.FloatLiteral{Value: v}, nil

	case tok.Is(token.String, ""):
		p.next()
		return &ast.StringLiteral{Value: tok.Literal}, nil

	case tok.Is(token.Symbol, "("):
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		closeTok, ok := p.peek()
		if !ok {
			return nil, p.createEndOfTokensError("')'")
		}
		if !closeTok.Is(token.Symbol, ")") {
			return nil, p.createInvalidTokenError(closeTok, "')'")
		}
		p.next()
		if p.debug {
			p.logger.Println("close paren token: ", closeTok)
		}
		return expr, nil

	default:
		return nil, p.createInvalidTokenError(tok, "a primary expression")
	}
}

// acceptOperator consumes the next token when it is one of the operators.
func (p *Parser) acceptOperator(operators []string) (ast.BinaryOperator, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind != token.Operator || !lo.Contains(operators, tok.Literal) {
		return 0, false
	}
	p.next()
	if p.debug {
		p.logger.Println("operator token: ", tok)
	}

	op, ok := ast.LookupBinaryOperator(tok.Literal)
	if !ok {
		panic(fmt.Sprintf("should not reach here: operator=%s", tok.Literal))
	}
	return op, true
}

func (p *Parser) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) next() {
	p.pos++
}

func (p *Parser) createInvalidTokenError(tok token.Token, expected string) error {
	return p.createError(tok, fmt.Errorf("expected %s but got %s at %s", expected, tok, tok.Location))
}

func (p *Parser) createEndOfTokensError(expected string) error {
	return &types.Error{
		Tag: types.ParseFailureTag,
		Err: fmt.Errorf("expected %s but reached the end of tokens", expected),
	}
}

func (p *Parser) createError(tok token.Token, err error) error {
	return types.NewTokenError(types.ParseFailureTag, tok, err)
}
