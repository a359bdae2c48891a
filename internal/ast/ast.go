package ast

import (
	"strconv"
	"strings"
)

// AST is the root produced by one parse. It is never mutated after parsing.
type AST struct {
	Statement Statement
}

func (a *AST) String() string {
	if a == nil || a.Statement == nil {
		return "nil"
	}
	return a.Statement.String()
}

type Statement interface {
	statementNode()
	String() string
}

type ExpressionStatement struct {
	Expr Expr
}

func (*ExpressionStatement) statementNode() {}

func (s *ExpressionStatement) String() string {
	return render(s.Expr)
}

// FunctionStatement is a named function declaration. The parser does not
// produce it yet.
type FunctionStatement struct {
	Name   string
	Params []string
	Body   Statement
}

func (*FunctionStatement) statementNode() {}

func (s *FunctionStatement) String() string {
	var b strings.Builder
	b.WriteString("(fn ")
	b.WriteString(s.Name)
	b.WriteString(" (")
	b.WriteString(strings.Join(s.Params, " "))
	b.WriteString(") ")
	if s.Body == nil {
		b.WriteString("nil")
	} else {
		b.WriteString(s.Body.String())
	}
	b.WriteByte(')')
	return b.String()
}

type Expr interface {
	exprNode()
	String() string
}

type IntegerLiteral struct {
	Value int64
}

// FloatLiteral holds a finite value. A literal beyond float64 range is a
// parse failure, never an infinity.
type FloatLiteral struct {
	Value float64
}

type StringLiteral struct {
	Value string
}

// BinaryOp owns both operands; neither is ever nil in a parsed tree.
type BinaryOp struct {
	Left     Expr
	Operator BinaryOperator
	Right    Expr
}

func (*IntegerLiteral) exprNode() {}
func (*FloatLiteral) exprNode()   {}
func (*StringLiteral) exprNode()  {}
func (*BinaryOp) exprNode()       {}

func (e *IntegerLiteral) String() string {
	return strconv.FormatInt(e.Value, 10)
}

func (e *FloatLiteral) String() string {
	s := strconv.FormatFloat(e.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (e *StringLiteral) String() string {
	return strconv.Quote(e.Value)
}

func (e *BinaryOp) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(e.Operator.String())
	b.WriteByte(' ')
	b.WriteString(render(e.Left))
	b.WriteByte(' ')
	b.WriteString(render(e.Right))
	b.WriteByte(')')
	return b.String()
}

func render(e Expr) string {
	if e == nil {
		return "nil"
	}
	return e.String()
}
