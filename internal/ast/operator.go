package ast

import (
	"fmt"

	"github.com/samber/lo"
)

type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
)

var binaryOperatorSymbols = map[BinaryOperator]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
}

var binaryOperatorBySymbol = lo.Invert(binaryOperatorSymbols)

func (op BinaryOperator) String() string {
	if s, ok := binaryOperatorSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// LookupBinaryOperator returns the operator spelled by symbol.
func LookupBinaryOperator(symbol string) (BinaryOperator, bool) {
	op, ok := binaryOperatorBySymbol[symbol]
	return op, ok
}
