package ast

import (
	"github.com/goccy/go-json"
)

// JSON forms are tagged with "type" so consumers can switch on the variant.

func (a *AST) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Statement Statement `json:"statement"`
	}{a.Statement})
}

func (s *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Expr Expr   `json:"expr"`
	}{"ExpressionStatement", s.Expr})
}

func (s *FunctionStatement) MarshalJSON() ([]byte, error) {
	params := s.Params
	if params == nil {
		params = []string{}
	}
	return json.Marshal(struct {
		Type   string    `json:"type"`
		Name   string    `json:"name"`
		Params []string  `json:"params"`
		Body   Statement `json:"body"`
	}{"FunctionStatement", s.Name, params, s.Body})
}

func (e *IntegerLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value int64  `json:"value"`
	}{"IntegerLiteral", e.Value})
}

func (e *FloatLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string  `json:"type"`
		Value float64 `json:"value"`
	}{"FloatLiteral", e.Value})
}

func (e *StringLiteral) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{"StringLiteral", e.Value})
}

func (e *BinaryOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Operator string `json:"operator"`
		Left     Expr   `json:"left"`
		Right    Expr   `json:"right"`
	}{"BinaryOp", e.Operator.String(), e.Left, e.Right})
}
