package token

import (
	"github.com/goccy/go-json"
)

type tokenJSON struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{
		Kind:    t.Kind.String(),
		Literal: t.Literal,
		Line:    t.Location.Line,
		Column:  t.Location.Column,
	})
}
