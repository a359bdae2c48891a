package types

import (
	"errors"
	"strings"

	"github.com/darilrt/ripl/internal/token"
)

type ErrorTag string

const (
	LexicalUnknownTag ErrorTag = "LexicalUnknown"
	ParseFailureTag   ErrorTag = "ParseFailure"
)

// Exception is an error that can describe itself as a JSON-able value.
type Exception interface {
	error
	Exception() any
}

// Error is a tagged failure. Token, when set, is the token the failure was
// detected at and is reported with its location.
type Error struct {
	Tag   ErrorTag
	Err   error
	Token *token.Token
}

func NewTokenError(tag ErrorTag, tok token.Token, err error) *Error {
	return &Error{Tag: tag, Err: err, Token: &tok}
}

var _ Exception = (*Error)(nil)

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Tag)
	}

	var b strings.Builder
	b.WriteString(string(e.Tag))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Exception() any {
	tags := []any{e.Tag}
	for err := errors.Unwrap(error(e)); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			tags = append(tags, e.Tag)
		}
	}

	o := map[string]any{
		"tags": tags,
	}
	if e.Err != nil {
		o["message"] = e.Err.Error()
	}
	if e.Token != nil {
		o["token"] = *e.Token
		o["line"] = e.Token.Location.Line
		o["column"] = e.Token.Location.Column
	}
	return o
}

// HasTag reports whether any *Error in err's chain carries tag.
func HasTag(err error, tag ErrorTag) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Tag == tag {
			return true
		}
		err = e.Err
	}
	return false
}
