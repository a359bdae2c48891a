package lexer_test

import (
	"strings"
	"testing"

	"github.com/darilrt/ripl/internal/lexer"
	"github.com/darilrt/ripl/internal/token"
	"github.com/google/go-cmp/cmp"
)

type tok struct {
	Kind    token.Kind
	Literal string
}

func kindsAndLiterals(tokens []token.Token) []tok {
	result := make([]tok, len(tokens))
	for i, t := range tokens {
		result[i] = tok{Kind: t.Kind, Literal: t.Literal}
	}
	return result
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source   string
		expected []tok
	}{
		{
			source:   "",
			expected: []tok{{token.EndOfInput, ""}},
		},
		{
			source:   " \t\n\r ",
			expected: []tok{{token.EndOfInput, ""}},
		},
		{
			source: "let x",
			expected: []tok{
				{token.Keyword, "let"},
				{token.Identifier, "x"},
				{token.EndOfInput, ""},
			},
		},
		{
			source: "letter _under score_9 ñandú",
			expected: []tok{
				{token.Identifier, "letter"},
				{token.Identifier, "_under"},
				{token.Identifier, "score_9"},
				{token.Identifier, "ñandú"},
				{token.EndOfInput, ""},
			},
		},
		{
			source: "हिंदी Ⅻ ⅷ2",
			expected: []tok{
				{token.Identifier, "हिंदी"},
				{token.Identifier, "Ⅻ"},
				{token.Identifier, "ⅷ2"},
				{token.EndOfInput, ""},
			},
		},
		{
			// U+094D (virama) is a combining mark outside Alphabetic.
			source: "हिन्दी",
			expected: []tok{
				{token.Identifier, "हिन"},
				{token.Unknown, "्"},
			},
		},
		{
			source:   "123.45",
			expected: []tok{{token.Float, "123.45"}, {token.EndOfInput, ""}},
		},
		{
			source:   "42",
			expected: []tok{{token.Integer, "42"}, {token.EndOfInput, ""}},
		},
		{
			source:   "7.",
			expected: []tok{{token.Float, "7."}, {token.EndOfInput, ""}},
		},
		{
			source: "1.2.3",
			expected: []tok{
				{token.Float, "1.2"},
				{token.Symbol, "."},
				{token.Integer, "3"},
				{token.EndOfInput, ""},
			},
		},
		{
			source: "12abc",
			expected: []tok{
				{token.Integer, "12"},
				{token.Identifier, "abc"},
				{token.EndOfInput, ""},
			},
		},
		{
			source:   "// comment\n42",
			expected: []tok{{token.Integer, "42"}, {token.EndOfInput, ""}},
		},
		{
			source:   "// one\n// two\n   // three",
			expected: []tok{{token.EndOfInput, ""}},
		},
		{
			source: "1 / 2 // half",
			expected: []tok{
				{token.Integer, "1"},
				{token.Operator, "/"},
				{token.Integer, "2"},
				{token.EndOfInput, ""},
			},
		},
		{
			source:   `"hello world"`,
			expected: []tok{{token.String, "hello world"}, {token.EndOfInput, ""}},
		},
		{
			source:   `'it"s'`,
			expected: []tok{{token.String, `it"s`}, {token.EndOfInput, ""}},
		},
		{
			source:   `""`,
			expected: []tok{{token.String, ""}, {token.EndOfInput, ""}},
		},
		{
			source:   `"unterminated + 1`,
			expected: []tok{{token.String, "unterminated + 1"}, {token.EndOfInput, ""}},
		},
		{
			source:   `"a\nb"`,
			expected: []tok{{token.String, "a\nb"}, {token.EndOfInput, ""}},
		},
		{
			source:   "+=",
			expected: []tok{{token.Operator, "+="}, {token.EndOfInput, ""}},
		},
		{
			source: "+=1",
			expected: []tok{
				{token.Operator, "+="},
				{token.Integer, "1"},
				{token.EndOfInput, ""},
			},
		},
		{
			source: "== != <= >= -= *= /= &= |= !",
			expected: []tok{
				{token.Operator, "=="},
				{token.Operator, "!="},
				{token.Operator, "<="},
				{token.Operator, ">="},
				{token.Operator, "-="},
				{token.Operator, "*="},
				{token.Operator, "/="},
				{token.Operator, "&="},
				{token.Operator, "|="},
				{token.Operator, "!"},
				{token.EndOfInput, ""},
			},
		},
		{
			source: "a->b",
			expected: []tok{
				{token.Identifier, "a"},
				{token.Operator, "-"},
				{token.Operator, ">"},
				{token.Identifier, "b"},
				{token.EndOfInput, ""},
			},
		},
		{
			source: "(){},;:.[]@$?",
			expected: []tok{
				{token.Symbol, "("},
				{token.Symbol, ")"},
				{token.Symbol, "{"},
				{token.Symbol, "}"},
				{token.Symbol, ","},
				{token.Symbol, ";"},
				{token.Symbol, ":"},
				{token.Symbol, "."},
				{token.Symbol, "["},
				{token.Symbol, "]"},
				{token.Symbol, "@"},
				{token.Symbol, "$"},
				{token.Symbol, "?"},
				{token.EndOfInput, ""},
			},
		},
		{
			source: "1 + # 2",
			expected: []tok{
				{token.Integer, "1"},
				{token.Operator, "+"},
				{token.Unknown, "#"},
			},
		},
		{
			source:   "~~~",
			expected: []tok{{token.Unknown, "~"}},
		},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			actual := kindsAndLiterals(lexer.New(tt.source).ReadAll())
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Errorf("unexpected tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	tokens := lexer.New("let x\n  = 'ab' // c\n12.5").ReadAll()
	expected := []token.Token{
		{Kind: token.Keyword, Literal: "let", Location: token.Location{Line: 1, Column: 4}},
		{Kind: token.Identifier, Literal: "x", Location: token.Location{Line: 1, Column: 6}},
		{Kind: token.Operator, Literal: "=", Location: token.Location{Line: 2, Column: 4}},
		{Kind: token.String, Literal: "ab", Location: token.Location{Line: 2, Column: 9}},
		{Kind: token.Float, Literal: "12.5", Location: token.Location{Line: 3, Column: 5}},
		{Kind: token.EndOfInput, Literal: "", Location: token.Location{Line: 3, Column: 5}},
	}
	if diff := cmp.Diff(expected, tokens); diff != "" {
		t.Errorf("unexpected tokens (-want +got):\n%s", diff)
	}
}

func TestNextTokenAfterEnd(t *testing.T) {
	t.Parallel()

	l := lexer.New("x")
	if tok := l.NextToken(); tok.Kind != token.Identifier {
		t.Fatalf("unexpected token: %s", tok)
	}
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Kind != token.EndOfInput {
			t.Errorf("unexpected token after end: %s", tok)
		}
	}
}

func TestReadAllTerminates(t *testing.T) {
	t.Parallel()

	for _, source := range []string{
		"",
		"\"",
		"'",
		"//",
		"/",
		"1.",
		"((((",
		strings.Repeat("// x\n", 1000),
		strings.Repeat("a + 1.5 * 'q' ", 200),
		"\x00",
		"日本語",
		"   1",
	} {
		tokens := lexer.New(source).ReadAll()
		if len(tokens) == 0 {
			t.Errorf("%q: no tokens", source)
			continue
		}
		if last := tokens[len(tokens)-1]; !last.Kind.IsTerminal() {
			t.Errorf("%q: last token is %s", source, last)
		}
		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Kind.IsTerminal() {
				t.Errorf("%q: terminal token %s before the end", source, tok)
			}
		}
	}
}

func TestRelexLiteral(t *testing.T) {
	t.Parallel()

	tokens := lexer.New(`let answer = (41 + 1.5) * "s" / 'q' >= x_1; y`).ReadAll()
	for _, tok := range tokens {
		if tok.Kind == token.EndOfInput {
			continue
		}

		source := tok.Literal
		if tok.Kind == token.String {
			source = `"` + source + `"`
		}

		relexed := lexer.New(source).NextToken()
		if relexed.Kind != tok.Kind || relexed.Literal != tok.Literal {
			t.Errorf("relex %s: got %s", tok, relexed)
		}
	}
}
