package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letung3105/glox/internal/token"
)

func kinds(toks []*token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestScanSingleAndTwoCharTokens(t *testing.T) {
	toks, err := New("() {} , . - + ; * ! != = == < <= > >= /").Scan()
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.SLASH, token.EOF,
	}, kinds(toks))
}

func TestScanLineComment(t *testing.T) {
	toks, err := New("1 // a comment\n2").Scan()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 1.0, toks[0].Literal)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanString(t *testing.T) {
	toks, err := New(`"hello world"`).Scan()
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanMultilineStringAdvancesLine(t *testing.T) {
	toks, err := New("\"a\nb\" 1").Scan()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanUnterminatedStringErrors(t *testing.T) {
	_, err := New(`"unterminated`).Scan()
	assert.Error(t, err)
}

func TestScanNumber(t *testing.T) {
	toks, err := New("123 45.67").Scan()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 123.0, toks[0].Literal)
	assert.Equal(t, 45.67, toks[1].Literal)
}

func TestScanTrailingDotIsNotPartOfNumber(t *testing.T) {
	toks, err := New("123.").Scan()
	require.NoError(t, err)
	// "123" NUMBER, then "." DOT, then EOF.
	require.Len(t, toks, 3)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, token.DOT, toks[1].Type)
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks, err := New("foo and bar").Scan()
	require.NoError(t, err)
	want := []token.Type{token.IDENTIFIER, token.AND, token.IDENTIFIER, token.EOF}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestScanUnexpectedCharacterIsReportedButScanContinues(t *testing.T) {
	toks, err := New("1 @ 2").Scan()
	assert.Error(t, err)
	// The token stream is still produced around the bad character.
	require.Len(t, toks, 3)
	assert.Equal(t, 1.0, toks[0].Literal)
	assert.Equal(t, 2.0, toks[1].Literal)
}

// TestTokenizationRoundTrip is spec.md §8's invariant: concatenating
// lexemes in order equals the source minus whitespace/comments.
func TestTokenizationRoundTrip(t *testing.T) {
	src := "var x = 1 + 2;"
	toks, err := New(src).Scan()
	require.NoError(t, err)

	var joined string
	for _, tok := range toks {
		joined += tok.Lexeme
	}
	assert.Equal(t, "varx=1+2;", joined)
}

func TestEOFLineIsFinalLine(t *testing.T) {
	toks, err := New("1\n2\n3").Scan()
	require.NoError(t, err)
	assert.Equal(t, 3, toks[len(toks)-1].Line)
}
