package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "PLUS", PLUS.String())
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "Type(999)", Type(999).String())
}

func TestKeywordsMapsReservedWordsOnly(t *testing.T) {
	assert.Equal(t, CLASS, Keywords["class"])
	assert.Equal(t, WHILE, Keywords["while"])
	assert.Equal(t, ASSERT, Keywords["assert"])
	_, ok := Keywords["notAKeyword"]
	assert.False(t, ok)
}

func TestNewBuildsTokenWithGivenFields(t *testing.T) {
	tok := New(NUMBER, "1", 1.0, 3)
	assert.Equal(t, NUMBER, tok.Type)
	assert.Equal(t, "1", tok.Lexeme)
	assert.Equal(t, 1.0, tok.Literal)
	assert.Equal(t, 3, tok.Line)
}

func TestTokenStringIncludesTypeLexemeAndLiteral(t *testing.T) {
	tok := New(STRING, `"hi"`, "hi", 1)
	s := tok.String()
	assert.Contains(t, s, "STRING")
	assert.Contains(t, s, `"hi"`)
	assert.Contains(t, s, "hi")
}
