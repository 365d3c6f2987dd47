package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/letung3105/glox/internal/token"
)

func TestPrintBinaryOfUnaryAndGroup(t *testing.T) {
	expr := NewBinaryExpr(
		NewUnaryExpr(token.New(token.MINUS, "-", nil, 1), NewLiteralExpr(123.0)),
		token.New(token.STAR, "*", nil, 1),
		NewGroupExpr(NewLiteralExpr(45.67)),
	)
	assert.Equal(t, "(* (- 123) (group 45.67))", Print(expr))
}

func TestPrintNilLiteral(t *testing.T) {
	assert.Equal(t, "nil", Print(NewLiteralExpr(nil)))
}

func TestPrintVarExpr(t *testing.T) {
	assert.Equal(t, "x", Print(NewVarExpr(token.New(token.IDENTIFIER, "x", nil, 1))))
}
