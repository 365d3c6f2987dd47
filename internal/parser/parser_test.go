package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letung3105/glox/internal/ast"
	"github.com/letung3105/glox/internal/lexer"
)

func parse(t *testing.T, src string) ([]ast.Stmt, error) {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	require.NoError(t, err)
	return New(toks).Parse()
}

func TestParseArithmeticPrecedence(t *testing.T) {
	stmts, err := parse(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	printStmt := stmts[0].(*ast.PrintStmt)
	assert.Equal(t, "(+ 1 (* 2 3))", ast.Print(printStmt.Expr))
}

func TestParseForDesugarsToWhileInBlock(t *testing.T) {
	stmts, err := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)
	_, isVar := outer.Stmts[0].(*ast.VarStmt)
	assert.True(t, isVar)

	while, ok := outer.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	body, ok := while.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
}

func TestParseForMissingConditionDefaultsTrue(t *testing.T) {
	stmts, err := parse(t, "for (;;) print 1;")
	require.NoError(t, err)

	outer := stmts[0].(*ast.BlockStmt)
	while := outer.Stmts[0].(*ast.WhileStmt)
	lit, ok := while.Cond.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, true, lit.Val)
}

func TestParseInvalidAssignmentTargetDoesNotPanicOrSync(t *testing.T) {
	stmts, err := parse(t, "1 + 2 = 3; print 1;")
	assert.Error(t, err)
	// Both statements still parse: the invalid-assignment error does not
	// trigger panic-mode synchronize, per spec.md §4.2.
	require.Len(t, stmts, 2)
}

func TestParsePanicModeRecoversAtNextStatement(t *testing.T) {
	stmts, err := parse(t, "1 + ; print 2;")
	assert.Error(t, err)
	require.Len(t, stmts, 1)
	printStmt, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok)
	lit := printStmt.Expr.(*ast.LiteralExpr)
	assert.Equal(t, 2.0, lit.Val)
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts, err := parse(t, "class B < A { init(x) { this.x = x; } }")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	classStmt := stmts[0].(*ast.ClassStmt)
	assert.Equal(t, "B", classStmt.Name.Lexeme)
	require.NotNil(t, classStmt.Super)
	assert.Equal(t, "A", classStmt.Super.Name.Lexeme)
	require.Len(t, classStmt.Methods, 1)
	assert.Equal(t, "init", classStmt.Methods[0].Name.Lexeme)
}

func TestParseCallAndGetChain(t *testing.T) {
	stmts, err := parse(t, "a.b(1, 2).c;")
	require.NoError(t, err)
	exprStmt := stmts[0].(*ast.ExprStmt)
	get, ok := exprStmt.Expr.(*ast.GetExpr)
	require.True(t, ok)
	assert.Equal(t, "c", get.Name.Lexeme)
	call, ok := get.Obj.(*ast.CallExpr)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
}

func TestParseLogicalOperatorsAreLogicalNotBinary(t *testing.T) {
	stmts, err := parse(t, "print 1 and 2 or 3;")
	require.NoError(t, err)
	printStmt := stmts[0].(*ast.PrintStmt)
	or, ok := printStmt.Expr.(*ast.LogicalExpr)
	require.True(t, ok)
	_, isLogical := or.Lhs.(*ast.LogicalExpr)
	assert.True(t, isLogical)
}

func TestParseTooManyArgsWarnsButDoesNotFailParse(t *testing.T) {
	args := "1"
	for i := 0; i < 255; i++ {
		args += ",1"
	}
	stmts, err := parse(t, "f("+args+");")
	assert.Error(t, err)             // warned for exceeding 255 arguments...
	require.Len(t, stmts, 1)         // ...but the call still parses as one statement.
	exprStmt := stmts[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.CallExpr)
	assert.Len(t, call.Args, 256)
}
