package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letung3105/glox/internal/ast"
	"github.com/letung3105/glox/internal/lexer"
	"github.com/letung3105/glox/internal/parser"
)

func resolveSrc(t *testing.T, src string) (map[ast.Expr]int, error) {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	require.NoError(t, err)
	stmts, err := parser.New(toks).Parse()
	require.NoError(t, err)
	return New().Resolve(stmts)
}

func TestResolveLocalVariableDistance(t *testing.T) {
	locals, err := resolveSrc(t, `
		{
			var a = 1;
			{
				var b = a;
			}
		}
	`)
	require.NoError(t, err)
	assert.Len(t, locals, 1) // `a` inside the inner block resolves to distance 1
}

func TestResolveReadLocalInOwnInitializerIsError(t *testing.T) {
	_, err := resolveSrc(t, `
		var a = 1;
		{
			var a = a;
		}
	`)
	assert.Error(t, err)
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	_, err := resolveSrc(t, "return 1;")
	assert.Error(t, err)
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	_, err := resolveSrc(t, `
		class A {
			init() {
				return 1;
			}
		}
	`)
	assert.Error(t, err)
}

func TestResolveReturnBareFromInitializerIsOK(t *testing.T) {
	_, err := resolveSrc(t, `
		class A {
			init() {
				return;
			}
		}
	`)
	assert.NoError(t, err)
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, err := resolveSrc(t, "print this;")
	assert.Error(t, err)
}

func TestResolveSuperOutsideClassIsError(t *testing.T) {
	_, err := resolveSrc(t, "print super.x;")
	assert.Error(t, err)
}

func TestResolveSuperWithoutSuperclassIsError(t *testing.T) {
	_, err := resolveSrc(t, `
		class A {
			m() { return super.m(); }
		}
	`)
	assert.Error(t, err)
}

func TestResolveClassInheritingFromItselfIsError(t *testing.T) {
	_, err := resolveSrc(t, "class A < A {}")
	assert.Error(t, err)
}

func TestResolveDuplicateLocalDeclarationIsError(t *testing.T) {
	_, err := resolveSrc(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	assert.Error(t, err)
}

// TestResolveMultipleErrorsAllSurface is spec.md §7: resolution continues
// so multiple static issues surface in one run.
func TestResolveMultipleErrorsAllSurface(t *testing.T) {
	_, err := resolveSrc(t, `
		return 1;
		print this;
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

// TestResolveIsDeterministic is spec.md §8: locals is a pure function of
// the AST — resolving the same source twice yields tables of equal size.
func TestResolveIsDeterministic(t *testing.T) {
	src := `
		fun outer() {
			var x = 1;
			fun inner() {
				return x;
			}
			return inner;
		}
	`
	first, err := resolveSrc(t, src)
	require.NoError(t, err)
	second, err := resolveSrc(t, src)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}
