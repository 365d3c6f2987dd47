package environ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letung3105/glox/internal/token"
)

func nameTok(lexeme string) *token.Token {
	return token.New(token.IDENTIFIER, lexeme, nil, 1)
}

func TestDefineAndGet(t *testing.T) {
	env := New(nil)
	env.Define("a", 1.0)

	val, err := env.Get(nameTok("a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, val)
}

func TestGetUndefinedIsRuntimeError(t *testing.T) {
	env := New(nil)
	_, err := env.Get(nameTok("missing"))
	assert.Error(t, err)
}

func TestGetFallsThroughToParent(t *testing.T) {
	parent := New(nil)
	parent.Define("a", "hi")
	child := New(parent)

	val, err := child.Get(nameTok("a"))
	require.NoError(t, err)
	assert.Equal(t, "hi", val)
}

// TestAssignStopsAtNearestDefiningScope covers DESIGN.md open question 2:
// assign must return immediately once it rebinds in some ancestor, rather
// than also raising for not being found locally.
func TestAssignStopsAtNearestDefiningScope(t *testing.T) {
	parent := New(nil)
	parent.Define("a", 1.0)
	child := New(parent)

	err := child.Assign(nameTok("a"), 2.0)
	require.NoError(t, err)

	val, err := parent.Get(nameTok("a"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, val)
}

func TestAssignUndefinedIsRuntimeError(t *testing.T) {
	env := New(nil)
	err := env.Assign(nameTok("missing"), 1.0)
	assert.Error(t, err)
}

func TestGetAtAndAssignAt(t *testing.T) {
	grandparent := New(nil)
	parent := New(grandparent)
	child := New(parent)

	grandparent.Define("a", 1.0)
	assert.Equal(t, 1.0, child.GetAt(2, "a"))

	child.AssignAt(2, nameTok("a"), 42.0)
	assert.Equal(t, 42.0, grandparent.values["a"])
}

// Closure capture: a child environment holds a live link to its enclosing
// scope, so redefining a variable there after the child is created is
// visible through the child.
func TestClosureCaptureSeesLiveParentBinding(t *testing.T) {
	enclosing := New(nil)
	enclosing.Define("i", 0.0)
	closure := New(enclosing)

	enclosing.Define("i", 1.0)

	val, err := closure.Get(nameTok("i"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, val)
}
