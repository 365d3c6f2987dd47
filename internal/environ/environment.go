// Package environ implements Lox's lexically nested name->value environment
// chain, per spec.md §4.4.
package environ

import (
	"fmt"

	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/token"
)

// Environment is a single scope: a binding map plus an optional parent.
type Environment struct {
	enclosing *Environment
	values    map[string]interface{}
}

// New constructs an Environment whose parent is enclosing (nil for globals).
func New(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]interface{})}
}

// Define unconditionally inserts or overwrites name in this scope.
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

// Get returns the binding for name, searching outward through parents.
func (e *Environment) Get(name *token.Token) (interface{}, error) {
	if val, ok := e.values[name.Lexeme]; ok {
		return val, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, diagnostics.NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// Assign rebinds name in the nearest scope that already defines it; it
// never auto-declares. Returns immediately after a successful recursive
// assign rather than falling through afterward (DESIGN.md open question 2).
func (e *Environment) Assign(name *token.Token, value interface{}) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return diagnostics.NewRuntimeError(name, fmt.Sprintf("Undefined variable '%s'.", name.Lexeme))
}

// Ancestor walks distance parent links.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name directly from the scope distance hops away, used when
// the resolver already knows the exact depth.
func (e *Environment) GetAt(distance int, name string) interface{} {
	return e.Ancestor(distance).values[name]
}

// AssignAt writes value directly into the scope distance hops away.
func (e *Environment) AssignAt(distance int, name *token.Token, value interface{}) {
	e.Ancestor(distance).values[name.Lexeme] = value
}
