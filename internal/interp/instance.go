package interp

import (
	"fmt"

	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/token"
)

// instance is a runtime object: a class plus its own field bindings, per
// spec.md §3.
type instance struct {
	klass  *class
	fields map[string]interface{}
}

func newInstance(klass *class) *instance {
	return &instance{klass: klass, fields: make(map[string]interface{})}
}

// get reads a property: a field first, then a bound method; a miss on
// both is a runtime error.
func (i *instance) get(name *token.Token) (interface{}, error) {
	if val, ok := i.fields[name.Lexeme]; ok {
		return val, nil
	}
	if method, ok := i.klass.findMethod(name.Lexeme); ok {
		return method.bind(i), nil
	}
	return nil, diagnostics.NewRuntimeError(name, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

func (i *instance) set(name *token.Token, value interface{}) {
	i.fields[name.Lexeme] = value
}

func (i *instance) String() string {
	return fmt.Sprintf("%s instance", i.klass.name)
}
