package interp

import (
	"fmt"

	"github.com/letung3105/glox/internal/ast"
	"github.com/letung3105/glox/internal/environ"
)

// function is a user-defined Lox function or method, carrying the
// environment it closed over at declaration time, per spec.md §3.
type function struct {
	declaration   *ast.FunctionStmt
	closure       *environ.Environment
	isInitializer bool
}

func newFunction(declaration *ast.FunctionStmt, closure *environ.Environment, isInitializer bool) *function {
	return &function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// bind returns a new function whose closure is a fresh child environment
// defining `this` as instance, implementing method binding.
func (fn *function) bind(inst *instance) *function {
	env := environ.New(fn.closure)
	env.Define("this", inst)
	return newFunction(fn.declaration, env, fn.isInitializer)
}

func (fn *function) Arity() int {
	return len(fn.declaration.Params)
}

// Call implements the function-call protocol of spec.md §4.5: a fresh
// environment parented by the closure, one binding per parameter, the
// body executed via execBlock. A Return unwind's value is the result,
// except in an initializer where the result is always `this`; a body
// that completes normally returns Nil (or `this` for an initializer).
func (fn *function) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := environ.New(fn.closure)
	for i, param := range fn.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.execBlock(fn.declaration.Body, env)
	if err != nil {
		if ret, ok := asReturn(err); ok {
			if fn.isInitializer {
				return fn.closure.GetAt(0, "this"), nil
			}
			return ret.value, nil
		}
		return nil, err
	}

	if fn.isInitializer {
		return fn.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (fn *function) String() string {
	return fmt.Sprintf("< fn %s >", fn.declaration.Name.Lexeme)
}
