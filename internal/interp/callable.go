package interp

// Callable is implemented by every Lox value that can appear as the
// callee of a Call expression: user functions, classes (construction),
// and natives, per spec.md §4.6.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) (interface{}, error)
}
