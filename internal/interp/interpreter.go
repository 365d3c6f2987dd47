// Package interp implements the tree-walking evaluator: statement
// execution, expression evaluation, and call-frame management, per
// spec.md §4.5.
package interp

import (
	"fmt"
	"io"

	"github.com/letung3105/glox/internal/ast"
	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/environ"
	"github.com/letung3105/glox/internal/token"
)

// Interpreter executes a resolved AST. It implements ast.StmtVisitor and
// ast.ExprVisitor.
type Interpreter struct {
	globals     *environ.Environment
	environment *environ.Environment
	locals      map[ast.Expr]int
	output      io.Writer
	isREPL      bool
}

// New constructs an Interpreter writing `print` output to output.
func New(output io.Writer, isREPL bool) *Interpreter {
	globals := environ.New(nil)
	globals.Define("clock", clockFn{})

	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expr]int),
		output:      output,
		isREPL:      isREPL,
	}
}

// SetLocals installs the resolver's side table; it must be called once per
// resolved AST before Interpret, per spec.md §3's `locals` invariant.
func (in *Interpreter) SetLocals(locals map[ast.Expr]int) {
	in.locals = locals
}

// Interpret executes statements in order, stopping at and returning the
// first runtime or assertion error (the caller reports it), per spec.md §7: "aborts the current
// top-level statement (subsequent statements are not executed)".
func (in *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) VisitAssertStmt(stmt *ast.AssertStmt) (interface{}, error) {
	val, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	if !truthy(val) {
		return nil, diagnostics.NewAssertionError(stmt.Keyword.Line, "Assertion failed.")
	}
	return nil, nil
}

func (in *Interpreter) VisitBlockStmt(stmt *ast.BlockStmt) (interface{}, error) {
	return nil, in.execBlock(stmt.Stmts, environ.New(in.environment))
}

func (in *Interpreter) VisitExprStmt(stmt *ast.ExprStmt) (interface{}, error) {
	val, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	if in.isREPL {
		switch stmt.Expr.(type) {
		case *ast.AssignExpr, *ast.CallExpr:
			// expressions of these kinds are not echoed
		default:
			fmt.Fprintln(in.output, stringify(val))
		}
	}
	return nil, nil
}

func (in *Interpreter) VisitClassStmt(stmt *ast.ClassStmt) (interface{}, error) {
	var super *class
	if stmt.Super != nil {
		superVal, err := in.eval(stmt.Super)
		if err != nil {
			return nil, err
		}
		var isClass bool
		super, isClass = superVal.(*class)
		if !isClass {
			return nil, diagnostics.NewRuntimeError(stmt.Super.Name, "Superclass must be a class.")
		}

		// This env holds the reference to the superclass; it never
		// changes, and every method handed out by the subclass carries
		// it in its closure.
		in.environment = environ.New(in.environment)
		in.environment.Define("super", super)
	}

	methods := make(map[string]*function)
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Lexeme == "init"
		methods[method.Name.Lexeme] = newFunction(method, in.environment, isInitializer)
	}
	klass := newClass(stmt.Name.Lexeme, super, methods)

	if super != nil {
		// pop the temporary environment holding `super`.
		in.environment = in.environment.Ancestor(1)
	}

	in.environment.Define(stmt.Name.Lexeme, klass)
	return nil, nil
}

func (in *Interpreter) VisitFunctionStmt(stmt *ast.FunctionStmt) (interface{}, error) {
	fn := newFunction(stmt, in.environment, false)
	in.environment.Define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitIfStmt(stmt *ast.IfStmt) (interface{}, error) {
	cond, err := in.eval(stmt.Cond)
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return in.exec(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return in.exec(stmt.ElseBranch)
	}
	return nil, nil
}

func (in *Interpreter) VisitPrintStmt(stmt *ast.PrintStmt) (interface{}, error) {
	val, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.output, stringify(val))
	return nil, nil
}

func (in *Interpreter) VisitVarStmt(stmt *ast.VarStmt) (interface{}, error) {
	var initVal interface{}
	if stmt.Init != nil {
		var err error
		initVal, err = in.eval(stmt.Init)
		if err != nil {
			return nil, err
		}
	}
	in.environment.Define(stmt.Name.Lexeme, initVal)
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ast.ReturnStmt) (interface{}, error) {
	var val interface{}
	if stmt.Val != nil {
		var err error
		val, err = in.eval(stmt.Val)
		if err != nil {
			return nil, err
		}
	}
	return nil, newReturnSignal(val)
}

func (in *Interpreter) VisitWhileStmt(stmt *ast.WhileStmt) (interface{}, error) {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return nil, err
		}
		if !truthy(cond) {
			return nil, nil
		}
		if _, err := in.exec(stmt.Body); err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) VisitAssignExpr(expr *ast.AssignExpr) (interface{}, error) {
	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[expr]; ok {
		in.environment.AssignAt(distance, expr.Name, val)
		return val, nil
	}
	return val, in.globals.Assign(expr.Name, val)
}

func (in *Interpreter) VisitBinaryExpr(expr *ast.BinaryExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Rhs)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.BANG_EQUAL:
		return !equal(lhs, rhs), nil
	case token.EQUAL_EQUAL:
		return equal(lhs, rhs), nil
	case token.GREATER:
		return numericOp(expr.Op, lhs, rhs, func(a, b float64) interface{} { return a > b })
	case token.GREATER_EQUAL:
		return numericOp(expr.Op, lhs, rhs, func(a, b float64) interface{} { return a >= b })
	case token.LESS:
		return numericOp(expr.Op, lhs, rhs, func(a, b float64) interface{} { return a < b })
	case token.LESS_EQUAL:
		return numericOp(expr.Op, lhs, rhs, func(a, b float64) interface{} { return a <= b })
	case token.MINUS:
		return numericOp(expr.Op, lhs, rhs, func(a, b float64) interface{} { return a - b })
	case token.STAR:
		return numericOp(expr.Op, lhs, rhs, func(a, b float64) interface{} { return a * b })
	case token.SLASH:
		rightNum, okRight := rhs.(float64)
		leftNum, okLeft := lhs.(float64)
		if !okLeft || !okRight {
			return nil, diagnostics.NewRuntimeError(expr.Op, "Operands must be numbers.")
		}
		if rightNum == 0 {
			return nil, diagnostics.NewRuntimeError(expr.Op, "Cannot divide by zero.")
		}
		return leftNum / rightNum, nil
	case token.PLUS:
		if leftStr, ok := lhs.(string); ok {
			if rightStr, ok := rhs.(string); ok {
				return leftStr + rightStr, nil
			}
		}
		if leftNum, ok := lhs.(float64); ok {
			if rightNum, ok := rhs.(float64); ok {
				return leftNum + rightNum, nil
			}
		}
		return nil, diagnostics.NewRuntimeError(expr.Op, "Operands must be two numbers or two strings.")
	}
	panic("unreachable binary operator")
}

func numericOp(op *token.Token, lhs, rhs interface{}, f func(a, b float64) interface{}) (interface{}, error) {
	leftNum, okLeft := lhs.(float64)
	rightNum, okRight := rhs.(float64)
	if !okLeft || !okRight {
		return nil, diagnostics.NewRuntimeError(op, "Operands must be numbers.")
	}
	return f(leftNum, rightNum), nil
}

func (in *Interpreter) VisitCallExpr(expr *ast.CallExpr) (interface{}, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	// Arguments are evaluated left-to-right; this order is user-visible
	// since expressions can have side effects.
	var args []interface{}
	for _, arg := range expr.Args {
		argVal, err := in.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, argVal)
	}

	call, isCallable := callee.(Callable)
	if !isCallable {
		return nil, diagnostics.NewRuntimeError(expr.Paren, "Can only call functions and classes.")
	}
	if len(args) != call.Arity() {
		return nil, diagnostics.NewRuntimeError(expr.Paren, fmt.Sprintf(
			"Expected %d arguments but got %d.", call.Arity(), len(args),
		))
	}
	return call.Call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *ast.GetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Obj)
	if err != nil {
		return nil, err
	}
	if inst, ok := obj.(*instance); ok {
		return inst.get(expr.Name)
	}
	return nil, diagnostics.NewRuntimeError(expr.Name, "Only instances have properties.")
}

func (in *Interpreter) VisitGroupExpr(expr *ast.GroupExpr) (interface{}, error) {
	return in.eval(expr.Expr)
}

func (in *Interpreter) VisitLiteralExpr(expr *ast.LiteralExpr) (interface{}, error) {
	return expr.Val, nil
}

func (in *Interpreter) VisitLogicalExpr(expr *ast.LogicalExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Lhs)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.OR:
		if truthy(lhs) {
			return lhs, nil
		}
	case token.AND:
		if !truthy(lhs) {
			return lhs, nil
		}
	default:
		panic("unreachable logical operator")
	}
	return in.eval(expr.Rhs)
}

func (in *Interpreter) VisitSetExpr(expr *ast.SetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Obj)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*instance)
	if !ok {
		return nil, diagnostics.NewRuntimeError(expr.Name, "Only instances have fields.")
	}
	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	inst.set(expr.Name, val)
	return val, nil
}

func (in *Interpreter) VisitSuperExpr(expr *ast.SuperExpr) (interface{}, error) {
	// There's no natural node for the resolver to attach a distance to
	// for `this` inside a super-expression, but the environment holding
	// `this` is always the one immediately enclosed by the one holding
	// `super`.
	distance := in.locals[expr]
	super := in.environment.GetAt(distance, "super").(*class)
	this := in.environment.GetAt(distance-1, "this").(*instance)

	method, ok := super.findMethod(expr.Method.Lexeme)
	if !ok {
		return nil, diagnostics.NewRuntimeError(expr.Method, fmt.Sprintf(
			"Undefined property '%s'.", expr.Method.Lexeme,
		))
	}
	return method.bind(this), nil
}

func (in *Interpreter) VisitThisExpr(expr *ast.ThisExpr) (interface{}, error) {
	return in.lookUpVar(expr.Keyword, expr)
}

func (in *Interpreter) VisitUnaryExpr(expr *ast.UnaryExpr) (interface{}, error) {
	val, err := in.eval(expr.Expr)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case token.BANG:
		return !truthy(val), nil
	case token.MINUS:
		num, ok := val.(float64)
		if !ok {
			return nil, diagnostics.NewRuntimeError(expr.Op, "Operand must be a number.")
		}
		return -num, nil
	}
	panic("unreachable unary operator")
}

func (in *Interpreter) VisitVarExpr(expr *ast.VarExpr) (interface{}, error) {
	return in.lookUpVar(expr.Name, expr)
}

func (in *Interpreter) execBlock(statements []ast.Stmt, env *environ.Environment) error {
	prevEnv := in.environment
	in.environment = env
	defer func() {
		in.environment = prevEnv
	}()
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt ast.Stmt) (interface{}, error) {
	return stmt.Accept(in)
}

func (in *Interpreter) eval(expr ast.Expr) (interface{}, error) {
	return expr.Accept(in)
}

// lookUpVar resolves a Variable/This read through locals when the
// resolver found an enclosing-scope binding, falling back to globals
// otherwise (DESIGN.md open question 3).
func (in *Interpreter) lookUpVar(name *token.Token, expr ast.Expr) (interface{}, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

