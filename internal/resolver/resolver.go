// Package resolver implements glox's static resolution pass: a single
// walk over the AST that computes, for every Variable/Assign/This/Super
// use, the number of enclosing-scope hops to the scope that binds it, and
// enforces the static rules of spec.md §4.3.
package resolver

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/letung3105/glox/internal/ast"
	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/token"
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver performs the static scope-checking pass described in spec.md
// §4.3 and populates a locals side table keyed on expression identity.
type Resolver struct {
	scopes          []map[string]bool
	locals          map[ast.Expr]int
	currentFunction functionType
	currentClass    classType
	errs            *multierror.Error
	log             *logrus.Entry
}

// New constructs a Resolver.
func New() *Resolver {
	return &Resolver{
		locals: make(map[ast.Expr]int),
		log:    logrus.WithField("component", "resolver"),
	}
}

// Resolve walks stmts and returns the populated locals table, or every
// static error found (resolution continues across errors so they all
// surface in one run, per spec.md §7).
func (r *Resolver) Resolve(stmts []ast.Stmt) (map[ast.Expr]int, error) {
	r.resolveStmts(stmts)
	return r.locals, r.errs.ErrorOrNil()
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	expr.Accept(r)
}

func (r *Resolver) VisitAssertStmt(stmt *ast.AssertStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expr)
	return nil, nil
}

func (r *Resolver) VisitBlockStmt(stmt *ast.BlockStmt) (interface{}, error) {
	r.beginScope()
	r.resolveStmts(stmt.Stmts)
	r.endScope()
	return nil, nil
}

func (r *Resolver) VisitClassStmt(stmt *ast.ClassStmt) (interface{}, error) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Super != nil {
		if stmt.Super.Name.Lexeme == stmt.Name.Lexeme {
			r.err(stmt.Super.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = classSubclass
			r.resolveExpr(stmt.Super)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.Methods {
		fnType := fnMethod
		if method.Name.Lexeme == "init" {
			fnType = fnInitializer
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()
	if stmt.Super != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil, nil
}

func (r *Resolver) VisitExprStmt(stmt *ast.ExprStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expr)
	return nil, nil
}

func (r *Resolver) VisitFunctionStmt(stmt *ast.FunctionStmt) (interface{}, error) {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, fnFunction)
	return nil, nil
}

func (r *Resolver) VisitIfStmt(stmt *ast.IfStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.resolveStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		r.resolveStmt(stmt.ElseBranch)
	}
	return nil, nil
}

func (r *Resolver) VisitPrintStmt(stmt *ast.PrintStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expr)
	return nil, nil
}

func (r *Resolver) VisitReturnStmt(stmt *ast.ReturnStmt) (interface{}, error) {
	if r.currentFunction == fnNone {
		r.err(stmt.Keyword, "Can't return from top-level code.")
	}
	if stmt.Val != nil {
		if r.currentFunction == fnInitializer {
			r.err(stmt.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(stmt.Val)
	}
	return nil, nil
}

func (r *Resolver) VisitVarStmt(stmt *ast.VarStmt) (interface{}, error) {
	r.declare(stmt.Name)
	if stmt.Init != nil {
		r.resolveExpr(stmt.Init)
	}
	r.define(stmt.Name)
	return nil, nil
}

func (r *Resolver) VisitWhileStmt(stmt *ast.WhileStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.resolveStmt(stmt.Body)
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(expr *ast.AssignExpr) (interface{}, error) {
	r.resolveExpr(expr.Val)
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(expr *ast.BinaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Lhs)
	r.resolveExpr(expr.Rhs)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(expr *ast.CallExpr) (interface{}, error) {
	r.resolveExpr(expr.Callee)
	for _, arg := range expr.Args {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *ast.GetExpr) (interface{}, error) {
	r.resolveExpr(expr.Obj)
	return nil, nil
}

func (r *Resolver) VisitGroupExpr(expr *ast.GroupExpr) (interface{}, error) {
	r.resolveExpr(expr.Expr)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(expr *ast.LiteralExpr) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *ast.LogicalExpr) (interface{}, error) {
	r.resolveExpr(expr.Lhs)
	r.resolveExpr(expr.Rhs)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(expr *ast.SetExpr) (interface{}, error) {
	r.resolveExpr(expr.Val)
	r.resolveExpr(expr.Obj)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(expr *ast.SuperExpr) (interface{}, error) {
	switch r.currentClass {
	case classNone:
		r.err(expr.Keyword, "Can't use 'super' outside of a class.")
	case classClass:
		r.err(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(expr *ast.ThisExpr) (interface{}, error) {
	if r.currentClass == classNone {
		r.err(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *ast.UnaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Expr)
	return nil, nil
}

func (r *Resolver) VisitVarExpr(expr *ast.VarExpr) (interface{}, error) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
			r.err(expr.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveLocal(expr ast.Expr, name *token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: treat as global, no locals entry.
}

func (r *Resolver) declare(name *token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.err(name, fmt.Sprintf("Already declared variable %s in this scope.", name.Lexeme))
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name *token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) err(tok *token.Token, message string) {
	derr := diagnostics.NewResolveError(tok, message)
	r.log.Debugf("%s", derr.Error())
	r.errs = multierror.Append(r.errs, derr)
}
