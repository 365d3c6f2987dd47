package ast

import "github.com/letung3105/glox/internal/token"

// Expr is a node in the expression tree. Each concrete variant's identity
// (as a Go pointer) is what the resolver's locals side table keys on.
type Expr interface {
	Accept(visitor ExprVisitor) (interface{}, error)
}

// ExprVisitor dispatches over every Expr variant in the grammar.
type ExprVisitor interface {
	VisitAssignExpr(expr *AssignExpr) (interface{}, error)
	VisitBinaryExpr(expr *BinaryExpr) (interface{}, error)
	VisitCallExpr(expr *CallExpr) (interface{}, error)
	VisitGetExpr(expr *GetExpr) (interface{}, error)
	VisitGroupExpr(expr *GroupExpr) (interface{}, error)
	VisitLiteralExpr(expr *LiteralExpr) (interface{}, error)
	VisitLogicalExpr(expr *LogicalExpr) (interface{}, error)
	VisitSetExpr(expr *SetExpr) (interface{}, error)
	VisitSuperExpr(expr *SuperExpr) (interface{}, error)
	VisitThisExpr(expr *ThisExpr) (interface{}, error)
	VisitUnaryExpr(expr *UnaryExpr) (interface{}, error)
	VisitVarExpr(expr *VarExpr) (interface{}, error)
}

// AssignExpr is `name = value`.
type AssignExpr struct {
	Name *token.Token
	Val  Expr
}

func NewAssignExpr(Name *token.Token, Val Expr) *AssignExpr {
	return &AssignExpr{Name, Val}
}
func (expr *AssignExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitAssignExpr(expr)
}

// BinaryExpr is `lhs op rhs` for arithmetic, comparison, and equality operators.
type BinaryExpr struct {
	Lhs Expr
	Op  *token.Token
	Rhs Expr
}

func NewBinaryExpr(Lhs Expr, Op *token.Token, Rhs Expr) *BinaryExpr {
	return &BinaryExpr{Lhs, Op, Rhs}
}
func (expr *BinaryExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitBinaryExpr(expr)
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Paren  *token.Token
	Args   []Expr
}

func NewCallExpr(Callee Expr, Paren *token.Token, Args []Expr) *CallExpr {
	return &CallExpr{Callee, Paren, Args}
}
func (expr *CallExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitCallExpr(expr)
}

// GetExpr is `object.name` property access.
type GetExpr struct {
	Obj  Expr
	Name *token.Token
}

func NewGetExpr(Obj Expr, Name *token.Token) *GetExpr {
	return &GetExpr{Obj, Name}
}
func (expr *GetExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitGetExpr(expr)
}

// GroupExpr is a parenthesized sub-expression.
type GroupExpr struct {
	Expr Expr
}

func NewGroupExpr(Expr Expr) *GroupExpr {
	return &GroupExpr{Expr}
}
func (expr *GroupExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitGroupExpr(expr)
}

// LiteralExpr wraps a scanned literal value (nil, bool, float64, string).
type LiteralExpr struct {
	Val interface{}
}

func NewLiteralExpr(Val interface{}) *LiteralExpr {
	return &LiteralExpr{Val}
}
func (expr *LiteralExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitLiteralExpr(expr)
}

// LogicalExpr is `lhs and/or rhs`, which short-circuits and is kept distinct
// from BinaryExpr so the evaluator never has to special-case AND/OR there.
type LogicalExpr struct {
	Lhs Expr
	Op  *token.Token
	Rhs Expr
}

func NewLogicalExpr(Lhs Expr, Op *token.Token, Rhs Expr) *LogicalExpr {
	return &LogicalExpr{Lhs, Op, Rhs}
}
func (expr *LogicalExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitLogicalExpr(expr)
}

// SetExpr is `object.name = value` property assignment.
type SetExpr struct {
	Obj  Expr
	Name *token.Token
	Val  Expr
}

func NewSetExpr(Obj Expr, Name *token.Token, Val Expr) *SetExpr {
	return &SetExpr{Obj, Name, Val}
}
func (expr *SetExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitSetExpr(expr)
}

// SuperExpr is `super.method`.
type SuperExpr struct {
	Keyword *token.Token
	Method  *token.Token
}

func NewSuperExpr(Keyword *token.Token, Method *token.Token) *SuperExpr {
	return &SuperExpr{Keyword, Method}
}
func (expr *SuperExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitSuperExpr(expr)
}

// ThisExpr is the `this` keyword used as an expression.
type ThisExpr struct {
	Keyword *token.Token
}

func NewThisExpr(Keyword *token.Token) *ThisExpr {
	return &ThisExpr{Keyword}
}
func (expr *ThisExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitThisExpr(expr)
}

// UnaryExpr is `op expr` for `-` and `!`.
type UnaryExpr struct {
	Op   *token.Token
	Expr Expr
}

func NewUnaryExpr(Op *token.Token, Expr Expr) *UnaryExpr {
	return &UnaryExpr{Op, Expr}
}
func (expr *UnaryExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitUnaryExpr(expr)
}

// VarExpr is a variable name used as an expression (a read).
type VarExpr struct {
	Name *token.Token
}

func NewVarExpr(Name *token.Token) *VarExpr {
	return &VarExpr{Name}
}
func (expr *VarExpr) Accept(visitor ExprVisitor) (interface{}, error) {
	return visitor.VisitVarExpr(expr)
}
