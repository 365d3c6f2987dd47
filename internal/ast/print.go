package ast

import "fmt"

// printer renders an expression tree as a parenthesized prefix string,
// e.g. "(* (- 123) (group 45.67))". Ported from pylox's ASTPrinter, used
// here for the CLI's hidden debug flag rather than the original's demo.
type printer struct{}

// Print renders expr as a parenthesized prefix string.
func Print(expr Expr) string {
	p := printer{}
	s, _ := expr.Accept(p)
	return s.(string)
}

func (p printer) parenthesize(name string, exprs ...Expr) string {
	s := "(" + name
	for _, expr := range exprs {
		res, _ := expr.Accept(p)
		s += " " + res.(string)
	}
	return s + ")"
}

func (p printer) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	return p.parenthesize("assign "+expr.Name.Lexeme, expr.Val), nil
}

func (p printer) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Lhs, expr.Rhs), nil
}

func (p printer) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	return p.parenthesize("call", append([]Expr{expr.Callee}, expr.Args...)...), nil
}

func (p printer) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	return p.parenthesize("get "+expr.Name.Lexeme, expr.Obj), nil
}

func (p printer) VisitGroupExpr(expr *GroupExpr) (interface{}, error) {
	return p.parenthesize("group", expr.Expr), nil
}

func (p printer) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	if expr.Val == nil {
		return "nil", nil
	}
	return fmt.Sprintf("%v", expr.Val), nil
}

func (p printer) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Lhs, expr.Rhs), nil
}

func (p printer) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	return p.parenthesize("set "+expr.Name.Lexeme, expr.Obj, expr.Val), nil
}

func (p printer) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	return "(super " + expr.Method.Lexeme + ")", nil
}

func (p printer) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (p printer) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	return p.parenthesize(expr.Op.Lexeme, expr.Expr), nil
}

func (p printer) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}
