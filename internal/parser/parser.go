// Package parser implements glox's hand-written recursive-descent parser
// with precedence climbing and panic-mode recovery, per spec.md §4.2.
package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/letung3105/glox/internal/ast"
	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/token"
)

const maxArgs = 255

// parseError signals that synchronize() must run; it never escapes Parse.
type parseError struct{ inner error }

func (e *parseError) Error() string { return e.inner.Error() }

// Parser consumes a token slice and produces a list of statement trees.
type Parser struct {
	tokens  []*token.Token
	current int
	errs    *multierror.Error
	log     *logrus.Entry
}

// New constructs a Parser over tokens (must be EOF-terminated).
func New(tokens []*token.Token) *Parser {
	return &Parser{tokens: tokens, log: logrus.WithField("component", "parser")}
}

// Parse parses the whole token stream into a list of declarations, running
// panic-mode recovery between top-level declarations so a single syntax
// error doesn't hide the rest. Returns every parse error found, aggregated.
func (p *Parser) Parse() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errs.ErrorOrNil()
}

func (p *Parser) declaration() (result ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*parseError); ok {
				p.synchronize()
				result = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var super *ast.VarExpr
	if p.match(token.LESS) {
		superName := p.consume(token.IDENTIFIER, "Expect superclass name.")
		super = ast.NewVarExpr(superName)
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return ast.NewClassStmt(name, super, methods)
}

func (p *Parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	p.consume(token.LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind))
	var params []*token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	p.consume(token.LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return ast.NewFunctionStmt(name, params, body)
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return ast.NewVarStmt(name, init)
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.ASSERT):
		return p.assertStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFT_BRACE):
		return ast.NewBlockStmt(p.block())
	default:
		return p.exprStatement()
	}
}

func (p *Parser) assertStatement() ast.Stmt {
	keyword := p.previous()
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after assertion.")
	return ast.NewAssertStmt(keyword, expr)
}

// forStatement desugars `for(init; cond; incr) body` into a Block wrapping
// a While, per spec.md §4.2: missing cond defaults to `true`.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.exprStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = ast.NewBlockStmt([]ast.Stmt{body, ast.NewExprStmt(increment)})
	}
	if cond == nil {
		cond = ast.NewLiteralExpr(true)
	}
	body = ast.NewWhileStmt(cond, body)
	var stmts []ast.Stmt
	if initializer != nil {
		stmts = append(stmts, initializer)
	}
	return ast.NewBlockStmt(append(stmts, body))
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return ast.NewIfStmt(cond, thenBranch, elseBranch)
}

func (p *Parser) printStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return ast.NewPrintStmt(expr)
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var val ast.Expr
	if !p.check(token.SEMICOLON) {
		val = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return ast.NewReturnStmt(keyword, val)
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return ast.NewWhileStmt(cond, body)
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) exprStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return ast.NewExprStmt(expr)
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative; the LHS must already have parsed as a
// Variable or Get expression, else assignment is reported without panicking
// (no synchronize), per spec.md §4.2.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		val := p.assignment()

		switch e := expr.(type) {
		case *ast.VarExpr:
			return ast.NewAssignExpr(e.Name, val)
		case *ast.GetExpr:
			return ast.NewSetExpr(e.Obj, e.Name, val)
		default:
			p.errAt(equals, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		rhs := p.and()
		expr = ast.NewLogicalExpr(expr, op, rhs)
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		rhs := p.equality()
		expr = ast.NewLogicalExpr(expr, op, rhs)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		rhs := p.comparison()
		expr = ast.NewBinaryExpr(expr, op, rhs)
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		rhs := p.term()
		expr = ast.NewBinaryExpr(expr, op, rhs)
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		rhs := p.factor()
		expr = ast.NewBinaryExpr(expr, op, rhs)
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		rhs := p.unary()
		expr = ast.NewBinaryExpr(expr, op, rhs)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		rhs := p.unary()
		return ast.NewUnaryExpr(op, rhs)
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = ast.NewGetExpr(expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return ast.NewCallExpr(callee, paren, args)
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return ast.NewLiteralExpr(false)
	case p.match(token.TRUE):
		return ast.NewLiteralExpr(true)
	case p.match(token.NIL):
		return ast.NewLiteralExpr(nil)
	case p.match(token.NUMBER, token.STRING):
		return ast.NewLiteralExpr(p.previous().Literal)
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return ast.NewSuperExpr(keyword, method)
	case p.match(token.THIS):
		return ast.NewThisExpr(p.previous())
	case p.match(token.IDENTIFIER):
		return ast.NewVarExpr(p.previous())
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return ast.NewGroupExpr(expr)
	default:
		panic(p.errAt(p.peek(), "Expect expression."))
	}
}

// synchronize discards tokens until the previous token was ';' or the next
// token starts a statement keyword, per spec.md §4.2.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN, token.ASSERT:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *Parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() *token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() *token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(typ token.Type, message string) *token.Token {
	if p.check(typ) {
		return p.advance()
	}
	panic(p.errAt(p.peek(), message))
}

// errAt records a parse error against the error list and returns a
// *parseError usable to panic into declaration()'s recover/synchronize.
func (p *Parser) errAt(tok *token.Token, message string) *parseError {
	derr := diagnostics.NewParseError(tok, message)
	p.log.Debugf("%s", derr.Error())
	p.errs = multierror.Append(p.errs, derr)
	return &parseError{inner: derr}
}
