// Package parser builds an AST from a ToyC token stream with a hand-written
// recursive-descent parser (spec.md §6). Expression precedence follows a
// classic precedence-climbing ladder: unary, *//%, +/-, relational,
// equality, &&, ||.
package parser

import (
	"toyc/internal/ast"
	"toyc/internal/diag"
	"toyc/internal/source"
	"toyc/internal/token"
)

// Parser consumes a flat token slice produced by the lexer.
type Parser struct {
	toks []token.Token
	pos  int
	file source.FileID
	bag  *diag.Bag
}

func New(file source.FileID, toks []token.Token, bag *diag.Bag) *Parser {
	return &Parser{toks: toks, file: file, bag: bag}
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peekKind() token.Kind { return p.cur().Kind }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.peekKind() == k }

func (p *Parser) match(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k, reporting a diagnostic and returning the
// current (unconsumed) token if the kind doesn't match. The parser never
// panics on a mismatch — it keeps going so later errors can surface too.
func (p *Parser) expect(k token.Kind) token.Token {
	if t, ok := p.match(k); ok {
		return t
	}
	cur := p.cur()
	p.bag.Add(diag.NewError(diag.SynExpected, cur.Sp,
		"expected "+k.String()+", found "+cur.Kind.String()))
	return cur
}

// Parse parses a whole compilation unit: zero or more function definitions.
func (p *Parser) Parse() *ast.CompilationUnit {
	unit := &ast.CompilationUnit{}
	for !p.check(token.EOF) {
		start := p.pos
		fn := p.parseFunctionDef()
		unit.Functions = append(unit.Functions, fn)
		if p.pos == start {
			// Safety valve: parseFunctionDef must always consume at least one
			// token forward progress, or report and skip one token.
			p.bag.Add(diag.NewError(diag.SynUnexpectedToken, p.cur().Sp,
				"unexpected token '"+p.cur().Kind.String()+"' at top level"))
			p.advance()
		}
	}
	return unit
}

func (p *Parser) parseType() ast.Type {
	switch p.peekKind() {
	case token.KwInt:
		p.advance()
		return ast.Int
	case token.KwVoid:
		p.advance()
		return ast.Void
	default:
		p.bag.Add(diag.NewError(diag.SynExpected, p.cur().Sp,
			"expected type ('int' or 'void'), found "+p.cur().Kind.String()))
		p.advance()
		return ast.Int
	}
}

func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	startSp := p.cur().Sp
	retType := p.parseType()
	nameTok := p.expect(token.Ident)
	p.expect(token.LParen)

	var params []ast.Param
	if !p.check(token.RParen) {
		for {
			pt := p.parseType()
			pn := p.expect(token.Ident)
			params = append(params, ast.Param{Name: pn.Lit, Type: pt, Sp: pn.Sp})
			if _, ok := p.match(token.Comma); !ok {
				break
			}
		}
	}
	p.expect(token.RParen)

	body := p.parseBlock()

	return &ast.FunctionDef{
		Name:       nameTok.Lit,
		ReturnType: retType,
		Params:     params,
		Body:       body,
		Sp:         startSp.Cover(body.Sp),
	}
}

func (p *Parser) parseBlock() *ast.Block {
	open := p.expect(token.LBrace)
	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		start := p.pos
		stmts = append(stmts, p.parseStmt())
		if p.pos == start {
			p.advance()
		}
	}
	close := p.expect(token.RBrace)
	return &ast.Block{Stmts: stmts, Sp: open.Sp.Cover(close.Sp)}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peekKind() {
	case token.LBrace:
		return p.parseBlock()
	case token.KwInt:
		return p.parseVarDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwBreak:
		t := p.advance()
		semi := p.expect(token.Semi)
		return &ast.Break{Sp: t.Sp.Cover(semi.Sp)}
	case token.KwContinue:
		t := p.advance()
		semi := p.expect(token.Semi)
		return &ast.Continue{Sp: t.Sp.Cover(semi.Sp)}
	case token.KwReturn:
		return p.parseReturn()
	case token.Semi:
		t := p.advance()
		return &ast.ExprStmt{Expr: nil, Sp: t.Sp}
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	kw := p.advance() // 'int'
	name := p.expect(token.Ident)
	var init ast.Expr
	if _, ok := p.match(token.Assign); ok {
		init = p.parseExpr()
	}
	semi := p.expect(token.Semi)
	return &ast.VarDecl{Name: name.Lit, Init: init, Sp: kw.Sp.Cover(semi.Sp)}
}

func (p *Parser) parseIf() ast.Stmt {
	kw := p.advance()
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseStmt()
	var elseStmt ast.Stmt
	endSp := then.Span()
	if _, ok := p.match(token.KwElse); ok {
		elseStmt = p.parseStmt()
		endSp = elseStmt.Span()
	}
	return &ast.If{Cond: cond, Then: then, Else: elseStmt, Sp: kw.Sp.Cover(endSp)}
}

func (p *Parser) parseWhile() ast.Stmt {
	kw := p.advance()
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseStmt()
	return &ast.While{Cond: cond, Body: body, Sp: kw.Sp.Cover(body.Span())}
}

func (p *Parser) parseReturn() ast.Stmt {
	kw := p.advance()
	var val ast.Expr
	if !p.check(token.Semi) {
		val = p.parseExpr()
	}
	semi := p.expect(token.Semi)
	return &ast.Return{Value: val, Sp: kw.Sp.Cover(semi.Sp)}
}

// parseExprOrAssignStmt disambiguates `ident = expr ;` from a bare expression
// statement by looking one token past a leading identifier.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	if p.check(token.Ident) && p.toks[min(p.pos+1, len(p.toks)-1)].Kind == token.Assign {
		name := p.advance()
		p.advance() // '='
		val := p.parseExpr()
		semi := p.expect(token.Semi)
		return &ast.Assign{Name: name.Lit, Value: val, Sp: name.Sp.Cover(semi.Sp)}
	}
	e := p.parseExpr()
	semi := p.expect(token.Semi)
	return &ast.ExprStmt{Expr: e, Sp: e.Span().Cover(semi.Sp)}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// --- expression grammar, lowest to highest precedence ---
//
//	expr       -> logicalOr
//	logicalOr  -> logicalAnd ('||' logicalAnd)*
//	logicalAnd -> equality ('&&' equality)*
//	equality   -> relational (('==' | '!=') relational)*
//	relational -> additive (('<' | '<=' | '>' | '>=') additive)*
//	additive   -> multiplicative (('+' | '-') multiplicative)*
//	multiplicative -> unary (('*' | '/' | '%') unary)*
//	unary      -> ('+' | '-' | '!') unary | primary
//	primary    -> number | ident | ident '(' args ')' | '(' expr ')'

func (p *Parser) parseExpr() ast.Expr { return p.parseLogicalOr() }

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.check(token.OrOr) {
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.Binary{Op: ast.Or, Left: left, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.check(token.AndAnd) {
		p.advance()
		right := p.parseEquality()
		left = &ast.Binary{Op: ast.And, Left: left, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for {
		var op ast.BinaryOp
		switch p.peekKind() {
		case token.Eq:
			op = ast.Eq
		case token.Ne:
			op = ast.Ne
		default:
			return left
		}
		p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Op: op, Left: left, Right: right, Sp: left.Span().Cover(right.Span())}
	}
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		var op ast.BinaryOp
		switch p.peekKind() {
		case token.Lt:
			op = ast.Lt
		case token.Le:
			op = ast.Le
		case token.Gt:
			op = ast.Gt
		case token.Ge:
			op = ast.Ge
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Op: op, Left: left, Right: right, Sp: left.Span().Cover(right.Span())}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op ast.BinaryOp
		switch p.peekKind() {
		case token.Plus:
			op = ast.Add
		case token.Minus:
			op = ast.Sub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Op: op, Left: left, Right: right, Sp: left.Span().Cover(right.Span())}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinaryOp
		switch p.peekKind() {
		case token.Star:
			op = ast.Mul
		case token.Slash:
			op = ast.Div
		case token.Percent:
			op = ast.Mod
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Op: op, Left: left, Right: right, Sp: left.Span().Cover(right.Span())}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	var op ast.UnaryOp
	switch p.peekKind() {
	case token.Plus:
		op = ast.Plus
	case token.Minus:
		op = ast.Neg
	case token.Not:
		op = ast.Not
	default:
		return p.parsePrimary()
	}
	t := p.advance()
	operand := p.parseUnary()
	return &ast.Unary{Op: op, Operand: operand, Sp: t.Sp.Cover(operand.Span())}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.peekKind() {
	case token.Number:
		t := p.advance()
		return &ast.Number{Value: parseInt32(t.Lit), Sp: t.Sp}
	case token.Ident:
		t := p.advance()
		if _, ok := p.match(token.LParen); ok {
			var args []ast.Expr
			if !p.check(token.RParen) {
				for {
					args = append(args, p.parseExpr())
					if _, ok := p.match(token.Comma); !ok {
						break
					}
				}
			}
			close := p.expect(token.RParen)
			return &ast.Call{Name: t.Lit, Args: args, Sp: t.Sp.Cover(close.Sp)}
		}
		return &ast.Ident{Name: t.Lit, Sp: t.Sp}
	case token.LParen:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RParen)
		return e
	default:
		cur := p.cur()
		p.bag.Add(diag.NewError(diag.SynUnexpectedToken, cur.Sp,
			"unexpected token '"+cur.Kind.String()+"' in expression"))
		p.advance()
		return &ast.Number{Value: 0, Sp: cur.Sp}
	}
}

// parseInt32 converts a decimal digit-run lexeme to int32 without panicking.
// The value is reduced to 32 bits, so 2147483648 reads as -2147483648; a
// run larger than 2^32 is capped at 2^32, which reduces to 0. No stage
// reports an out-of-range literal.
func parseInt32(lit string) int32 {
	var v int64
	for i := 0; i < len(lit); i++ {
		v = v*10 + int64(lit[i]-'0')
		if v > 1<<32 {
			v = 1 << 32
			break
		}
	}
	return int32(uint32(v))
}
