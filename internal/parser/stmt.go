package parser

import (
	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/token"
)

// parseBlock: '{' stmt* '}'
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	openTok := p.advance()
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.opts.Enough() {
		stmtID, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, stmtID)
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(openTok.Span.Cover(closeTok.Span), stmts), true
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLetStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.err(diag.SynUnexpectedToken, "unexpected ';'")
		p.advance()
		return ast.NoStmtID, false
	default:
		return p.parseExprStmt()
	}
}

// resyncStmt проматывает до конца оператора или начала следующего.
func (p *Parser) resyncStmt() {
	p.resyncUntil(token.Semicolon, token.RBrace, token.KwLet, token.KwReturn, token.KwIf, token.KwWhile)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	kw := p.advance()
	b, ok := p.parseBinding(true)
	if !ok {
		return ast.NoStmtID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLet(kw.Span.Cover(semi.Span), ast.LetStmt{
		Name:     b.name,
		NameSpan: b.nameSpan,
		Mutable:  b.mutable,
		Type:     b.typ,
		Value:    b.value,
	}), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.atOr(token.Semicolon, token.RBrace) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	span := kw.Span
	if value.IsValid() {
		span = span.Cover(p.exprSpan(value))
	}
	if p.at(token.Semicolon) {
		span = span.Cover(p.advance().Span)
	} else if !p.at(token.RBrace) {
		p.err(diag.SynExpectSemicolon, "expected ';' after return")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(span, value), true
}

// if cond { } else if cond { } else { }
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after if condition")
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	span := kw.Span.Cover(p.arenas.Stmts.Get(then).Span)

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		switch {
		case p.at(token.KwIf):
			els, ok = p.parseIfStmt()
		case p.at(token.LBrace):
			els, ok = p.parseBlock()
		default:
			p.err(diag.SynUnexpectedToken, "expected 'if' or '{' after 'else'")
			ok = false
		}
		if !ok {
			return ast.NoStmtID, false
		}
		span = span.Cover(p.arenas.Stmts.Get(els).Span)
	}
	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseExprNoStruct()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after while condition")
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(kw.Span.Cover(p.arenas.Stmts.Get(body).Span), cond, body), true
}

// expr ';': либо хвостовое выражение блока без ';'.
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.exprSpan(expr)
	switch {
	case p.at(token.Semicolon):
		span = span.Cover(p.advance().Span)
	case p.at(token.RBrace):
	default:
		p.err(diag.SynExpectSemicolon, "expected ';' after expression")
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(span, expr), true
}
