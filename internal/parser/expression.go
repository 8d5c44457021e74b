package parser

import (
	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/source"
	"ferrite/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseExprNoStruct разбирает условие if/while: `Path {` там не struct literal.
func (p *Parser) parseExprNoStruct() (ast.ExprID, bool) {
	p.noStructLit++
	defer func() { p.noStructLit-- }()
	return p.parseExpr()
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec || prec < 0 {
			break
		}

		opTok := p.advance()
		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		finalSpan := p.exprSpan(left).Cover(p.exprSpan(right))
		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		op, ok := p.getUnaryOperator(p.lx.Peek().Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		finalSpan := prefixes[i].span.Cover(p.exprSpan(expr))
		expr = p.arenas.Exprs.NewUnary(finalSpan, prefixes[i].op, expr)
	}
	return expr, true
}

// parsePostfixExpr обрабатывает постфиксные операторы
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			// Вызов функции: expr(args...)
			if expr, ok = p.parseCallExpr(expr); !ok {
				return ast.NoExprID, false
			}
		case token.LBracket:
			// Индексация: expr[index]
			if expr, ok = p.parseIndexExpr(expr); !ok {
				return ast.NoExprID, false
			}
		case token.Dot:
			// Доступ к полю: expr.field
			if expr, ok = p.parseMemberExpr(expr); !ok {
				return ast.NoExprID, false
			}
		default:
			return expr, true
		}
	}
}

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident, token.ColonColon:
		return p.parsePathOrStructLiteral()
	case token.IntLit, token.FloatLit:
		return p.parseNumericLiteral()
	case token.StringLit:
		return p.parseStringLiteral()
	case token.KwTrue, token.KwFalse:
		return p.parseBoolLiteral()
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayExpr()
	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+p.lx.Peek().Text+"\"")
		return ast.NoExprID, false
	}
}

// parsePathOrStructLiteral parses a path expression or, when followed by
// '{' outside a condition, a struct literal typed by that path.
func (p *Parser) parsePathOrStructLiteral() (ast.ExprID, bool) {
	path, ok := p.parsePath()
	if !ok {
		return ast.NoExprID, false
	}
	if p.noStructLit == 0 && p.at(token.LBrace) {
		return p.parseStructLiteral(path)
	}
	return p.arenas.Exprs.NewPath(path.Span, path), true
}

func (p *Parser) parseNumericLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	kind := ast.ExprLitInt
	if tok.Kind == token.FloatLit {
		kind = ast.ExprLitFloat
	}
	// Сохраняем сырое значение
	valueID := p.arenas.StringsInterner.Intern(tok.Text)
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, valueID), true
}

func (p *Parser) parseStringLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	valueID := p.arenas.StringsInterner.Intern(tok.Text)
	return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitString, valueID), true
}

func (p *Parser) parseBoolLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	kind := ast.ExprLitTrue
	if tok.Kind == token.KwFalse {
		kind = ast.ExprLitFalse
	}
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.arenas.StringsInterner.Intern(tok.Text)), true
}

// parseParenExpr: `()`: пустой кортеж, `(e)`: группа, `(a, b)`: кортеж.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	elems, trailingComma, closeTok, ok := p.parseExprList(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !ok {
		return ast.NoExprID, false
	}
	span := openTok.Span.Cover(closeTok.Span)
	if len(elems) == 1 && !trailingComma {
		return p.arenas.Exprs.NewGroup(span, elems[0]), true
	}
	return p.arenas.Exprs.NewTuple(span, elems), true
}

func (p *Parser) parseArrayExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	elems, _, closeTok, ok := p.parseExprList(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArray(openTok.Span.Cover(closeTok.Span), elems), true
}

func (p *Parser) parseCallExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	args, _, closeTok, ok := p.parseExprList(token.RParen, diag.SynUnclosedParen, "expected ')' to close call")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(p.exprSpan(target).Cover(closeTok.Span), target, args), true
}

func (p *Parser) parseIndexExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	index, ok := p.withStructLits(p.parseExpr)
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIndex(p.exprSpan(target).Cover(closeTok.Span), target, index), true
}

func (p *Parser) parseMemberExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMember(p.exprSpan(target).Cover(nameSpan), target, name, nameSpan), true
}

// parseExprList разбирает `e, e, ...` до закрывающего токена (включительно).
func (p *Parser) parseExprList(closer token.Kind, code diag.Code, msg string) (elems []ast.ExprID, trailingComma bool, closeTok token.Token, ok bool) {
	for !p.at(closer) && !p.at(token.EOF) {
		trailingComma = false
		elem, ok := p.withStructLits(p.parseExpr)
		if !ok {
			return nil, false, token.Token{}, false
		}
		elems = append(elems, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		trailingComma = true
	}
	closeTok, ok = p.expect(closer, code, msg)
	return elems, trailingComma, closeTok, ok
}
