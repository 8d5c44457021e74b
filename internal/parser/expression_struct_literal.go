package parser

import (
	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/token"
)

// parseStructLiteral разбирает `Path { a: e, b, ..base }` после уже прочитанного пути.
// Поле без ':': shorthand; его Value: синтезированный путь из одного сегмента.
func (p *Parser) parseStructLiteral(typ ast.Path) (ast.ExprID, bool) {
	p.advance() // '{'
	saved := p.noStructLit
	p.noStructLit = 0
	defer func() { p.noStructLit = saved }()

	fields := make([]ast.ExprStructField, 0)
	rest := ast.NoExprID

	for !p.atOr(token.RBrace, token.Semicolon, token.EOF) {
		if p.at(token.DotDot) {
			p.advance()
			base, ok := p.parseExpr()
			if !ok {
				p.resyncStructLiteralField()
				continue
			}
			rest = base
			if !p.at(token.RBrace) {
				p.err(diag.SynStructRestNotLast, "struct update '..' must be the last element of a struct literal")
				p.resyncUntil(token.RBrace, token.Semicolon)
			}
			break
		}

		field, ok := p.parseStructLiteralField()
		if !ok {
			p.resyncStructLiteralField()
			continue
		}
		fields = append(fields, field)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct literal")
	if !ok {
		return ast.NoExprID, false
	}
	span := typ.Span.Cover(closeTok.Span)
	return p.arenas.Exprs.NewStruct(span, typ, fields, rest), true
}

// parseStructLiteralField: Ident ':' expr | Ident
func (p *Parser) parseStructLiteralField() (ast.ExprStructField, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected field name in struct literal")
		return ast.ExprStructField{}, false
	}
	name, nameSpan, _ := p.parseIdent()

	if !p.at(token.Colon) {
		value := p.arenas.Exprs.NewPath(nameSpan, ast.Path{
			Segments: []ast.PathSegment{{Name: name, Span: nameSpan}},
			Span:     nameSpan,
		})
		return ast.ExprStructField{
			Name:      name,
			NameSpan:  nameSpan,
			Value:     value,
			Shorthand: true,
			Span:      nameSpan,
		}, true
	}

	p.advance() // ':'
	value, ok := p.parseExpr()
	if !ok {
		return ast.ExprStructField{}, false
	}
	return ast.ExprStructField{
		Name:     name,
		NameSpan: nameSpan,
		Value:    value,
		Span:     nameSpan.Cover(p.exprSpan(value)),
	}, true
}

func (p *Parser) resyncStructLiteralField() {
	p.resyncUntil(token.Comma, token.RBrace, token.Semicolon)
	if p.at(token.Comma) {
		p.advance()
	}
}
