package parser

import (
	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/source"
	"ferrite/internal/token"
)

// import a::b::c;
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	kw := p.advance()
	path, ok := p.parsePath()
	if !ok {
		return ast.NoItemID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after import")
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewImport(kw.Span.Cover(semi.Span), path), true
}

// pub? fn name(params) -> Type { ... }
func (p *Parser) parseFnItem(public bool, pubSpan source.Span) (ast.ItemID, bool) {
	kw := p.advance()
	start := kw.Span
	if public {
		start = pubSpan
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoItemID, false
	}

	var params []ast.FnParam
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pname, pspan, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok = p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
			return ast.NoItemID, false
		}
		typ, ok := p.parseTypeRef()
		if !ok {
			return ast.NoItemID, false
		}
		params = append(params, ast.FnParam{Name: pname, Span: pspan.Cover(typ.Span), Type: typ})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return ast.NoItemID, false
	}

	var result ast.TypeRef
	if p.at(token.Arrow) {
		p.advance()
		if result, ok = p.parseTypeRef(); !ok {
			return ast.NoItemID, false
		}
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' to start function body")
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}

	span := start.Cover(p.arenas.Stmts.Get(body).Span)
	return p.arenas.Items.NewFn(span, ast.FnItem{
		Name:     name,
		NameSpan: nameSpan,
		Public:   public,
		Params:   params,
		Result:   result,
		Body:     body,
	}), true
}

// let mut? name (: Type)? = expr;
func (p *Parser) parseLetItem() (ast.ItemID, bool) {
	kw := p.advance()
	binding, ok := p.parseBinding(true)
	if !ok {
		return ast.NoItemID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let")
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewLet(kw.Span.Cover(semi.Span), ast.LetItem{
		Name:     binding.name,
		NameSpan: binding.nameSpan,
		Mutable:  binding.mutable,
		Type:     binding.typ,
		Value:    binding.value,
	}), true
}

// const name (: Type)? = expr;
func (p *Parser) parseConstItem() (ast.ItemID, bool) {
	kw := p.advance()
	binding, ok := p.parseBinding(false)
	if !ok {
		return ast.NoItemID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after const")
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewConst(kw.Span.Cover(semi.Span), ast.ConstItem{
		Name:     binding.name,
		NameSpan: binding.nameSpan,
		Type:     binding.typ,
		Value:    binding.value,
	}), true
}

type binding struct {
	name     source.StringID
	nameSpan source.Span
	mutable  bool
	typ      ast.TypeRef
	value    ast.ExprID
}

// parseBinding разбирает общий хвост let/const: `mut? name (: T)? = expr`.
func (p *Parser) parseBinding(allowMut bool) (binding, bool) {
	var b binding
	if allowMut && p.at(token.KwMut) {
		p.advance()
		b.mutable = true
	}
	var ok bool
	if b.name, b.nameSpan, ok = p.parseIdent(); !ok {
		return b, false
	}
	if p.at(token.Colon) {
		p.advance()
		if b.typ, ok = p.parseTypeRef(); !ok {
			return b, false
		}
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in binding"); !ok {
		return b, false
	}
	if b.value, ok = p.parseExpr(); !ok {
		return b, false
	}
	return b, true
}

// type Name = { field: Type, ... };
func (p *Parser) parseTypeItem() (ast.ItemID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after type name"); !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to start type body"); !ok {
		return ast.NoItemID, false
	}

	var fields []ast.TypeField
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fname, fspan, ok := p.parseIdent()
		if !ok {
			return ast.NoItemID, false
		}
		if _, ok = p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			return ast.NoItemID, false
		}
		typ, ok := p.parseTypeRef()
		if !ok {
			return ast.NoItemID, false
		}
		fields = append(fields, ast.TypeField{Name: fname, Span: fspan.Cover(typ.Span), Type: typ})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close type body")
	if !ok {
		return ast.NoItemID, false
	}
	span := kw.Span.Cover(closeTok.Span)
	if p.at(token.Semicolon) {
		span = span.Cover(p.advance().Span)
	}
	return p.arenas.Items.NewType(span, ast.TypeItem{
		Name:     name,
		NameSpan: nameSpan,
		Fields:   fields,
	}), true
}

// parseTypeRef: path ('[' ']')?
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	if !p.atOr(token.Ident, token.ColonColon) {
		p.err(diag.SynExpectType, "expected type")
		return ast.TypeRef{}, false
	}
	path, ok := p.parsePath()
	if !ok {
		return ast.TypeRef{}, false
	}
	ref := ast.TypeRef{Path: path, Span: path.Span}
	if p.at(token.LBracket) {
		p.advance()
		closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' in slice type")
		if !ok {
			return ast.TypeRef{}, false
		}
		ref.Slice = true
		ref.Span = ref.Span.Cover(closeTok.Span)
	}
	return ref, true
}

// parsePath: '::'? Ident ('::' Ident)*
func (p *Parser) parsePath() (ast.Path, bool) {
	var path ast.Path
	start := p.lx.Peek().Span
	if p.at(token.ColonColon) {
		p.advance()
		path.Global = true
	}
	for {
		name, span, ok := p.parseIdent()
		if !ok {
			return ast.Path{}, false
		}
		path.Segments = append(path.Segments, ast.PathSegment{Name: name, Span: span})
		if !p.at(token.ColonColon) {
			break
		}
		p.advance()
	}
	path.Span = start.Cover(path.Segments[len(path.Segments)-1].Span)
	return path, true
}
