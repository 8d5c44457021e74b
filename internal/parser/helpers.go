package parser

import (
	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/source"
	"ferrite/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.recordComments(tok.Leading)
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// recordComments сохраняет строчные комментарии в ast.File:
// из них потом собираются директивы подавления.
func (p *Parser) recordComments(leading []token.Trivia) {
	if len(leading) == 0 {
		return
	}
	file := p.arenas.Files.Get(p.file)
	for _, tr := range leading {
		if tr.Kind != token.TriviaLineComment {
			continue
		}
		file.Comments = append(file.Comments, ast.Comment{Text: tr.Text, Span: tr.Span})
	}
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF используем позицию сразу после последнего токена.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter != nil {
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	return false
}

// resyncUntil проматывает токены до одного из стоп-токенов или EOF (не съедая его).
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

// exprSpan returns the span of an already built expression.
func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

// withStructLits runs fn with struct literals allowed again, e.g. inside
// parentheses nested in an if condition.
func (p *Parser) withStructLits(fn func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	saved := p.noStructLit
	p.noStructLit = 0
	defer func() { p.noStructLit = saved }()
	return fn()
}
