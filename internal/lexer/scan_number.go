package lexer

import (
	"ferrite/internal/diag"
	"ferrite/internal/token"
)

// Поддержка: 0, 123, 1_000, 0x..., 0b..., 1.5, 1e-3, 1.0e+10.
// Точка считается частью числа только если за ней цифра: `1..2` и `a.0`
// остаются за парсером.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok && (b1 == 'x' || b1 == 'X' || b1 == 'b' || b1 == 'B') {
			lx.cursor.Bump()
			base := lx.cursor.Bump()
			digits := 0
			for {
				b := lx.cursor.Peek()
				valid := b == '_' || (base == 'x' || base == 'X') && isHex(b) || (base == 'b' || base == 'B') && (b == '0' || b == '1')
				if !valid {
					break
				}
				if b != '_' {
					digits++
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			if digits == 0 {
				lx.errLex(diag.LexBadNumber, sp, "expected digits after base prefix")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
	}

	lx.eatDecimalDigits()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDecimalDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// не экспонента: `1e` пусть будет int + ident
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
			lx.eatDecimalDigits()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) eatDecimalDigits() {
	for {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}
