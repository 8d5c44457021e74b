package token

import "ferrite/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
)

// IsComment reports whether the trivia carries comment text.
func (k TriviaKind) IsComment() bool {
	return k == TriviaLineComment || k == TriviaBlockComment || k == TriviaDocLine
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
