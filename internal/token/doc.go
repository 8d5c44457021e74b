// Package token defines lexical token kinds and trivia for ferrite sources.
// Invariants:
//   - Token.Span matches the original source bytes exactly (Start..End).
//   - Token.Text for identifiers is NFC-normalised; for every other kind it is
//     the original source slice.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
package token
