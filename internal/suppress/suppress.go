// Package suppress reads inline lint directives from line comments:
//
//	// ferrite:allow(redundant_field_names)
//	let p = Point { x: x };
//
//	// ferrite:allow-file(all)
//
// A line directive covers its own line and the next line holding code.
// A file directive covers the whole file. The name `all` matches every lint.
package suppress

import (
	"strings"

	"fortio.org/safecast"

	"ferrite/internal/ast"
	"ferrite/internal/diag"
	"ferrite/internal/lexer"
	"ferrite/internal/lint"
	"ferrite/internal/source"
	"ferrite/internal/token"
)

const (
	prefix = "ferrite:"
	// All matches every lint.
	All = "all"
)

// Scope says how far a directive reaches.
type Scope uint8

const (
	ScopeLine Scope = iota
	ScopeFile
)

// Directive is one parsed `ferrite:allow...` comment.
type Directive struct {
	Scope Scope
	Names []string
	Span  source.Span
	// Lines are the 1-based lines the directive covers; empty for ScopeFile.
	Lines []uint32
}

// Set answers "is this lint allowed here" for a single file.
type Set struct {
	directives []Directive
	file       map[string]bool
	lines      map[uint32]map[string]bool
}

// Collect parses every directive of fileID. Unknown lint names and malformed
// directives are reported as LNT5900 warnings; known names in the same
// directive still apply.
func Collect(tree *ast.Builder, fileID ast.FileID, src *source.File, reg *lint.Registry, reporter diag.Reporter) *Set {
	set := &Set{
		file:  make(map[string]bool),
		lines: make(map[uint32]map[string]bool),
	}
	file := tree.Files.Get(fileID)
	if file == nil || len(file.Comments) == 0 {
		return set
	}

	var codeLines []uint32
	for _, c := range file.Comments {
		d, ok := parseDirective(c, reg, reporter)
		if !ok {
			continue
		}
		if d.Scope == ScopeFile {
			for _, name := range d.Names {
				set.file[name] = true
			}
			set.directives = append(set.directives, d)
			continue
		}
		if codeLines == nil {
			codeLines = linesWithCode(src)
		}
		line := src.Position(c.Span.Start).Line
		d.Lines = []uint32{line}
		if next, ok := nextCodeLine(codeLines, line); ok {
			d.Lines = append(d.Lines, next)
		}
		for _, l := range d.Lines {
			names := set.lines[l]
			if names == nil {
				names = make(map[string]bool, len(d.Names))
				set.lines[l] = names
			}
			for _, name := range d.Names {
				names[name] = true
			}
		}
		set.directives = append(set.directives, d)
	}
	return set
}

// Suppressed reports whether lint is allowed at the start of span.
// A nil Set suppresses nothing.
func (s *Set) Suppressed(l *lint.Lint, span source.Span, src *source.File) bool {
	if s == nil {
		return false
	}
	if s.file[All] || s.file[l.Name] {
		return true
	}
	if len(s.lines) == 0 {
		return false
	}
	names := s.lines[src.Position(span.Start).Line]
	return names[All] || names[l.Name]
}

// Func binds the set to its file, in the shape lint.Options wants.
func (s *Set) Func(src *source.File) func(*lint.Lint, source.Span) bool {
	return func(l *lint.Lint, span source.Span) bool {
		return s.Suppressed(l, span, src)
	}
}

// Directives returns the parsed directives in source order.
// READONLY
func (s *Set) Directives() []Directive {
	return s.directives
}

func (s *Set) Len() int {
	return len(s.directives)
}

// parseDirective recognises `// ferrite:allow(a, b)` and
// `// ferrite:allow-file(a)`. Comments without the prefix are ignored.
func parseDirective(c ast.Comment, reg *lint.Registry, reporter diag.Reporter) (Directive, bool) {
	body, ok := strings.CutPrefix(c.Text, "//")
	if !ok || strings.HasPrefix(body, "/") {
		return Directive{}, false
	}
	lead := len(body) - len(strings.TrimLeft(body, " \t"))
	body = strings.TrimSpace(body)
	rest, ok := strings.CutPrefix(body, prefix)
	if !ok {
		return Directive{}, false
	}

	d := Directive{Span: c.Span}
	var args string
	switch {
	case strings.HasPrefix(rest, "allow-file("):
		d.Scope = ScopeFile
		args = strings.TrimPrefix(rest, "allow-file(")
	case strings.HasPrefix(rest, "allow("):
		d.Scope = ScopeLine
		args = strings.TrimPrefix(rest, "allow(")
	default:
		report(reporter, c.Span, "malformed ferrite directive: expected allow(...) or allow-file(...)")
		return Directive{}, false
	}
	closeIdx := strings.IndexByte(args, ')')
	if closeIdx < 0 || strings.TrimSpace(args[closeIdx+1:]) != "" {
		report(reporter, c.Span, "malformed ferrite directive: expected ')' at the end")
		return Directive{}, false
	}

	// смещение начала списка имён относительно начала комментария
	base := 2 + lead + len(prefix) + (len(rest) - len(args))
	off := 0
	for part := range strings.SplitSeq(args[:closeIdx], ",") {
		name := strings.TrimSpace(part)
		nameOff := base + off + strings.Index(part, name)
		off += len(part) + 1
		if name == "" {
			continue
		}
		if name != All {
			if _, known := reg.Lookup(name); !known {
				report(reporter, subSpan(c.Span, nameOff, len(name)), "unknown lint `"+name+"` in ferrite directive")
				continue
			}
		}
		d.Names = append(d.Names, name)
	}
	if len(d.Names) == 0 {
		return Directive{}, false
	}
	return d, true
}

func report(reporter diag.Reporter, span source.Span, msg string) {
	if reporter == nil {
		return
	}
	reporter.Report(diag.LintUnknownDirective, diag.SevWarning, span, msg, nil, nil)
}

// subSpan narrows a comment span to [off, off+n) within it; on overflow the
// whole comment is used.
func subSpan(sp source.Span, off, n int) source.Span {
	start, err1 := safecast.Conv[uint32](off)
	length, err2 := safecast.Conv[uint32](n)
	if err1 != nil || err2 != nil || start+length > sp.Len() {
		return sp
	}
	return source.Span{File: sp.File, Start: sp.Start + start, End: sp.Start + start + length}
}

// linesWithCode returns, in ascending order, every line on which a token starts.
func linesWithCode(src *source.File) []uint32 {
	var out []uint32
	for _, tok := range lexer.New(src, lexer.Options{}).All() {
		if tok.Kind == token.EOF {
			break
		}
		line := src.Position(tok.Span.Start).Line
		if n := len(out); n == 0 || out[n-1] != line {
			out = append(out, line)
		}
	}
	return out
}

func nextCodeLine(codeLines []uint32, after uint32) (uint32, bool) {
	for _, l := range codeLines {
		if l > after {
			return l, true
		}
	}
	return 0, false
}
