package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ferrite/internal/diag"
	"ferrite/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	gutter, caret   *color.Color
	note, help      *color.Color
	code            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
		help:   color.New(color.FgGreen, color.Bold),
		code:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.gutter, p.caret, p.note, p.help, p.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^^^ по Span, help для
// предпочтительного исправления, затем Notes и Fixes по опциям.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	file := fs.Get(d.Primary.File)
	if file == nil {
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	path := formatPath(file, opts.PathMode, fs.BaseDir())

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	writeSnippet(w, file, d.Primary, start, end, opts, pal)

	for _, f := range d.Fixes {
		if !f.IsPreferred || len(f.Edits) != 1 {
			continue
		}
		fmt.Fprintf(w, "  %s %s: `%s`\n", pal.help.Sprint("help:"), f.Title, f.Edits[0].NewText)
		break
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, f := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s [%s, %s", i+1, f.Title, f.Kind, f.Applicability)
			if f.IsPreferred {
				fmt.Fprint(w, ", preferred")
			}
			if f.ID != "" {
				fmt.Fprintf(w, ", id=%s", f.ID)
			}
			fmt.Fprintln(w, "]")
			for _, e := range f.Edits {
				fmt.Fprintf(w, "    edit %s apply=%s\n", location(fs, e.Span, opts.PathMode), strconv.Quote(e.NewText))
			}
			if opts.ShowPreview {
				writePreview(w, fs, f)
			}
		}
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	file := fs.Get(span.File)
	if file == nil {
		return "?"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(file, mode, fs.BaseDir()), start.Line, start.Col)
}

// writeSnippet prints the primary line (plus Context lines above it) and a
// caret underline aligned by display width.
func writeSnippet(w io.Writer, file *source.File, span source.Span, start, end source.LineCol, opts PrettyOpts, pal palette) {
	first := start.Line
	if opts.Context > 0 {
		ctx := uint32(opts.Context)
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
	}
	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))
	blank := strings.Repeat(" ", gutterWidth)

	for ln := first; ln <= start.Line; ln++ {
		text := clip(file.GetLine(ln), opts.Width)
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, ln), pal.gutter.Sprint("|"), text)
	}

	line := file.GetLine(start.Line)
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}

	pad := indentFor(line[:col])
	width := runewidth.StringWidth(line[col:stop])
	if width == 0 {
		width = 1
	}
	carets := strings.Repeat("^", width)
	if end.Line > start.Line {
		carets += "..."
	}
	fmt.Fprintf(w, " %s %s %s%s\n", blank, pal.gutter.Sprint("|"), pad, pal.caret.Sprint(carets))
}

// indentFor keeps tabs and replaces everything else by spaces of the same
// display width, so the carets line up under the source text.
func indentFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}

func writePreview(w io.Writer, fs *source.FileSet, f diag.Fix) {
	preview, err := buildFixPreview(fs, f)
	if err != nil {
		fmt.Fprintf(w, "    preview unavailable: %v\n", err)
		return
	}
	fmt.Fprintln(w, "    preview:")
	for _, l := range preview.before {
		fmt.Fprintf(w, "      - %s\n", l)
	}
	for _, l := range preview.after {
		fmt.Fprintf(w, "      + %s\n", l)
	}
}
