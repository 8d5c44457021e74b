package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ferrite/internal/lint"
)

var lintsCmd = &cobra.Command{
	Use:   "lints",
	Short: "List available lints",
	Args:  cobra.NoArgs,
	RunE:  runLints,
}

var explainCmd = &cobra.Command{
	Use:   "explain <lint>",
	Short: "Show the documentation of a lint",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().Bool("raw", false, "print Markdown without rendering")
}

func runLints(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	return writeLintTable(cmd.OutOrStdout(), s.reg.All(), s.cfg.Levels)
}

// writeLintTable prints one row per lint: name, category, effective level
// (the default unless ferrite.toml overrides it) and description.
func writeLintTable(w io.Writer, all []*lint.Lint, levels lint.Levels) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tLEVEL\tCODE\tDESCRIPTION")
	for _, l := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.Name, l.Category, levels.For(l), l.Code.ID(), l.Description)
	}
	return tw.Flush()
}

func runExplain(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return err
	}
	name := strings.ReplaceAll(strings.TrimSpace(args[0]), "-", "_")
	l, ok := s.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", lint.ErrUnknownLint, args[0])
	}
	doc := explainMarkdown(l)
	if raw || !isTerminal(os.Stdout) {
		_, err := io.WriteString(cmd.OutOrStdout(), doc)
		return err
	}
	rendered, err := renderMarkdown(doc)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), rendered)
	return err
}

func explainMarkdown(l *lint.Lint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.Name)
	fmt.Fprintf(&b, "`%s` · %s · default: **%s**\n\n", l.Code.ID(), l.Category, l.Default)
	if l.Doc != "" {
		b.WriteString(strings.TrimSpace(l.Doc))
	} else {
		b.WriteString(l.Description)
	}
	b.WriteString("\n")
	return b.String()
}

// renderMarkdown renders markdown content using glamour.
func renderMarkdown(content string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		opts = append(opts, glamour.WithWordWrap(min(width, 100)))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
