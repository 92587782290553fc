package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

// snippetRunes bounds the document text shown under each match.
const snippetRunes = 160

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// printer writes command results, styled only when stdout is a terminal.
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(cmd *cobra.Command) *printer {
	w := cmd.OutOrStdout()
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return &printer{w: w, styled: styled}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

func (p *printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *printer) printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *printer) title(s string) string { return p.render(titleStyle, s) }
func (p *printer) muted(s string) string { return p.render(mutedStyle, s) }
func (p *printer) warn(s string) string  { return p.render(warnStyle, s) }

// matches prints ranked matches as a numbered list. When detail is not nil
// its non-empty result is printed under each match.
func (p *printer) matches(matches []domain.Match, detail func(domain.Match) string) {
	if len(matches) == 0 {
		p.println(p.warn("No sufficiently similar document."))
		return
	}

	for i := range matches {
		m := matches[i]
		score := p.render(scoreStyle, fmt.Sprintf("%.4f", m.Score))
		p.printf("[%d] %s (doc %d, score %s)\n", i+1, p.title(m.Document.DisplayName()), m.Document.ID, score)
		if m.Document.URI != "" {
			p.printf("    %s\n", p.muted(m.Document.URI))
		}
		if text := strings.TrimSpace(m.Document.Text); text != "" {
			p.printf("    %s\n", domain.Snippet(text, snippetRunes))
		}
		if detail != nil {
			if line := detail(m); line != "" {
				p.printf("    %s\n", line)
			}
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// matchesOrEmpty keeps JSON output an array even when nothing matched.
func matchesOrEmpty(matches []domain.Match) []domain.Match {
	if matches == nil {
		return []domain.Match{}
	}
	return matches
}
