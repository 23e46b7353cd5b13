package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles renders status markers for terminal output. Colors are dropped
// automatically when the writer is not a terminal.
type Styles struct {
	OK      lipgloss.Style
	Fail    lipgloss.Style
	Muted   lipgloss.Style
	Keep    lipgloss.Style
	Replace lipgloss.Style
	Label   lipgloss.Style
}

// NewStyles creates styles for output written to w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		OK:      r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Fail:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Keep:    r.NewStyle().Foreground(lipgloss.Color("2")),
		Replace: r.NewStyle().Foreground(lipgloss.Color("3")).Strikethrough(true),
		Label:   r.NewStyle().Bold(true),
	}
}

// Check returns a check mark or cross for ok.
func (s Styles) Check(ok bool) string {
	if ok {
		return s.OK.Render("✓")
	}
	return s.Fail.Render("✗")
}
