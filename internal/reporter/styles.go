package reporter

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	successColor = lipgloss.Color("#00D26A")
	warningColor = lipgloss.Color("#FFB800")
	errorColor   = lipgloss.Color("#FF3838")
	mutedColor   = lipgloss.Color("#6B7280")
	valueColor   = lipgloss.Color("#FAFAFA")
)

// styles are bound to one renderer so colors follow the output, not stdout.
type styles struct {
	detected lipgloss.Style
	missing  lipgloss.Style
	bracket  lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	found    lipgloss.Style
	warning  lipgloss.Style
	failed   lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	renderer := lipgloss.NewRenderer(w)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return styles{
		detected: renderer.NewStyle().Foreground(successColor).Bold(true),
		missing:  renderer.NewStyle().Foreground(errorColor).Bold(true),
		bracket:  renderer.NewStyle().Foreground(mutedColor),
		label:    renderer.NewStyle().Foreground(mutedColor).Width(30),
		value:    renderer.NewStyle().Foreground(valueColor),
		found:    renderer.NewStyle().Foreground(successColor),
		warning:  renderer.NewStyle().Foreground(warningColor),
		failed:   renderer.NewStyle().Foreground(errorColor),
	}
}
