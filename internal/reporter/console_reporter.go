// Package reporter renders scan results for the terminal.
package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aleister1102/typo3enum/internal/config"
	"github.com/aleister1102/typo3enum/internal/models"
	"github.com/charmbracelet/lipgloss"
)

// ConsoleReporter writes one block per target to w.
type ConsoleReporter struct {
	w      io.Writer
	cfg    config.ReporterConfig
	styles styles
}

// NewConsoleReporter creates a reporter writing to w.
func NewConsoleReporter(w io.Writer, cfg config.ReporterConfig) *ConsoleReporter {
	return &ConsoleReporter{
		w:      w,
		cfg:    cfg,
		styles: newStyles(w, cfg.NoColor),
	}
}

// Report renders the outcome for a single target.
func (r *ConsoleReporter) Report(target *models.Target) error {
	var b strings.Builder

	if !target.Detected {
		b.WriteString(r.badge("-", r.styles.missing))
		b.WriteString(" " + r.styles.value.Render(target.Name) + " ")
		b.WriteString(r.styles.failed.Render("TYPO3 not detected"))
		b.WriteString("\n")
		if target.HasLoginStatus() {
			r.line(&b, "", "Backend login:", r.loginStyle(target.LoginState).Render(target.LoginStatus))
		}
		_, err := io.WriteString(r.w, b.String())
		return err
	}

	b.WriteString(r.badge("+", r.styles.detected))
	b.WriteString(" " + r.styles.value.Render(target.Name) + " ")
	b.WriteString(r.styles.found.Render("TYPO3 detected"))
	b.WriteString("\n")

	if target.OriginalName != "" && target.OriginalName != target.Name {
		r.line(&b, "", "Input:", r.styles.value.Render(target.OriginalName))
	}
	if target.HasInstallPath() {
		r.line(&b, "", "Install path:", r.styles.value.Render(target.InstallPath))
	}

	if r.cfg.ShowHeaders && len(target.InterestingHeaders) > 0 {
		r.line(&b, "", "Interesting headers:", "")
		keys := make([]string, 0, len(target.InterestingHeaders))
		for key := range target.InterestingHeaders {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			r.line(&b, "   ", key+":", r.styles.value.Render(target.InterestingHeaders[key]))
		}
	}

	if target.HasLoginStatus() {
		r.line(&b, "", "Backend login:", r.loginStyle(target.LoginState).Render(target.LoginStatus))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// Summary renders the totals line after all targets were scanned.
func (r *ConsoleReporter) Summary(total, detected int) error {
	_, err := fmt.Fprintf(r.w, "\n%s %s\n",
		r.styles.label.UnsetWidth().Render("Scanned:"),
		r.styles.value.Render(fmt.Sprintf("%d target(s), %d running TYPO3", total, detected)),
	)
	return err
}

// ExitIP announces the address traffic leaves the tunnel from.
func (r *ConsoleReporter) ExitIP(ip string) error {
	_, err := fmt.Fprintf(r.w, "%s Connection to tor established, exit IP %s\n",
		r.badge("ok", r.styles.detected),
		r.styles.value.Render(ip),
	)
	return err
}

func (r *ConsoleReporter) badge(text string, style lipgloss.Style) string {
	return r.styles.bracket.Render("[") + style.Render(text) + r.styles.bracket.Render("]")
}

func (r *ConsoleReporter) line(b *strings.Builder, indent, label, value string) {
	b.WriteString(" | " + indent)
	b.WriteString(r.styles.label.Render(label))
	if value != "" {
		b.WriteString(" " + value)
	}
	b.WriteString("\n")
}

func (r *ConsoleReporter) loginStyle(state models.LoginState) lipgloss.Style {
	switch state {
	case models.LoginFound:
		return r.styles.found
	case models.LoginForbidden:
		return r.styles.warning
	default:
		return r.styles.failed
	}
}
