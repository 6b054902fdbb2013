package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/freand76/kalkon/internal/domain"
)

// Renderer styles calculator output for the terminal. When styling is
// off every helper returns its input unchanged, so pipe consumers see
// plain bytes.
type Renderer struct {
	styled bool
	result lipgloss.Style
	errs   lipgloss.Style
	faint  lipgloss.Style
	warn   lipgloss.Style
}

// NewRenderer resolves the configured color mode against the runtime
// environment. Mode "auto" styles real terminals only and honors the
// NO_COLOR convention.
func NewRenderer(mode string, out *os.File) *Renderer {
	return &Renderer{
		styled: resolveStyling(mode, out),
		result: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		errs:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		faint:  lipgloss.NewStyle().Faint(true),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func resolveStyling(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return out != nil && isatty.IsTerminal(out.Fd())
}

// Result styles a computed value.
func (r *Renderer) Result(text string) string { return r.apply(r.result, text) }

// Error styles an input error message.
func (r *Renderer) Error(text string) string { return r.apply(r.errs, text) }

// Status styles the secondary status line.
func (r *Renderer) Status(text string) string { return r.apply(r.faint, text) }

// Caret renders the column marker printed under an offending line.
// indent is the width of whatever prefixed the echoed expression.
func (r *Renderer) Caret(indent, column int) string {
	if column < 1 {
		return ""
	}
	return strings.Repeat(" ", indent+column-1) + r.Error("^")
}

// HealthLine renders one diagnostic check in the doctor report.
func (r *Renderer) HealthLine(check domain.HealthCheck) string {
	tag := fmt.Sprintf("[%s]", strings.ToUpper(string(check.Status)))
	switch check.Status {
	case domain.HealthOK:
		tag = r.apply(r.result, tag)
	case domain.HealthWarn:
		tag = r.apply(r.warn, tag)
	case domain.HealthError:
		tag = r.apply(r.errs, tag)
	}
	return fmt.Sprintf("%s %s - %s", tag, check.Name, check.Details)
}

func (r *Renderer) apply(style lipgloss.Style, text string) string {
	if !r.styled || text == "" {
		return text
	}
	return style.Render(text)
}
