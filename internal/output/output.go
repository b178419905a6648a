// Package output implements the console side of a job run: plain and styled
// lines on stdout, diagnostics and failure headers on stderr. Styling is
// enabled only when stdout is a terminal and NO_COLOR is unset.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vk/suiterun/internal/status"
)

// Styles defines the color roles used by the manager.
type Styles struct {
	Header lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Warn   lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultStyles returns the stock color roles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true),
		Pass:   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
	}
}

// Manager writes user-facing output for one job run.
type Manager struct {
	stdout io.Writer
	stderr io.Writer
	styles Styles
	color  bool
}

// New returns a manager writing to the given streams, with styling decided by
// whether stdout is a terminal.
func New(stdout, stderr io.Writer) *Manager {
	color := false
	if f, ok := stdout.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
	}
	return &Manager{
		stdout: stdout,
		stderr: stderr,
		styles: DefaultStyles(),
		color:  color,
	}
}

// paint renders s with st when styling is enabled.
func (m *Manager) paint(st lipgloss.Style, s string) string {
	if !m.color {
		return s
	}
	return st.Render(s)
}

// Info writes one formatted line to stdout.
func (m *Manager) Info(format string, args ...any) {
	fmt.Fprintf(m.stdout, format+"\n", args...)
}

// Header writes one bold line to stdout.
func (m *Manager) Header(format string, args ...any) {
	fmt.Fprintln(m.stdout, m.paint(m.styles.Header, fmt.Sprintf(format, args...)))
}

// Error writes one formatted line to stderr.
func (m *Manager) Error(format string, args ...any) {
	fmt.Fprintf(m.stderr, format+"\n", args...)
}

// LogFailHeader writes one prominent failure line to stderr.
func (m *Manager) LogFailHeader(format string, args ...any) {
	fmt.Fprintln(m.stderr, m.paint(m.styles.Fail, fmt.Sprintf(format, args...)))
}

// StatusLabel renders a test status word in its color: green for passing,
// orange for WARN, red otherwise.
func (m *Manager) StatusLabel(s string) string {
	switch {
	case s == status.Warn:
		return m.paint(m.styles.Warn, s)
	case status.Passing(s):
		return m.paint(m.styles.Pass, s)
	default:
		return m.paint(m.styles.Fail, s)
	}
}

// Muted renders s in the muted color, for secondary detail like paths.
func (m *Manager) Muted(s string) string {
	return m.paint(m.styles.Muted, s)
}
