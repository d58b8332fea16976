package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Terminal styles. Colour is dropped automatically when stdout is not a
// TTY so piped output stays plain.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func init() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		plain := lipgloss.NewStyle()
		titleStyle = plain
		labelStyle = plain
		valueStyle = plain
		noticeStyle = plain
		successStyle = plain
		errorStyle = plain
	}
}
