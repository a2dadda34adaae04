package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/bucketlist/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	editingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Italic(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// badge renders the priority label on its priority colour.
func badge(p model.Priority) string {
	return lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(p.Color())).
		Render(p.String())
}

// applyColorProfile follows the terminal's capabilities. Only NO_COLOR turns
// colours off; CLICOLOR is for piped output and does not apply here.
func applyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
