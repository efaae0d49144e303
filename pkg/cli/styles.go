package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#6D4C41") // Mushroom brown
	colorAccent  = lipgloss.Color("#8BC34A") // Mycelium green
	colorMuted   = lipgloss.Color("#9E9E9E")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#E53935")
	colorInfo    = lipgloss.Color("#2196F3")
)

// styles used by the text output.
var styles = struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Card    lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
	Header:  lipgloss.NewStyle().Bold(true).Underline(true),
	Label:   lipgloss.NewStyle().Foreground(colorMuted).Width(22),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	Success: lipgloss.NewStyle().Foreground(colorAccent),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
	Info:    lipgloss.NewStyle().Foreground(colorInfo),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1),
}
