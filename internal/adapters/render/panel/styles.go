package panel

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	instance lipgloss.Style
	guild    lipgloss.Style
	detail   lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	fieldKey lipgloss.Style
	logTime  lipgloss.Style
	logScope lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		instance: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		guild:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		fieldKey: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		logTime:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		logScope: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
