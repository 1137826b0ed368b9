// internal/tui/styles.go
package tui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	LabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14)
	StageStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	AntennaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	HelpStyle    = lipgloss.NewStyle().Faint(true)
)
