package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF52FF")).MarginBottom(1)
	subTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	buttonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#4E44CE")).Padding(0, 2)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F6AD55")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FC8181"))
	itemStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#35AEE2")).Padding(0, 1)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#718096"))
)
