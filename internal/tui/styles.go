package tui

import "github.com/charmbracelet/lipgloss"

var (
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	boardStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)
