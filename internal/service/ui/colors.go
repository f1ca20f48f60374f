package ui

import "github.com/charmbracelet/lipgloss"

// ANSI palette colors only, so the shell renders the same in every
// terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// Chat shell styles.
	AssistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	WarnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
