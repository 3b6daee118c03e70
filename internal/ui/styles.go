package ui

import "github.com/charmbracelet/lipgloss"

// Styles mirror the curses color pairs of spec.md 6 ("Terminal
// protocol"): normal, yellow line numbers, red highlighted pattern,
// green file headers; magenta is used for the subsearch prompt and the
// "did you mean" line.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2")) // green

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")) // yellow

	matchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1")) // red

	selectedStyle = lipgloss.NewStyle().
			Reverse(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")) // magenta

	suggestionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("5")).
				Italic(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))
)
