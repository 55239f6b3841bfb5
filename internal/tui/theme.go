package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title        lipgloss.Style
	PaneTitle    lipgloss.Style
	Pane         lipgloss.Style
	FocusedPane  lipgloss.Style
	ActiveLine   lipgloss.Style
	Index        lipgloss.Style
	Unread       lipgloss.Style
	Read         lipgloss.Style
	Meta         lipgloss.Style
	Hint         lipgloss.Style
	StatusOK     lipgloss.Style
	StatusError  lipgloss.Style
	Spinner      lipgloss.Style
	Debug        lipgloss.Style
	Popup        lipgloss.Style
	PopupHeading lipgloss.Style
}

func DefaultTheme() Theme {
	blue := lipgloss.Color("#89b4fa")
	cyan := lipgloss.Color("#94e2d5")
	yellow := lipgloss.Color("#f9e2af")
	red := lipgloss.Color("#f38ba8")
	green := lipgloss.Color("#a6e3a1")
	text := lipgloss.Color("#cdd6f4")
	subtext := lipgloss.Color("#a6adc8")
	overlay := lipgloss.Color("#6c7086")
	surface := lipgloss.Color("#313244")
	base := lipgloss.Color("#1e1e2e")

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(overlay).
		Padding(0, 1)

	return Theme{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(base).Background(cyan).Padding(0, 2),
		PaneTitle:    lipgloss.NewStyle().Bold(true).Foreground(text),
		Pane:         pane,
		FocusedPane:  pane.BorderForeground(blue),
		ActiveLine:   lipgloss.NewStyle().Bold(true).Foreground(base).Background(yellow),
		Index:        lipgloss.NewStyle().Foreground(overlay),
		Unread:       lipgloss.NewStyle().Bold(true).Foreground(text),
		Read:         lipgloss.NewStyle().Foreground(subtext),
		Meta:         lipgloss.NewStyle().Foreground(overlay),
		Hint:         lipgloss.NewStyle().Foreground(overlay).Italic(true),
		StatusOK:     lipgloss.NewStyle().Foreground(green),
		StatusError:  lipgloss.NewStyle().Foreground(red).Bold(true),
		Spinner:      lipgloss.NewStyle().Foreground(yellow),
		Debug:        pane.BorderForeground(surface).Foreground(subtext),
		Popup:        lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(blue).Padding(1, 2),
		PopupHeading: lipgloss.NewStyle().Bold(true).Foreground(blue),
	}
}
