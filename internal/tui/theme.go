package tui

import (
	"github.com/charmbracelet/lipgloss"

	"ezshop/internal/settings"
)

// palette holds the colours of one theme.
type palette struct {
	background lipgloss.Color
	text       lipgloss.Color
	primary    lipgloss.Color
	muted      lipgloss.Color
	error      lipgloss.Color
}

var palettes = map[settings.Theme]palette{
	settings.Light: {
		background: lipgloss.Color("#ffffff"),
		text:       lipgloss.Color("#000000"),
		primary:    lipgloss.Color("#3498db"),
		muted:      lipgloss.Color("#7f8c8d"),
		error:      lipgloss.Color("#c0392b"),
	},
	settings.Dark: {
		background: lipgloss.Color("#121212"),
		text:       lipgloss.Color("#ffffff"),
		primary:    lipgloss.Color("#3498db"),
		muted:      lipgloss.Color("#95a5a6"),
		error:      lipgloss.Color("#e74c3c"),
	},
}

// styles are the rendered styles of a theme.
type styles struct {
	app      lipgloss.Style
	title    lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	muted    lipgloss.Style
	error    lipgloss.Style
	input    lipgloss.Style
}

func newStyles(t settings.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[settings.Light]
	}
	return styles{
		app:      lipgloss.NewStyle().Background(p.background).Foreground(p.text).Padding(0, 1),
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		selected: lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		error:    lipgloss.NewStyle().Bold(true).Foreground(p.error),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
	}
}
