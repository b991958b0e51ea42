package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coolguy173/focus-app1/internal/theme"
)

// Palette is the color set one theme contributes to the battle screen.
type Palette struct {
	Accent  lipgloss.Color
	Danger  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Surface lipgloss.Color
}

var palettes = map[theme.Theme]Palette{
	theme.Ember: {
		Accent:  lipgloss.Color("#E25822"),
		Danger:  lipgloss.Color("#FF4040"),
		Text:    lipgloss.Color("#F2E9E4"),
		Muted:   lipgloss.Color("#8D7B74"),
		Surface: lipgloss.Color("#2B1D17"),
	},
	theme.Glacier: {
		Accent:  lipgloss.Color("#6FC3DF"),
		Danger:  lipgloss.Color("#FF6B6B"),
		Text:    lipgloss.Color("#E8F4F8"),
		Muted:   lipgloss.Color("#6E8A94"),
		Surface: lipgloss.Color("#12242B"),
	},
	theme.Midnight: {
		Accent:  lipgloss.Color("#9966FF"),
		Danger:  lipgloss.Color("#FF5577"),
		Text:    lipgloss.Color("#E6E1F5"),
		Muted:   lipgloss.Color("#6B6580"),
		Surface: lipgloss.Color("#191526"),
	},
	theme.Forest: {
		Accent:  lipgloss.Color("#57CC8A"),
		Danger:  lipgloss.Color("#E86A5E"),
		Text:    lipgloss.Color("#EAF4EC"),
		Muted:   lipgloss.Color("#718A77"),
		Surface: lipgloss.Color("#16251B"),
	},
}

// paletteFor returns the palette of a theme, falling back to the default
// palette for unknown names.
func paletteFor(name theme.Theme) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[theme.Default]
}

type styleSet struct {
	clock       lipgloss.Style
	clockDanger lipgloss.Style
	title       lipgloss.Style
	status      lipgloss.Style
	stats       lipgloss.Style
	help        lipgloss.Style
	result      lipgloss.Style
	pill        lipgloss.Style
	pillActive  lipgloss.Style
	frame       lipgloss.Style
}

func newStyleSet(p Palette) styleSet {
	return styleSet{
		clock: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		clockDanger: lipgloss.NewStyle().
			Foreground(p.Danger).
			Bold(true),
		title: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),
		status: lipgloss.NewStyle().
			Foreground(p.Muted),
		stats: lipgloss.NewStyle().
			Foreground(p.Text),
		help: lipgloss.NewStyle().
			Foreground(p.Muted),
		result: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
		pill: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		pillActive: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Accent).
			Padding(0, 1),
		frame: lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted),
	}
}

// renderProgressBar draws a fixed-width bar filled to percent.
func renderProgressBar(percent float64, width int, p Palette, danger bool) string {
	if width < 4 {
		width = 4
	}
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	fillColor := p.Accent
	if danger {
		fillColor = p.Danger
	}

	bar := lipgloss.NewStyle().Foreground(fillColor).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(p.Muted).Render(strings.Repeat("░", width-filled))
	return bar
}
