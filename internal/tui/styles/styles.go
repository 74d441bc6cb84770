package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tessro/tapedeck/internal/core"
)

// Cassette label colors
var (
	Orange = lipgloss.Color("#F97316")
	Purple = lipgloss.Color("#7C3AED")
	White  = lipgloss.Color("#F9FAFB")
	Green  = lipgloss.Color("#10B981")
	Red    = lipgloss.Color("#EF4444")
)

// Theme is the set of styles one color scheme renders with.
type Theme struct {
	Name core.Theme

	Primary lipgloss.Color
	Accent  lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Dim     lipgloss.Color
	Error   lipgloss.Color

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	MutedText lipgloss.Style
	DimText   lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	ErrorText lipgloss.Style

	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
	Screen        lipgloss.Style
}

func flavor(t core.Theme) catppuccin.Flavor {
	switch t {
	case core.ThemeBlack:
		return catppuccin.Mocha
	case core.ThemeSilver:
		return catppuccin.Frappe
	case core.ThemeDark:
		return catppuccin.Macchiato
	default:
		return catppuccin.Latte
	}
}

// For builds the styles of theme t. Unknown themes render as classic.
func For(t core.Theme) Theme {
	if !t.Valid() {
		t = core.ThemeClassic
	}
	f := flavor(t)
	th := Theme{
		Name:    t,
		Primary: lipgloss.Color(f.Mauve().Hex),
		Accent:  lipgloss.Color(f.Peach().Hex),
		Surface: lipgloss.Color(f.Surface0().Hex),
		Border:  lipgloss.Color(f.Overlay0().Hex),
		Text:    lipgloss.Color(f.Text().Hex),
		Muted:   lipgloss.Color(f.Subtext0().Hex),
		Dim:     lipgloss.Color(f.Overlay1().Hex),
		Error:   lipgloss.Color(f.Red().Hex),
	}

	th.Title = lipgloss.NewStyle().Bold(true).Foreground(th.Text)
	th.Subtitle = lipgloss.NewStyle().Foreground(th.Muted)
	th.Label = lipgloss.NewStyle().Foreground(th.Dim)
	th.Highlight = lipgloss.NewStyle().Bold(true).Foreground(th.Primary)
	th.Selected = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(f.Base().Hex)).
		Background(th.Primary)
	th.MutedText = lipgloss.NewStyle().Foreground(th.Muted)
	th.DimText = lipgloss.NewStyle().Foreground(th.Dim)
	th.Playing = lipgloss.NewStyle().Foreground(lipgloss.Color(f.Green().Hex))
	th.Paused = lipgloss.NewStyle().Foreground(lipgloss.Color(f.Yellow().Hex))
	th.ErrorText = lipgloss.NewStyle().Foreground(th.Error)

	th.BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border)
	th.FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Primary)
	th.Screen = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(th.Border).
		Padding(0, 1)
	return th
}

// Panel creates a styled panel with optional focus
func (t Theme) Panel(focused bool) lipgloss.Style {
	if focused {
		return t.FocusedBorder.Padding(0, 1)
	}
	return t.BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func (t Theme) PanelTitle(title string, focused bool) string {
	style := t.Label
	if focused {
		style = t.Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar renders percent (0-100) as a bar of width cells.
func (t Theme) ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(t.Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(t.Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status
func (t Theme) StatusIcon(playing bool) string {
	if playing {
		return t.Playing.Render("▶")
	}
	return t.Paused.Render("⏸")
}

// MixColor maps a cassette color to its label color.
func MixColor(c core.Color) lipgloss.Color {
	switch c {
	case core.ColorOrange:
		return Orange
	case core.ColorPurple:
		return Purple
	case core.ColorGreen:
		return Green
	case core.ColorRed:
		return Red
	default:
		return White
	}
}

// Truncate cuts s to at most width display cells, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Width is the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}
