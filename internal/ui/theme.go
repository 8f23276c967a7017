package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/aperture/internal/notify"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, command bar and footer
	SurfaceAlt string // Unfocused panes
	FocusBg    string // Focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		theme: t,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	theme Theme
}

// ToastStyle returns the badge style for a toast level.
func (s Styles) ToastStyle(level notify.Level) lipgloss.Style {
	color := s.theme.Info
	switch level {
	case notify.Success:
		color = s.theme.Success
	case notify.Warning:
		color = s.theme.Warning
	case notify.Error:
		color = s.theme.Danger
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.theme.Background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with every text style painted on
// bgColor, so segments joined on one line share a background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		Background: s.Background.Background(bg),
		Surface:    s.Surface.Background(bg),

		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),

		Header:   s.Header.Background(bg),
		Footer:   s.Footer.Background(bg),
		Logo:     s.Logo.Background(bg),
		Selected: s.Selected.Background(bg),

		theme: s.theme,
	}
}

var themes = map[string]Theme{
	"Studio":   studioTheme(),
	"Darkroom": darkroomTheme(),
	"Film":     filmTheme(),
}

var themeOrder = []string{"Studio", "Darkroom", "Film"}

// GetTheme returns a theme by name, falling back to Studio.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return studioTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func studioTheme() Theme {
	// Warm neutrals with a brass accent
	return Theme{
		Name: "Studio",

		Background: "#17140F",
		Surface:    "#221E17",
		SurfaceAlt: "#1C1913",
		FocusBg:    "#2C271E",

		SelectionBg:   "#4A3F2C",
		SelectionText: "#F5EEDF",

		Border:      "#4A3F2C",
		BorderMuted: "#2C271E",
		BorderFocus: "#D6A648",

		Text:    "#F5EEDF",
		Muted:   "#A89A80",
		Faint:   "#6B604D",
		Accent:  "#D6A648",
		Success: "#8FBF6A",
		Warning: "#E0924A",
		Danger:  "#E05A4F",
		Info:    "#7FB2C9",
	}
}

func darkroomTheme() Theme {
	// Safelight red on black
	return Theme{
		Name: "Darkroom",

		Background: "#0B0606",
		Surface:    "#160B0B",
		SurfaceAlt: "#110808",
		FocusBg:    "#1F0F0F",

		SelectionBg:   "#5A1A16",
		SelectionText: "#FFE5E0",

		Border:      "#3D1512",
		BorderMuted: "#1F0F0F",
		BorderFocus: "#E5483A",

		Text:    "#F2D6D1",
		Muted:   "#A3726B",
		Faint:   "#6A3F3A",
		Accent:  "#E5483A",
		Success: "#9CC47A",
		Warning: "#F0A04B",
		Danger:  "#FF3B30",
		Info:    "#D98C7F",
	}
}

func filmTheme() Theme {
	// Slide-film yellow and cyan
	return Theme{
		Name: "Film",

		Background: "#0E1216",
		Surface:    "#161C22",
		SurfaceAlt: "#12171C",
		FocusBg:    "#1E262E",

		SelectionBg:   "#21586B",
		SelectionText: "#F4F7F9",

		Border:      "#2B3742",
		BorderMuted: "#1E262E",
		BorderFocus: "#F2C230",

		Text:    "#E8EDF1",
		Muted:   "#8C9AA6",
		Faint:   "#56636E",
		Accent:  "#F2C230",
		Success: "#4CC38A",
		Warning: "#F29A30",
		Danger:  "#E5484D",
		Info:    "#3FB8D8",
	}
}
