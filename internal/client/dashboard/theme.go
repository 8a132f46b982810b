package dashboard

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the dashboard. All colors are ANSI 256-color
// codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	HeaderForeground lipgloss.Color
	BrandBackground  lipgloss.Color
	BorderColor      lipgloss.Color

	ActiveTabForeground lipgloss.Color
	ActiveTabBackground lipgloss.Color

	Success  lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
}

// ToneColor returns the color for tone. ToneNeutral maps to NormalText.
func (theme Theme) ToneColor(tone Tone) lipgloss.Color {
	switch tone {
	case ToneSuccess:
		return theme.Success
	case ToneWarning:
		return theme.Warning
	case ToneCritical:
		return theme.Critical
	default:
		return theme.NormalText
	}
}

// DefaultTheme is the dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	BrandBackground:  lipgloss.Color("25"),
	BorderColor:      lipgloss.Color("240"),

	ActiveTabForeground: lipgloss.Color("255"),
	ActiveTabBackground: lipgloss.Color("25"),

	Success:  lipgloss.Color("114"), // green
	Warning:  lipgloss.Color("220"), // amber
	Critical: lipgloss.Color("196"), // red
}
