package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a colour scheme shared by the terminal host and SVG export.
// Every colour is a #rrggbb string so both outputs can use it.
type Theme struct {
	Name       string
	Node       lipgloss.Color
	Hover      lipgloss.Color
	Line       lipgloss.Color
	Globe      lipgloss.Color
	Arc        lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
}

var (
	// ThemeNight matches the dark card look of the web page.
	ThemeNight = Theme{
		Name:       "night",
		Node:       lipgloss.Color("#c8d2ff"),
		Hover:      lipgloss.Color("#ff3366"),
		Line:       lipgloss.Color("#5a6488"),
		Globe:      lipgloss.Color("#ffffff"),
		Arc:        lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#0a0a12"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Node:       lipgloss.Color("#00ffff"),
		Hover:      lipgloss.Color("#ff00ff"),
		Line:       lipgloss.Color("#663366"),
		Globe:      lipgloss.Color("#ffff00"),
		Arc:        lipgloss.Color("#ff00ff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Node:       lipgloss.Color("#00ff00"),
		Hover:      lipgloss.Color("#ffff00"),
		Line:       lipgloss.Color("#005500"),
		Globe:      lipgloss.Color("#00cc00"),
		Arc:        lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Node:       lipgloss.Color("#00a8cc"),
		Hover:      lipgloss.Color("#ffd700"),
		Line:       lipgloss.Color("#225577"),
		Globe:      lipgloss.Color("#4488aa"),
		Arc:        lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Node:       lipgloss.Color("#feca57"),
		Hover:      lipgloss.Color("#ff6b6b"),
		Line:       lipgloss.Color("#8b6b8c"),
		Globe:      lipgloss.Color("#ff9ff3"),
		Arc:        lipgloss.Color("#ff6b6b"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Error:      lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeNight,
		ThemeCyberpunk,
		ThemeRetro,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
