package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the gear canvas and the speed graph.
type Theme struct {
	Name    string
	Gear    lipgloss.Color
	Hovered lipgloss.Color
	Graph   lipgloss.Color
}

var (
	ThemeBrass = Theme{
		Name:    "brass",
		Gear:    lipgloss.Color("#d4a017"),
		Hovered: lipgloss.Color("#ffe680"),
		Graph:   lipgloss.Color("#ffcc00"),
	}

	ThemeSteel = Theme{
		Name:    "steel",
		Gear:    lipgloss.Color("#8899aa"),
		Hovered: lipgloss.Color("#00ffff"),
		Graph:   lipgloss.Color("#00ccff"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Gear:    lipgloss.Color("#00cc00"),
		Hovered: lipgloss.Color("#88ff88"),
		Graph:   lipgloss.Color("#00ff00"),
	}
)

var themes = []Theme{ThemeBrass, ThemeSteel, ThemeRetro}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range themes {
		if th.Name == t.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
