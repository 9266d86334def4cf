package model

// PreferenceTheme is the preference key the theme is stored under.
const PreferenceTheme = "stockflow_theme"

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Theme is the UI colour preference.
type Theme struct {
	Name         string    `json:"name" validate:"required"`
	PrimaryColor string    `json:"primary_color" validate:"required,hexcolor"`
	Radius       string    `json:"radius"`
	Mode         ThemeMode `json:"mode" validate:"required,oneof=light dark"`
}

var DefaultTheme = Theme{
	Name:         "Ocean Blue",
	PrimaryColor: "#2563eb",
	Radius:       "0.5rem",
	Mode:         ThemeLight,
}

// ThemePresets are offered in the settings screen.
var ThemePresets = []Theme{
	{Name: "Ocean Blue", PrimaryColor: "#2563eb", Radius: "0.5rem", Mode: ThemeLight},
	{Name: "Royal Purple", PrimaryColor: "#7c3aed", Radius: "0.75rem", Mode: ThemeLight},
	{Name: "Emerald Green", PrimaryColor: "#059669", Radius: "0.25rem", Mode: ThemeLight},
	{Name: "Rose Red", PrimaryColor: "#e11d48", Radius: "1rem", Mode: ThemeLight},
	{Name: "Sunset Amber", PrimaryColor: "#d97706", Radius: "0.5rem", Mode: ThemeLight},
	{Name: "Slate Grey", PrimaryColor: "#475569", Radius: "0rem", Mode: ThemeLight},
}
