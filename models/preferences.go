package models

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Preferences are the per-session display settings.
type Preferences struct {
	Language string `json:"language"`
	Theme    Theme  `json:"theme"`
}

// UpdatePreferencesRequest is the body of PUT /preferences.
type UpdatePreferencesRequest struct {
	Language *string `json:"language"`
	Theme    *Theme  `json:"theme"`
}
