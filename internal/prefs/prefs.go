// Package prefs stores the shopper's display preferences, persisted next
// to the cart under their own fixed keys.
package prefs

import "context"

type ColorTheme string

type Mode string

const (
	ThemeDefault ColorTheme = "default"
	ThemeSage    ColorTheme = "sage"

	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

type Preferences struct {
	ColorTheme ColorTheme `json:"colorTheme"`
	Mode       Mode       `json:"mode"`
}

// Defaults are what a session sees before it ever saved preferences.
func Defaults() Preferences {
	return Preferences{ColorTheme: ThemeDefault, Mode: ModeLight}
}

// Sanitize replaces unknown persisted values with the defaults so a
// hand-edited or stale preferences record never breaks the theme.
func Sanitize(p Preferences) Preferences {
	if p.ColorTheme != ThemeDefault && p.ColorTheme != ThemeSage {
		p.ColorTheme = ThemeDefault
	}
	if p.Mode != ModeLight && p.Mode != ModeDark {
		p.Mode = ModeLight
	}
	return p
}

// Storage persists one session's preferences. Load reports absence via
// ok=false with no error.
type Storage interface {
	Load(ctx context.Context) (p Preferences, ok bool, err error)
	Save(ctx context.Context, p Preferences) error
}
