package store

import "context"

const (
	// ThemeKey is where the theme preference is persisted
	ThemeKey = "portfolio-theme"
	// LegacyModeKey held the view mode in earlier versions; mode is now
	// session-only and the key is removed at startup.
	LegacyModeKey = "portfolio-mode"
)

// Preferences persists user interface settings
type Preferences struct {
	kv KV
}

// NewPreferences creates a preference store on top of kv
func NewPreferences(kv KV) *Preferences {
	return &Preferences{kv: kv}
}

// Theme returns the stored theme, if any
func (p *Preferences) Theme(ctx context.Context) (string, bool, error) {
	return p.kv.Get(ctx, ThemeKey)
}

// SetTheme stores the theme
func (p *Preferences) SetTheme(ctx context.Context, theme string) error {
	return p.kv.Set(ctx, ThemeKey, theme)
}

// ForgetMode deletes the legacy persisted mode
func (p *Preferences) ForgetMode(ctx context.Context) error {
	return p.kv.Delete(ctx, LegacyModeKey)
}
