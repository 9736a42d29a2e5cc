package state

import "fmt"

// Mode is the presentation mode chosen by the visitor
type Mode string

const (
	// ModeUnset means no mode was chosen yet; the mode chooser is shown
	ModeUnset    Mode = ""
	ModeTerminal Mode = "terminal"
	ModeClassic  Mode = "classic"
)

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTerminal, ModeClassic:
		return m, nil
	default:
		return ModeUnset, fmt.Errorf("invalid mode %q", s)
	}
}

// Theme is the colour scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("invalid theme %q", s)
	}
}

// Toggled returns the opposite theme
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Page is the current page of the classic layout
type Page string

const (
	PageHome       Page = "home"
	PageExperience Page = "experience"
	PageProjects   Page = "projects"
	PageContact    Page = "contact"
)

// ParsePage validates a page name
func ParsePage(s string) (Page, error) {
	switch p := Page(s); p {
	case PageHome, PageExperience, PageProjects, PageContact:
		return p, nil
	default:
		return "", fmt.Errorf("invalid page %q", s)
	}
}

// LoadState tells where a collection's current value came from
type LoadState int

const (
	// Default is the bundled fallback content, before any fetch completed
	Default LoadState = iota
	// Loaded is server content
	Loaded
	// Failed means the startup fetch failed and the default was kept
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "default"
	}
}

// MarshalText renders the state by name
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name
func (s *LoadState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "default":
		*s = Default
	case "loaded":
		*s = Loaded
	case "failed":
		*s = Failed
	default:
		return fmt.Errorf("unknown load state %q", text)
	}
	return nil
}

// Collection names one of the bootstrapped collections
type Collection string

const (
	CollectionSite       Collection = "site"
	CollectionExperience Collection = "experience"
	CollectionProjects   Collection = "projects"
)

// CollectionStatus is the load status of one collection
type CollectionStatus struct {
	State   LoadState `json:"state"`
	Loading bool      `json:"loading"`
	Error   string    `json:"error,omitempty"`
}

// View is a point-in-time copy of the view state
type View struct {
	Mode          Mode                            `json:"mode"`
	Theme         Theme                           `json:"theme"`
	Page          Page                            `json:"page"`
	Authenticated bool                            `json:"authenticated"`
	Loading       bool                            `json:"loading"`
	Error         string                          `json:"error,omitempty"`
	Collections   map[Collection]CollectionStatus `json:"collections"`
}
