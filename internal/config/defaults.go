package config

import (
	"embed"
	"encoding/json"
	"fmt"

	"termfolio.dev/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

// Defaults is the bundled content shown until (or instead of) backend data
type Defaults struct {
	Site       models.SiteInfo
	Experience []models.Experience
	Projects   []models.Project
}

// LoadDefaults reads the bundled data files
func LoadDefaults() (*Defaults, error) {
	var d Defaults
	if err := loadJSON("data/site.json", &d.Site); err != nil {
		return nil, err
	}
	if err := loadJSON("data/experience.json", &d.Experience); err != nil {
		return nil, err
	}
	if err := loadJSON("data/projects.json", &d.Projects); err != nil {
		return nil, err
	}
	return &d, nil
}

// loadJSON reads and parses one embedded data file
func loadJSON(path string, target any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
