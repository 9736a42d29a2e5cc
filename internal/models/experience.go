package models

import "slices"

// Experience is a single work history entry
type Experience struct {
	ID            string       `json:"id,omitempty"`
	Role          string       `json:"role"`
	Company       string       `json:"company"`
	StartPeriod   string       `json:"start_period"`
	EndPeriod     *string      `json:"end_period"` // nil means current position
	Description   []string     `json:"description"`
	Achievements  []string     `json:"achievements"`
	Technologies  []Technology `json:"technologies,omitempty"`
	TechnologyIDs []string     `json:"technology_ids,omitempty"`
}

// Current reports whether the entry has no end period
func (e Experience) Current() bool {
	return e.EndPeriod == nil || *e.EndPeriod == ""
}

// Period renders the start/end range, e.g. "2020 - Present"
func (e Experience) Period() string {
	end := "Present"
	if !e.Current() {
		end = *e.EndPeriod
	}
	if e.StartPeriod == "" {
		return end
	}
	return e.StartPeriod + " - " + end
}

// Clone returns a deep copy of the entry
func (e Experience) Clone() Experience {
	if e.EndPeriod != nil {
		end := *e.EndPeriod
		e.EndPeriod = &end
	}
	e.Description = slices.Clone(e.Description)
	e.Achievements = slices.Clone(e.Achievements)
	e.Technologies = slices.Clone(e.Technologies)
	e.TechnologyIDs = slices.Clone(e.TechnologyIDs)
	return e
}
