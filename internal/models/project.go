package models

import "slices"

// Project represents a portfolio project
type Project struct {
	ID            string       `json:"id,omitempty"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Tech          []Technology `json:"technologies"`
	TechnologyIDs []string     `json:"technology_ids,omitempty"`
	Demo          string       `json:"demo,omitempty"`
	Repo          string       `json:"repo,omitempty"`
	Year          int          `json:"year,omitempty"`
}

// TechNames returns the display names of the project's technologies
func (p Project) TechNames() []string {
	names := make([]string, 0, len(p.Tech))
	for _, t := range p.Tech {
		names = append(names, t.Name)
	}
	return names
}

// Clone returns a deep copy of the project
func (p Project) Clone() Project {
	p.Tech = slices.Clone(p.Tech)
	p.TechnologyIDs = slices.Clone(p.TechnologyIDs)
	return p
}
