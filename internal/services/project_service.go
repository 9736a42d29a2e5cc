package services

import (
	"fmt"

	"termfolio.dev/internal/models"
)

// ProjectSource provides the current project list
type ProjectSource interface {
	Projects() []models.Project
	Project(id string) (models.Project, bool)
}

// ProjectService handles project-related operations
type ProjectService struct {
	projects ProjectSource
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects ProjectSource) *ProjectService {
	return &ProjectService{projects: projects}
}

// GetAll returns all projects
func (s *ProjectService) GetAll() []models.Project {
	return s.projects.Projects()
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	p, ok := s.projects.Project(id)
	if !ok {
		return nil, fmt.Errorf("project not found: %s", id)
	}
	return &p, nil
}

// UsingTechnology returns the projects tagged with the technology id
func (s *ProjectService) UsingTechnology(techID string) []models.Project {
	out := []models.Project{}
	for _, p := range s.projects.Projects() {
		for _, t := range p.Tech {
			if t.ID == techID {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ProjectDetail is a project with its display fields precomputed
type ProjectDetail struct {
	models.Project
	Heading   string   `json:"heading"`
	TechNames []string `json:"tech_names"`
}

// Detail returns the display form of one project. The heading carries the
// year when one is set, e.g. "Name (2024)".
func (s *ProjectService) Detail(id string) (*ProjectDetail, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	heading := p.Name
	if p.Year != 0 {
		heading = fmt.Sprintf("%s (%d)", p.Name, p.Year)
	}
	return &ProjectDetail{Project: *p, Heading: heading, TechNames: p.TechNames()}, nil
}
