package editor

import (
	"context"

	"termfolio.dev/internal/models"
)

// ProjectGateway is the backend surface used by the project editor
type ProjectGateway interface {
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, id string, p models.Project) error
	DeleteProject(ctx context.Context, id string) error
	FetchTechnologies(ctx context.Context) ([]models.Technology, error)
}

// ProjectState is the shared project list
type ProjectState interface {
	Projects() []models.Project
	MutateProjects(fn func([]models.Project) []models.Project)
}

// Projects edits portfolio projects
type Projects struct {
	*listEditor[models.Project]
}

// NewProjects creates a project editor
func NewProjects(gw ProjectGateway, st ProjectState, confirm Confirmer) *Projects {
	return &Projects{newListEditor(collectionOps[models.Project]{
		noun:    "Project",
		list:    st.Projects,
		mutate:  st.MutateProjects,
		create:  gw.CreateProject,
		update:  gw.UpdateProject,
		remove:  gw.DeleteProject,
		fetch:   gw.FetchTechnologies,
		idOf:    func(p models.Project) string { return p.ID },
		withID:  func(p models.Project, id string) models.Project { p.ID = id; return p },
		techIDs: projectTechIDs,
		techs:   func(p models.Project) []models.Technology { return p.Tech },
		setTech: func(p models.Project, ids []string, techs []models.Technology) models.Project {
			p.TechnologyIDs = ids
			p.Tech = techs
			return p
		},
	}, confirm)}
}

func projectTechIDs(p models.Project) []string {
	if len(p.TechnologyIDs) > 0 {
		return p.TechnologyIDs
	}
	return techIDs(p.Tech)
}
