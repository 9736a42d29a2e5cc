package gateway

import (
	"context"

	"termfolio.dev/internal/models"
)

// projectDTO is a project as the backend serves it. Older records list
// technologies by name only.
type projectDTO struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Technologies  []models.TechRef `json:"technologies"`
	TechnologyIDs []string         `json:"technology_ids"`
	Demo          string           `json:"demo"`
	Repo          string           `json:"repo"`
	Year          int              `json:"year"`
}

func (d projectDTO) model() models.Project {
	return models.Project{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Tech:          models.ResolveTechRefs(d.Technologies),
		TechnologyIDs: d.TechnologyIDs,
		Demo:          d.Demo,
		Repo:          d.Repo,
		Year:          d.Year,
	}
}

// FetchProjects returns all projects in server order
func (c *Client) FetchProjects(ctx context.Context) ([]models.Project, error) {
	list, err := fetchList[projectDTO](ctx, c, "fetch projects data", "project", pathProject)
	if err != nil {
		return nil, err
	}

	out := make([]models.Project, 0, len(list))
	for _, d := range list {
		out = append(out, d.model())
	}
	return out, nil
}

// CreateProject stores a new project and returns it with its assigned id
func (c *Client) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	created, err := create[projectDTO](ctx, c, "create project", "project", pathProject, p)
	if err != nil {
		return models.Project{}, err
	}
	return created.model(), nil
}

// UpdateProject patches the project with the given id
func (c *Client) UpdateProject(ctx context.Context, id string, p models.Project) error {
	return c.update(ctx, "update project", "project", pathProject, id, p)
}

// DeleteProject removes the project with the given id
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.remove(ctx, "delete project", "project", pathProject, id)
}
