package gateway

import (
	"context"
	"slices"

	"termfolio.dev/internal/models"
)

// experienceDTO is an experience entry as the backend serves it
type experienceDTO struct {
	ID            string           `json:"id"`
	Role          string           `json:"role"`
	Company       string           `json:"company"`
	StartPeriod   string           `json:"start_period"`
	EndPeriod     *string          `json:"end_period"`
	Description   []string         `json:"description"`
	Achievements  []string         `json:"achievements"`
	Technologies  []models.TechRef `json:"technologies"`
	TechnologyIDs []string         `json:"technology_ids"`
}

func (d experienceDTO) model() models.Experience {
	return models.Experience{
		ID:            d.ID,
		Role:          d.Role,
		Company:       d.Company,
		StartPeriod:   d.StartPeriod,
		EndPeriod:     d.EndPeriod,
		Description:   d.Description,
		Achievements:  d.Achievements,
		Technologies:  models.ResolveTechRefs(d.Technologies),
		TechnologyIDs: d.TechnologyIDs,
	}
}

// FetchExperience returns the work history, most recent first. The backend
// lists entries oldest first.
func (c *Client) FetchExperience(ctx context.Context) ([]models.Experience, error) {
	list, err := fetchList[experienceDTO](ctx, c, "fetch experience data", "experience", pathExperience)
	if err != nil {
		return nil, err
	}

	out := make([]models.Experience, 0, len(list))
	for _, d := range list {
		out = append(out, d.model())
	}
	slices.Reverse(out)
	return out, nil
}

// CreateExperience stores a new entry and returns it with its assigned id
func (c *Client) CreateExperience(ctx context.Context, exp models.Experience) (models.Experience, error) {
	created, err := create[experienceDTO](ctx, c, "create experience", "experience", pathExperience, exp)
	if err != nil {
		return models.Experience{}, err
	}
	return created.model(), nil
}

// UpdateExperience patches the entry with the given id
func (c *Client) UpdateExperience(ctx context.Context, id string, exp models.Experience) error {
	return c.update(ctx, "update experience", "experience", pathExperience, id, exp)
}

// DeleteExperience removes the entry with the given id
func (c *Client) DeleteExperience(ctx context.Context, id string) error {
	return c.remove(ctx, "delete experience", "experience", pathExperience, id)
}
