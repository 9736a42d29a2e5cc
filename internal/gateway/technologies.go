package gateway

import (
	"context"

	"termfolio.dev/internal/models"
)

// FetchTechnologies returns the technology catalogue
func (c *Client) FetchTechnologies(ctx context.Context) ([]models.Technology, error) {
	return fetchList[models.Technology](ctx, c, "fetch technologies", "technos", pathTechnology)
}

// CreateTechnology stores a technology. The caller picks the id.
func (c *Client) CreateTechnology(ctx context.Context, t models.Technology) (models.Technology, error) {
	if t.ID == "" {
		return models.Technology{}, validationError("create technology", "Technology ID is required")
	}
	created, err := create[models.Technology](ctx, c, "create technology", "technos", pathTechnology, t)
	if err != nil {
		return models.Technology{}, err
	}
	return *created, nil
}

// UpdateTechnology patches the technology with the given id
func (c *Client) UpdateTechnology(ctx context.Context, id string, t models.Technology) error {
	return c.update(ctx, "update technology", "technos", pathTechnology, id, t)
}

// DeleteTechnology removes the technology with the given id
func (c *Client) DeleteTechnology(ctx context.Context, id string) error {
	return c.remove(ctx, "delete technology", "technos", pathTechnology, id)
}
