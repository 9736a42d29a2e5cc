package gateway

import (
	"context"

	"termfolio.dev/internal/models"
)

// FetchSiteInfo returns the owner record. The backend serves it as a list
// holding a single entry.
func (c *Client) FetchSiteInfo(ctx context.Context) (models.SiteInfo, error) {
	const op = "fetch site data"
	list, err := fetchList[models.SiteInfo](ctx, c, op, "owner", pathOwner)
	if err != nil {
		return models.SiteInfo{}, err
	}
	if len(list) == 0 {
		return models.SiteInfo{}, &Error{Kind: ServerRejection, Op: op, Message: "No site data returned by server"}
	}
	return list[0], nil
}

// UpdateSiteInfo patches the owner record identified by info.ID
func (c *Client) UpdateSiteInfo(ctx context.Context, info models.SiteInfo) error {
	const op = "update site data"
	if info.ID == "" {
		return validationError(op, "Owner ID is required to update site data")
	}
	return c.update(ctx, op, "owner", pathOwner, info.ID, info)
}
