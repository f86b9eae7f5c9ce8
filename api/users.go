package api

import (
	"context"
	"net/url"

	"servicehub/models"
)

// Providers lists registered providers, optionally filtered by profession.
func (c *Client) Providers(ctx context.Context, profession string) ([]models.Provider, error) {
	path := "/users/providers"
	if profession != "" {
		path += "?profession=" + url.QueryEscape(profession)
	}
	var dtos []providerDTO
	if err := c.do(ctx, "GET", path, nil, &dtos); err != nil {
		return nil, err
	}
	providers := make([]models.Provider, 0, len(dtos))
	for _, dto := range dtos {
		providers = append(providers, dto.toModel())
	}
	return providers, nil
}
