package booking

import (
	"context"
	"strings"

	"servicehub/api"
	"servicehub/models"
	"servicehub/utils"

	"go.uber.org/zap"
)

// resolveProvider picks the assignee for a service: the first provider whose
// profession matches the service's implied profession (case-insensitive
// substring either way), falling back to the first available provider when
// nobody matches. An empty list is a hard failure.
func resolveProvider(providers []models.Provider, profession string) (models.Provider, error) {
	if len(providers) == 0 {
		return models.Provider{}, ErrNoProviders
	}
	want := strings.ToLower(profession)
	for _, p := range providers {
		have := strings.ToLower(p.Profession)
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return p, nil
		}
	}
	return providers[0], nil
}

// fetchAndResolveProvider loads the provider list and resolves an assignee.
func fetchAndResolveProvider(ctx context.Context, client *api.Client, svc models.ServiceOption) (models.Provider, error) {
	providers, err := client.Providers(ctx, "")
	if err != nil {
		return models.Provider{}, err
	}
	provider, err := resolveProvider(providers, svc.Profession)
	if err != nil {
		return models.Provider{}, err
	}
	utils.GetLogger().Debug("resolved provider for booking",
		zap.String("service", svc.Name),
		zap.String("provider", provider.Name))
	return provider, nil
}
