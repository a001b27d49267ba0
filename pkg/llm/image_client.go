package llm

import (
	"context"
	"fmt"

	"github.com/dskvich/supatools/pkg/domain"
)

type ImageGenerator interface {
	GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error)
}

// MultiProviderImageClient routes a request to the provider registered for
// its model.
type MultiProviderImageClient struct {
	providers map[string]ImageGenerator
}

func NewMultiProviderImageClient(providers map[string]ImageGenerator) *MultiProviderImageClient {
	return &MultiProviderImageClient{
		providers: providers,
	}
}

func (c *MultiProviderImageClient) GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error) {
	provider, ok := c.providers[req.Model]
	if !ok {
		return "", fmt.Errorf("no provider found for model: %s", req.Model)
	}

	return provider.GenerateImage(ctx, req)
}
