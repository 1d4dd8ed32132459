package faasclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/client"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// New creates a new client for the function hosting API.
func New(config *faas.Config) (faas.Client, error) {
	if config == nil {
		return nil, faas.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, faas.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	apiClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NormalizeEndpoint trims a trailing slash and adds "https://" when the
// endpoint has no scheme.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithCredentials creates a new client with an API endpoint and a
// workspace key pair.
func NewWithCredentials(endpoint, apiKey, apiSecret string) (faas.Client, error) {
	return New(&faas.Config{
		APIEndpoint: endpoint,
		Credentials: faas.Credentials{APIKey: apiKey, APISecret: apiSecret},
	})
}
