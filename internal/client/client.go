package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// Client implements the faas.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiRoot    string
	logger     faas.Logger

	workspaces *WorkspacesClient
	functions  *FunctionsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *faas.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.MaxRedirects != 0 {
		httpOpts = append(httpOpts, http.WithMaxRedirects(config.MaxRedirects))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// New creates a new API client. The config is copied; the client never
// changes afterwards.
func New(config *faas.Config) (*Client, error) {
	if config == nil {
		return nil, faas.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, faas.ErrAPIEndpointRequired
	}

	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = faas.DefaultAPIVersion
	}

	httpClient := http.NewClient(config.APIEndpoint, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		apiRoot:    "/" + apiVersion,
		logger:     config.Logger,
	}

	session := &session{
		httpClient:  httpClient,
		apiRoot:     client.apiRoot,
		credentials: config.Credentials,
		logger:      config.Logger,
	}

	client.workspaces = NewWorkspacesClient(session)
	client.functions = NewFunctionsClient(session)

	return client, nil
}

// Workspaces implements faas.Client.Workspaces.
func (c *Client) Workspaces() faas.WorkspacesClient {
	return c.workspaces
}

// Functions implements faas.Client.Functions.
func (c *Client) Functions() faas.FunctionsClient {
	return c.functions
}

// BaseURL returns the normalized platform endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// session carries what every resource client needs to build a request.
type session struct {
	httpClient  *http.Client
	apiRoot     string
	credentials faas.Credentials
	logger      faas.Logger
}

// credentialHeaders returns the authentication headers alone.
func (s *session) credentialHeaders() map[string]string {
	return map[string]string{
		constants.HeaderAPIKey:    s.credentials.APIKey,
		constants.HeaderAPISecret: s.credentials.APISecret,
	}
}

// contentHeaders returns the JSON content headers merged with the credentials.
func (s *session) contentHeaders() map[string]string {
	headers := s.credentialHeaders()
	headers[constants.HeaderContentType] = constants.ContentTypeJSON
	headers[constants.HeaderAccept] = constants.ContentTypeJSON

	return headers
}

// workspacePath returns the API path of a workspace, optionally followed by
// more escaped segments.
func (s *session) workspacePath(workspace string, suffix ...string) string {
	path := s.apiRoot + constants.APIPathWorkspaces + "/" + url.PathEscape(workspace)
	for _, part := range suffix {
		path += part
	}

	return path
}

// execute sends the request and classifies the final response.
func (s *session) execute(ctx context.Context, operation string, req *http.Request) (faas.Result, error) {
	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	result, err := faas.Classify(resp.StatusCode, resp.Body)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("Invalid JSON response", map[string]interface{}{
				"operation":   operation,
				"status_code": resp.StatusCode,
				"url":         resp.URL,
				"body":        string(resp.Body),
			})
		}

		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if success := faas.AsSuccess(result); success != nil {
		success.Headers = resp.Headers
	}

	return result, nil
}
