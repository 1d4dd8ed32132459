package faas

import (
	"context"
	"net/http"
)

// DefaultAPIVersion is the API version segment used when Config.APIVersion is empty.
const DefaultAPIVersion = "v2"

// DefaultMaxRedirects bounds how many redirects a single operation follows.
const DefaultMaxRedirects = 1

// Client is the main interface for the function hosting API.
type Client interface {
	Workspaces() WorkspacesClient
	Functions() FunctionsClient
}

// WorkspacesClient defines operations on workspaces.
type WorkspacesClient interface {
	Create(ctx context.Context, request *WorkspaceCreateRequest) (Result, error)
	Destroy(ctx context.Context, name string) (Result, error)
	Get(ctx context.Context, name string) (Result, error)
	RefreshCredentials(ctx context.Context, name string) (Result, error)
	Deploy(ctx context.Context, workspace, packagePath string) (Result, error)
}

// FunctionsClient defines operations on the functions of a workspace.
type FunctionsClient interface {
	Delete(ctx context.Context, function, workspace string) (Result, error)
	UpdateContext(ctx context.Context, function, workspace, payload string) (Result, error)
	Run(ctx context.Context, request *RunRequest) (*RunResponse, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Credentials authenticate requests against a workspace.
type Credentials struct {
	APIKey    string `json:"api_key"    yaml:"api_key"`
	APISecret string `json:"api_secret" yaml:"api_secret"`
}

// IsZero reports whether neither key nor secret is set.
func (c Credentials) IsZero() bool {
	return c.APIKey == "" && c.APISecret == ""
}

// Config represents client configuration for building a faas.Client.
//
// A Config is read once when the client is built; the client keeps its own
// copy, so later changes to the value have no effect on it.
type Config struct {
	// APIEndpoint: base URL of the platform (e.g., "https://api.faastruby.io").
	// faasclient.New trims a trailing slash and adds "https://" if no scheme
	// is present.
	APIEndpoint string
	// APIVersion: path segment between the endpoint and management resources.
	// Defaults to DefaultAPIVersion. Function invocation never uses it.
	APIVersion string

	// Credentials sent as API-KEY / API-SECRET on management calls.
	Credentials Credentials

	// MaxRedirects: number of 301/302/307 follow-ups allowed per operation.
	// Zero means DefaultMaxRedirects; a negative value disables following.
	MaxRedirects int

	// Debug: enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// HTTPClient: optional base client. Its redirect policy is replaced, and
	// no timeout is added.
	HTTPClient *http.Client
}

// WorkspaceCreateRequest is the payload for creating a workspace.
type WorkspaceCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Workspace is the body returned by workspace create, get and credential refresh.
type Workspace struct {
	Name        string            `json:"name"                  yaml:"name"`
	Email       string            `json:"email,omitempty"       yaml:"email,omitempty"`
	Provider    string            `json:"provider,omitempty"    yaml:"provider,omitempty"`
	Functions   []FunctionSummary `json:"functions,omitempty"   yaml:"functions,omitempty"`
	Credentials *Credentials      `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	Errors      []string          `json:"errors,omitempty"      yaml:"errors,omitempty"`
}

// FunctionSummary describes a function deployed to a workspace.
type FunctionSummary struct {
	Name     string `json:"name"               yaml:"name"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// RunRequest describes a function invocation.
type RunRequest struct {
	Workspace string
	Function  string
	// Method is the HTTP verb; empty means GET.
	Method string
	// Payload is forwarded verbatim. It is not sent for GET.
	Payload []byte
	Headers map[string]string
	// Time asks the platform to report timing via the Benchmark header.
	Time bool
	// Query is appended to the function URL, e.g. "?name=joe".
	Query string
}

// RunResponse is the untouched response of a function invocation.
type RunResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
