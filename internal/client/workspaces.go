package client

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	http_internal "github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// WorkspacesClient implements the faas.WorkspacesClient interface.
type WorkspacesClient struct {
	session *session
}

// NewWorkspacesClient creates a new WorkspacesClient.
func NewWorkspacesClient(session *session) *WorkspacesClient {
	return &WorkspacesClient{
		session: session,
	}
}

// Create creates a new workspace.
func (c *WorkspacesClient) Create(ctx context.Context, request *faas.WorkspaceCreateRequest) (faas.Result, error) {
	if request == nil {
		return nil, faas.ErrCreateRequestRequired
	}

	if request.Name == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	return c.session.execute(ctx, "creating workspace", &http_internal.Request{
		Method:  http.MethodPost,
		Path:    c.session.apiRoot + constants.APIPathWorkspaces,
		Body:    request,
		Headers: c.session.contentHeaders(),
	})
}

// Destroy deletes a workspace and everything deployed to it.
func (c *WorkspacesClient) Destroy(ctx context.Context, name string) (faas.Result, error) {
	if name == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	return c.session.execute(ctx, "destroying workspace", &http_internal.Request{
		Method:  http.MethodDelete,
		Path:    c.session.workspacePath(name),
		Headers: c.session.contentHeaders(),
	})
}

// Get retrieves a workspace and the functions deployed to it.
func (c *WorkspacesClient) Get(ctx context.Context, name string) (faas.Result, error) {
	if name == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	return c.session.execute(ctx, "getting workspace", &http_internal.Request{
		Method:  http.MethodGet,
		Path:    c.session.workspacePath(name),
		Headers: c.session.contentHeaders(),
	})
}

// RefreshCredentials asks the platform to issue a new key pair for a workspace.
func (c *WorkspacesClient) RefreshCredentials(ctx context.Context, name string) (faas.Result, error) {
	if name == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	return c.session.execute(ctx, "refreshing credentials", &http_internal.Request{
		Method:  http.MethodPut,
		Path:    c.session.workspacePath(name, constants.APIPathCredentials),
		RawBody: []byte{},
		Headers: c.session.credentialHeaders(),
	})
}

// Deploy uploads a deploy package to a workspace. The file is streamed, not
// loaded into memory.
func (c *WorkspacesClient) Deploy(ctx context.Context, workspace, packagePath string) (faas.Result, error) {
	if workspace == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	if packagePath == "" {
		return nil, faas.ErrPackagePathRequired
	}

	info, err := os.Stat(packagePath)
	if err != nil {
		return nil, fmt.Errorf("deploying package: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("deploying package %s: %w", packagePath, faas.ErrPackagePathRequired)
	}

	upload := newMultipartUpload(constants.DeployFormField, packagePath)

	headers := c.session.credentialHeaders()
	headers[constants.HeaderContentType] = upload.ContentType()

	return c.session.execute(ctx, "deploying package", &http_internal.Request{
		Method:   http.MethodPost,
		Path:     c.session.workspacePath(workspace, constants.APIPathDeploy),
		BodyFunc: upload.Open,
		Headers:  headers,
	})
}
