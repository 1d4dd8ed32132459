package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	http_internal "github.com/fivetwenty-io/faas-client/internal/http"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// FunctionsClient implements the faas.FunctionsClient interface.
type FunctionsClient struct {
	session *session
}

// NewFunctionsClient creates a new FunctionsClient.
func NewFunctionsClient(session *session) *FunctionsClient {
	return &FunctionsClient{
		session: session,
	}
}

func (c *FunctionsClient) functionPath(function, workspace string) string {
	return c.session.workspacePath(workspace, constants.APIPathFunctions, "/"+url.PathEscape(function))
}

// Delete removes a function from a workspace.
func (c *FunctionsClient) Delete(ctx context.Context, function, workspace string) (faas.Result, error) {
	if function == "" {
		return nil, faas.ErrFunctionNameRequired
	}

	if workspace == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	return c.session.execute(ctx, "deleting function", &http_internal.Request{
		Method:  http.MethodDelete,
		Path:    c.functionPath(function, workspace),
		Headers: c.session.contentHeaders(),
	})
}

// UpdateContext replaces the context data of a function. The payload string
// is sent as a JSON string, so a JSON document arrives encoded twice.
func (c *FunctionsClient) UpdateContext(ctx context.Context, function, workspace, payload string) (faas.Result, error) {
	if function == "" {
		return nil, faas.ErrFunctionNameRequired
	}

	if workspace == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding context: %w", err)
	}

	return c.session.execute(ctx, "updating function context", &http_internal.Request{
		Method:  http.MethodPatch,
		Path:    c.functionPath(function, workspace),
		RawBody: encoded,
		Headers: c.session.contentHeaders(),
	})
}

// Run invokes a function and returns its response untouched, whatever the
// status. Only redirects are followed. When the redirect bound is hit the
// last response is returned together with the error.
func (c *FunctionsClient) Run(ctx context.Context, request *faas.RunRequest) (*faas.RunResponse, error) {
	if request == nil {
		return nil, faas.ErrRunRequestRequired
	}

	if request.Workspace == "" {
		return nil, faas.ErrWorkspaceNameRequired
	}

	if request.Function == "" {
		return nil, faas.ErrFunctionNameRequired
	}

	method := strings.ToUpper(request.Method)
	if method == "" {
		method = http.MethodGet
	}

	headers := make(map[string]string, len(request.Headers)+1)
	for key, value := range request.Headers {
		headers[key] = value
	}

	if request.Time {
		headers[constants.HeaderBenchmark] = constants.BooleanTrue
	}

	req := &http_internal.Request{
		Method:   method,
		Path:     "/" + url.PathEscape(request.Workspace) + "/" + url.PathEscape(request.Function),
		RawQuery: request.Query,
		Headers:  headers,
	}

	if method != http.MethodGet && request.Payload != nil {
		req.RawBody = request.Payload
	}

	resp, err := c.session.httpClient.Do(ctx, req)
	if resp == nil {
		return nil, fmt.Errorf("running function: %w", err)
	}

	runResponse := &faas.RunResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}

	if err != nil {
		return runResponse, fmt.Errorf("running function: %w", err)
	}

	return runResponse, nil
}
