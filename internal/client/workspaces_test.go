package client_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertContentHeaders(t *testing.T, req capturedRequest) {
	t.Helper()

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, testAPIKey, req.Header.Get("API-KEY"))
	assert.Equal(t, testAPISecret, req.Header.Get("API-SECRET"))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestWorkspacesClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates workspace", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, respondWith(rec, http.StatusCreated,
			`{"name":"demo","credentials":{"api_key":"new-key","api_secret":"new-secret"},"errors":[]}`))

		result, err := client.Workspaces().Create(context.Background(), &faas.WorkspaceCreateRequest{
			Name:  "demo",
			Email: "dev@example.com",
		})
		require.NoError(t, err)
		assert.False(t, result.Failed())
		assert.Equal(t, http.StatusCreated, result.StatusCode())

		success := faas.AsSuccess(result)
		require.NotNil(t, success)

		var workspace faas.Workspace
		require.NoError(t, success.Decode(&workspace))
		require.NotNil(t, workspace.Credentials)
		assert.Equal(t, "new-key", workspace.Credentials.APIKey)
		assert.Equal(t, "new-secret", workspace.Credentials.APISecret)
		assert.Equal(t, "application/json", success.Headers.Get("Content-Type"))

		requests := rec.all()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodPost, requests[0].Method)
		assert.Equal(t, "/v2/workspaces", requests[0].Path)
		assertContentHeaders(t, requests[0])

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(requests[0].Body, &body))
		assert.Equal(t, map[string]interface{}{"name": "demo", "email": "dev@example.com"}, body)
	})

	t.Run("soft errors", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, respondWith(rec, http.StatusOK, `{"errors":["name taken"]}`))

		result, err := client.Workspaces().Create(context.Background(), &faas.WorkspaceCreateRequest{Name: "demo"})
		require.NoError(t, err)
		assert.True(t, result.Failed())
		assert.Equal(t, []string{"name taken"}, result.ErrorMessages())
		assert.NotNil(t, faas.AsSuccess(result))
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, respondWith(rec, http.StatusConflict, `{"error":"Workspace already exists"}`))

		result, err := client.Workspaces().Create(context.Background(), &faas.WorkspaceCreateRequest{Name: "demo"})
		require.NoError(t, err)
		assert.Equal(t, []string{"(409) Conflict - Workspace already exists"}, result.ErrorMessages())
	})

	t.Run("validates request", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.NotFoundHandler())

		_, err := client.Workspaces().Create(context.Background(), nil)
		require.ErrorIs(t, err, faas.ErrCreateRequestRequired)

		_, err = client.Workspaces().Create(context.Background(), &faas.WorkspaceCreateRequest{})
		require.ErrorIs(t, err, faas.ErrWorkspaceNameRequired)
	})
}

func TestWorkspacesClient_Destroy(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	client := newTestClient(t, respondWith(rec, http.StatusOK, ``))

	result, err := client.Workspaces().Destroy(context.Background(), "demo")
	require.NoError(t, err)
	assert.False(t, result.Failed())

	success := faas.AsSuccess(result)
	require.NotNil(t, success)
	assert.Nil(t, success.Body)

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodDelete, requests[0].Method)
	assert.Equal(t, "/v2/workspaces/demo", requests[0].Path)
	assertContentHeaders(t, requests[0])
	assert.Empty(t, requests[0].Body)

	_, err = client.Workspaces().Destroy(context.Background(), "")
	require.ErrorIs(t, err, faas.ErrWorkspaceNameRequired)
}

func TestWorkspacesClient_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		messages []string
	}{
		{"found", http.StatusOK, `{"name":"demo","functions":[{"name":"hello"}]}`, []string{}},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad credentials"}`, []string{"(401) Unauthorized - bad credentials"}},
		{"not found", http.StatusNotFound, `{"error":"Workspace 'demo' not found"}`, []string{"(404) Not Found - Workspace 'demo' not found"}},
		{"server error", http.StatusInternalServerError, `<html>oops</html>`, []string{"(500) Error"}},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			client := newTestClient(t, respondWith(rec, testCase.status, testCase.body))

			result, err := client.Workspaces().Get(context.Background(), "demo")
			require.NoError(t, err)
			assert.Equal(t, testCase.status, result.StatusCode())
			assert.Equal(t, testCase.messages, result.ErrorMessages())

			requests := rec.all()
			require.Len(t, requests, 1)
			assert.Equal(t, http.MethodGet, requests[0].Method)
			assert.Equal(t, "/v2/workspaces/demo", requests[0].Path)
			assertContentHeaders(t, requests[0])
		})
	}
}

func TestWorkspacesClient_RefreshCredentials(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	client := newTestClient(t, respondWith(rec, http.StatusOK,
		`{"name":"demo","credentials":{"api_key":"k2","api_secret":"s2"}}`))

	result, err := client.Workspaces().RefreshCredentials(context.Background(), "demo")
	require.NoError(t, err)
	assert.False(t, result.Failed())

	requests := rec.all()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, "/v2/workspaces/demo/credentials", requests[0].Path)
	assert.Equal(t, testAPIKey, requests[0].Header.Get("API-KEY"))
	assert.Equal(t, testAPISecret, requests[0].Header.Get("API-SECRET"))
	assert.Empty(t, requests[0].Header.Get("Accept"))
	assert.Empty(t, requests[0].Body)
}

func writePackage(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "package.zip")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestWorkspacesClient_Deploy(t *testing.T) {
	t.Parallel()

	t.Run("uploads package as multipart", func(t *testing.T) {
		t.Parallel()

		packagePath := writePackage(t, "PK-zip-bytes")

		rec := &recorder{}
		client := newTestClient(t, respondWith(rec, http.StatusOK, `{"errors":[]}`))

		result, err := client.Workspaces().Deploy(context.Background(), "demo", packagePath)
		require.NoError(t, err)
		assert.False(t, result.Failed())

		requests := rec.all()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodPost, requests[0].Method)
		assert.Equal(t, "/v2/workspaces/demo/deploy", requests[0].Path)
		assert.Equal(t, testAPIKey, requests[0].Header.Get("API-KEY"))
		assert.Empty(t, requests[0].Header.Get("Accept"))

		mediaType, params, err := mime.ParseMediaType(requests[0].Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		reader := multipart.NewReader(strings.NewReader(string(requests[0].Body)), params["boundary"])
		part, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "package", part.FormName())
		assert.Equal(t, "package.zip", part.FileName())

		contents, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, "PK-zip-bytes", string(contents))
	})

	t.Run("replays package after redirect", func(t *testing.T) {
		t.Parallel()

		packagePath := writePackage(t, "payload")

		rec := &recorder{}
		mux := http.NewServeMux()
		mux.HandleFunc("/v2/workspaces/demo/deploy", func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			w.Header().Set("Location", "/v2/workspaces/demo/deploy-here")
			w.WriteHeader(http.StatusTemporaryRedirect)
		})
		mux.HandleFunc("/v2/workspaces/demo/deploy-here", respondWith(rec, http.StatusOK, `{}`))

		client := newTestClient(t, mux)

		_, err := client.Workspaces().Deploy(context.Background(), "demo", packagePath)
		require.NoError(t, err)

		requests := rec.all()
		require.Len(t, requests, 2)
		assert.Equal(t, requests[0].Header.Get("Content-Type"), requests[1].Header.Get("Content-Type"))
		assert.Equal(t, requests[0].Body, requests[1].Body)
		assert.Contains(t, string(requests[1].Body), "payload")
	})

	t.Run("limit exceeded", func(t *testing.T) {
		t.Parallel()

		packagePath := writePackage(t, "payload")

		rec := &recorder{}
		client := newTestClient(t, respondWith(rec, http.StatusPaymentRequired, `{"error":"function limit reached"}`))

		result, err := client.Workspaces().Deploy(context.Background(), "demo", packagePath)
		require.NoError(t, err)
		assert.Equal(t, []string{"(402) Limit Exceeded - function limit reached"}, result.ErrorMessages())
	})

	t.Run("validates arguments", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.NotFoundHandler())

		_, err := client.Workspaces().Deploy(context.Background(), "", "package.zip")
		require.ErrorIs(t, err, faas.ErrWorkspaceNameRequired)

		_, err = client.Workspaces().Deploy(context.Background(), "demo", "")
		require.ErrorIs(t, err, faas.ErrPackagePathRequired)

		_, err = client.Workspaces().Deploy(context.Background(), "demo", filepath.Join(t.TempDir(), "missing.zip"))
		require.ErrorIs(t, err, os.ErrNotExist)

		_, err = client.Workspaces().Deploy(context.Background(), "demo", t.TempDir())
		require.ErrorIs(t, err, faas.ErrPackagePathRequired)
	})
}
