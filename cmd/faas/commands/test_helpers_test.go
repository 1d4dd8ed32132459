package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/fivetwenty-io/faas-client/internal/credentials"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// apiRequest is what the fake platform saw of one request.
type apiRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeAPI answers every request with a fixed status and body.
type fakeAPI struct {
	mu       sync.Mutex
	requests []apiRequest
	status   int
	body     string
	server   *httptest.Server
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()

	api := &fakeAPI{status: status, body: body}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)

		api.mu.Lock()
		api.requests = append(api.requests, apiRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   data,
		})
		api.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(api.status)
		_, _ = io.WriteString(w, api.body)
	}))
	t.Cleanup(api.server.Close)

	return api
}

func (a *fakeAPI) all() []apiRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]apiRequest(nil), a.requests...)
}

// setupConfig resets viper to defaults pointing at apiHost with a temporary
// credentials file, and returns that file's path.
func setupConfig(t *testing.T, apiHost string) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	credsPath := filepath.Join(t.TempDir(), "credentials.yml")

	viper.Set(KeyAPIHost, apiHost)
	viper.Set(KeyCredentialsFile, credsPath)
	viper.Set(KeyLogLevel, "error")

	color.NoColor = true

	return credsPath
}

func storeCredentials(t *testing.T, path, workspace string, creds faas.Credentials) {
	t.Helper()

	store, err := credentials.Load(path)
	require.NoError(t, err)

	store.Set(workspace, creds)
	require.NoError(t, store.Save())
}

func loadStored(t *testing.T, path, workspace string) (faas.Credentials, bool) {
	t.Helper()

	store, err := credentials.Load(path)
	require.NoError(t, err)

	return store.Get(workspace)
}

// functionDir creates a function directory with a manifest.
func functionDir(t *testing.T, manifest string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "function.yml"), []byte(manifest), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "handler.rb"), []byte("def handler(event); end\n"), 0o600))

	return dir
}

// execute runs cmd standalone and returns what it wrote to stdout.
func execute(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}
