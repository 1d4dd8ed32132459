//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIHost  string
	FaasPath string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIHost:  os.Getenv("FAAS_INTEGRATION_API_HOST"),
		FaasPath: getFaasPath(),
		Verbose:  os.Getenv("FAAS_VERBOSE") == "true",
	}
}

// getFaasPath determines the path to the faas binary
func getFaasPath() string {
	if path := os.Getenv("FAAS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../faas",
		"./faas",
		"../faas",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "faas"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIHost == "" {
		t.Skip("FAAS_INTEGRATION_API_HOST not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.FaasPath); err != nil {
		t.Skipf("faas binary not found at %s, skipping integration test", config.FaasPath)
	}
}

// CommandRunner runs the faas binary against an isolated home directory.
type CommandRunner struct {
	config *TestConfig
	home   string
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config: config,
		home:   t.TempDir(),
		t:      t,
	}
}

// Run executes a faas command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a faas command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.FaasPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)
	cmd.Env = append(os.Environ(),
		"HOME="+runner.home,
		"FAAS_API_HOST="+runner.config.APIHost,
		"FAAS_NO_COLOR=true",
	)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.FaasPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// FunctionDir writes a minimal function with its manifest and returns the directory.
func (runner *CommandRunner) FunctionDir(name string) string {
	runner.t.Helper()

	dir := filepath.Join(runner.t.TempDir(), name)
	require.NoError(runner.t, os.MkdirAll(dir, 0o750))

	manifest := "name: " + name + "\nruntime: ruby:2.5\n"
	require.NoError(runner.t, os.WriteFile(filepath.Join(dir, "function.yml"), []byte(manifest), 0o600))

	handler := "def handler(event)\n  render text: 'hello'\nend\n"
	require.NoError(runner.t, os.WriteFile(filepath.Join(dir, "handler.rb"), []byte(handler), 0o600))

	return dir
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// CleanupWorkspace attempts to destroy a test workspace
func (runner *CommandRunner) CleanupWorkspace(name string) {
	stdout, stderr, err := runner.Run("destroy-workspace", name, "--yes")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for workspace %s: %s\nStderr: %s", name, stdout, stderr)
	}
}
