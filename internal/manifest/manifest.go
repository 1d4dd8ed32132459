// Package manifest reads the function.yml file describing a function directory.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"gopkg.in/yaml.v3"
)

// Manifest is the content of function.yml.
type Manifest struct {
	Name                   string `json:"name"                                 yaml:"name"`
	Runtime                string `json:"runtime,omitempty"                    yaml:"runtime,omitempty"`
	TestCommand            string `json:"test_command,omitempty"               yaml:"test_command,omitempty"`
	AbortDeployIfTestsFail bool   `json:"abort_deploy_if_tests_fail,omitempty" yaml:"abort_deploy_if_tests_fail,omitempty"`
}

// Validate checks the fields every command relies on.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return constants.ErrFunctionNameRequired
	}

	return nil
}

// Path returns the manifest location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.ManifestFileName)
}

// Load reads and validates dir/function.yml.
func Load(dir string) (*Manifest, error) {
	path := Path(dir)

	// path is built from a directory chosen by the user
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w (looked in %s)", constants.ErrManifestNotFound, dir)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var manifest Manifest

	err := yaml.Unmarshal(data, &manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", constants.ManifestFileName, err)
	}

	err = manifest.Validate()
	if err != nil {
		return nil, err
	}

	return &manifest, nil
}
