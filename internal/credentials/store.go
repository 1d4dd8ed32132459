// Package credentials persists workspace key pairs in a YAML file.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of the credentials file.
type File struct {
	Workspaces map[string]faas.Credentials `json:"workspaces" yaml:"workspaces"`
}

// Store holds the credentials of every known workspace.
type Store struct {
	mutex sync.Mutex
	path  string
	file  File
}

// DefaultPath returns $HOME/.faas/credentials.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", constants.ErrNoHomeDirectory, err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.CredentialsFileName), nil
}

// Load reads the credentials file at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	store := &Store{
		path: path,
		file: File{Workspaces: map[string]faas.Credentials{}},
	}

	// path comes from the user's own configuration
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	err = yaml.Unmarshal(data, &store.file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}

	if store.file.Workspaces == nil {
		store.file.Workspaces = map[string]faas.Credentials{}
	}

	return store, nil
}

// Path returns the file the store reads from and saves to.
func (s *Store) Path() string {
	return s.path
}

// Get returns the credentials of a workspace.
func (s *Store) Get(workspace string) (faas.Credentials, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	creds, ok := s.file.Workspaces[workspace]

	return creds, ok
}

// Set records the credentials of a workspace. Call Save to persist them.
func (s *Store) Set(workspace string, creds faas.Credentials) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.file.Workspaces[workspace] = creds
}

// Delete forgets a workspace. It reports whether the workspace was known.
func (s *Store) Delete(workspace string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, ok := s.file.Workspaces[workspace]
	delete(s.file.Workspaces, workspace)

	return ok
}

// Workspaces returns the known workspace names, sorted.
func (s *Store) Workspaces() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	names := make([]string, 0, len(s.file.Workspaces))
	for name := range s.file.Workspaces {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Save writes the store to disk with owner-only permissions.
func (s *Store) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := os.MkdirAll(filepath.Dir(s.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := yaml.Marshal(&s.file)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials to YAML: %w", err)
	}

	err = os.WriteFile(s.path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}
