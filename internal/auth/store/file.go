package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fivetwenty-io/dwolla-client/internal/constants"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"gopkg.in/yaml.v3"
)

// File saves the token as YAML in a file readable only by the owner.
type File struct {
	path  string
	mutex sync.Mutex
}

// NewFile creates a file store at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file the store writes to.
func (f *File) Path() string {
	return f.path
}

// Load implements dwolla.TokenStore. A missing file means no saved token.
func (f *File) Load(_ context.Context) (*dwolla.Token, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil //nolint:nilnil // nothing saved yet
	}

	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var token dwolla.Token

	err = yaml.Unmarshal(data, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", f.path, err)
	}

	return &token, nil
}

// Save implements dwolla.TokenStore.
func (f *File) Save(_ context.Context, token dwolla.Token) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	data, err := yaml.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(f.path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	err = os.WriteFile(f.path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// Clear removes the saved token.
func (f *File) Clear() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}

	return nil
}
