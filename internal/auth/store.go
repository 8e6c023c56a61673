package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/ytsheet/internal/shared"
	"golang.org/x/oauth2"
)

// Store persists the credential between runs.
type Store interface {
	Load() (*oauth2.Token, error) // Load returns [shared.ErrNoCredential] when nothing has been saved yet
	Save(token *oauth2.Token) error
}

// FileStore keeps the token as JSON in a single file readable only by the owner.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the credential file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the credential file.
func (s *FileStore) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoCredential, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to decode credential %s: %w", s.path, err)
	}
	return &token, nil
}

// Save replaces the credential file atomically with mode 0600.
func (s *FileStore) Save(token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("%w: nil token", shared.ErrInvalidArgument)
	}

	data, err := shared.MarshalJSON(token, true)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	if err := shared.WriteFileAtomic(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}
