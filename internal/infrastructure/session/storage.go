package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists credentials between process runs. It replaces the
// browser-local storage of the original web client.
type Storage interface {
	// Load returns the stored credentials, or nil if none are stored
	Load() (*Credentials, error)
	// Save persists the credentials
	Save(creds *Credentials) error
	// Clear removes any stored credentials
	Clear() error
}

// FileStorage stores credentials as JSON in a single file
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at the given path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads credentials from disk. A missing file is not an error.
func (s *FileStorage) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		// A corrupt session file is treated as no session
		return nil, nil
	}
	if creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

// Save writes credentials to disk with owner-only permissions
func (s *FileStorage) Save(creds *Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *FileStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemoryStorage keeps credentials in memory only. Used in tests and for
// one-shot invocations that must not persist a session.
type MemoryStorage struct {
	creds *Credentials
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored credentials, or nil
func (s *MemoryStorage) Load() (*Credentials, error) {
	return s.creds, nil
}

// Save stores the credentials
func (s *MemoryStorage) Save(creds *Credentials) error {
	s.creds = creds
	return nil
}

// Clear removes the credentials
func (s *MemoryStorage) Clear() error {
	s.creds = nil
	return nil
}
