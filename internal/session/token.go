package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore owns the persisted bearer token. The session is always
// re-derived from the token, never the reverse.
type TokenStore interface {
	Token() string
	Set(token string) error
	Purge() error
}

// FileTokens persists the token as a single file, the way the rest of the
// CLI's state lives under the paydesk home directory. The PAYDESK_TOKEN
// environment variable takes precedence over the file.
type FileTokens struct {
	path string
}

// NewFileTokens creates a token store backed by the file at path.
func NewFileTokens(path string) *FileTokens {
	return &FileTokens{path: path}
}

// Token returns the token using precedence: env var > file > empty.
func (f *FileTokens) Token() string {
	if tok := os.Getenv("PAYDESK_TOKEN"); tok != "" {
		return tok
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Set writes the token with owner-only permissions.
func (f *FileTokens) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Purge removes the stored token. A missing file is not an error.
func (f *FileTokens) Purge() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
