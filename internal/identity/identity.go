// Package identity supplies the current user id. The id is an opaque
// GUID; in the single-user desktop setup it lives in a local file and is
// minted on first use.
package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnauthenticated is returned when no user identity is available.
var ErrUnauthenticated = errors.New("unauthenticated")

// Provider yields the current user id.
type Provider interface {
	CurrentUserID() (string, error)
}

// Static returns a fixed id. Test use.
type Static string

// CurrentUserID returns the fixed id or ErrUnauthenticated when empty.
func (s Static) CurrentUserID() (string, error) {
	if s == "" {
		return "", ErrUnauthenticated
	}
	return string(s), nil
}

// FileProvider persists a generated user id next to the database so the
// same local user keeps one identity across runs.
type FileProvider struct {
	Path string
}

// CurrentUserID reads the stored id, minting and persisting a new one on
// first use. A present but unreadable or corrupt id file means no
// identity, never a silently regenerated one.
func (f FileProvider) CurrentUserID() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if _, parseErr := uuid.Parse(id); parseErr != nil {
			return "", fmt.Errorf("%w: corrupt identity file %s", ErrUnauthenticated, f.Path)
		}
		return id, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if err := os.WriteFile(f.Path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return id, nil
}
