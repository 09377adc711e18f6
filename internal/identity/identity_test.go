package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	id, err := Static("abc").CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = Static("").CurrentUserID()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestFileProvider_MintsOnceAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids", "user")
	p := FileProvider{Path: path}

	first, err := p.CurrentUserID()
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err)

	second, err := p.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFileProvider_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user")
	require.NoError(t, os.WriteFile(path, []byte("nem-uuid"), 0o600))

	_, err := FileProvider{Path: path}.CurrentUserID()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
