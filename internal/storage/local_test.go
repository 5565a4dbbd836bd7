package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveGeneratesNameAndWritesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/images")
	require.NoError(t, err)

	name, err := s.Save("ids", "id_image", "passport.JPG", strings.NewReader("image bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "ids/id_image-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
	assert.Equal(t, "/images/"+name, s.URL(name))
}

func TestSaveUnknownExtensionFallsBack(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	name, err := s.Save("ids", "holder_image", "shady.exe", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".bin"))
}

func TestRemoveMissingFileIsNoop(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)
	assert.NoError(t, s.Remove("ids/never-existed.jpg"))
}
