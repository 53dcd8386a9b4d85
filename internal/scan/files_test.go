package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func expected(dir string, names ...string) []string {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = Normalize(filepath.Join(dir, name))
	}
	return paths
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"image.PNG", true},
		{"image.jpg", true},
		{"image.jpeg", true},
		{"image.gif", true},
		{"image.bmp", true},
		{"image.webp", false},
		{"image.txt", false},
		{"image", false},
		{".jpeg", true},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, IsImage(test.name), "IsImage(%s)", test.name)
	}
}

func TestListSortsCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "B.png", "a.png", "C.jpg")

	paths, err := NewScanner(nil).List(dir)
	require.NoError(t, err)
	assert.Equal(t, expected(dir, "a.png", "B.png", "C.jpg"), paths)
}

func TestListSortsAcrossExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "cat.png", "dog.jpg", "bird.gif", "eel.bmp", "ant.jpeg")

	paths, err := NewScanner(nil).List(dir)
	require.NoError(t, err)
	assert.Equal(t, expected(dir, "ant.jpeg", "bird.gif", "cat.png", "dog.jpg", "eel.bmp"), paths)
}

func TestListFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt", "photo.png", "clip.webp", "archive.png.zip")

	paths, err := NewScanner(nil).List(dir)
	require.NoError(t, err)
	assert.Equal(t, expected(dir, "photo.png"), paths)
}

func TestListSkipsHiddenFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, ".hidden.png", "shown.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.jpg"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	touch(t, filepath.Join(dir, "sub"), "nested.png")

	paths, err := NewScanner(nil).List(dir)
	require.NoError(t, err)
	assert.Equal(t, expected(dir, "shown.png"), paths)
}

func TestListExtensionCase(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "upper.PNG", "lower.png", "Mixed.JpG")

	t.Run("lowercase patterns only", func(t *testing.T) {
		paths, err := NewScanner(nil).List(dir)
		require.NoError(t, err)
		assert.Equal(t, expected(dir, "lower.png"), paths)
	})

	t.Run("ignore case", func(t *testing.T) {
		paths, err := NewScanner(nil, WithIgnoreCase()).List(dir)
		require.NoError(t, err)
		assert.Equal(t, expected(dir, "lower.png", "Mixed.JpG", "upper.PNG"), paths)
	})

	t.Run("toggled later", func(t *testing.T) {
		s := NewScanner(nil)
		s.SetIgnoreCase(true)
		paths, err := s.List(dir)
		require.NoError(t, err)
		assert.Len(t, paths, 3)
	})
}

func TestListEmptyDirectory(t *testing.T) {
	paths, err := NewScanner(nil).List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestListMissingDirectory(t *testing.T) {
	_, err := NewScanner(nil).List(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSortPathsIsStable(t *testing.T) {
	paths := []string{"/d/b.png", "/d/A.png", "/d/a.png", "/d/C.gif"}
	SortPaths(paths)
	assert.Equal(t, []string{"/d/A.png", "/d/a.png", "/d/b.png", "/d/C.gif"}, paths)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/pics/cat.png", Normalize("/pics//cat.png"))
	assert.Equal(t, "/pics", Normalize("/pics/"))
	assert.Equal(t, "/pics/cat.png", Normalize(filepath.FromSlash("/pics/sub/../cat.png")))
}
