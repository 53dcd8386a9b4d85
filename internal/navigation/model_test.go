package navigation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ascentviewer/internal/scan"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves canned directory listings and counts scans.
type fakeLister struct {
	dirs  map[string][]string
	errs  map[string]error
	calls map[string]int
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		dirs:  map[string][]string{},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeLister) List(dir string) ([]string, error) {
	f.calls[dir]++
	if err := f.errs[dir]; err != nil {
		return nil, err
	}
	images := make([]string, len(f.dirs[dir]))
	copy(images, f.dirs[dir])
	return images, nil
}

func (f *fakeLister) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func picsLister() *fakeLister {
	l := newFakeLister()
	l.dirs["/pics"] = []string{"/pics/bird.gif", "/pics/cat.png", "/pics/dog.jpg"}
	l.dirs["/other"] = []string{"/other/a.png", "/other/b.png"}
	l.dirs["/empty"] = nil
	return l
}

func assertConsistent(t *testing.T, m *Model) {
	t.Helper()
	images := m.Images()
	require.NotEmpty(t, images)
	assert.Equal(t, images[m.Index()], m.Current())
	assert.Equal(t, m.Directory(), filepath.ToSlash(filepath.Dir(m.Current())))
}

func TestNewModelIsEmpty(t *testing.T) {
	m := NewModel(picsLister(), nil)
	assert.Equal(t, "", m.Directory())
	assert.Equal(t, "", m.Current())
	assert.Empty(t, m.Images())
	assert.False(t, m.CanNavigate())
	pos, total := m.Position()
	assert.Zero(t, pos)
	assert.Zero(t, total)
}

func TestOpenDirectoryScenario(t *testing.T) {
	m := NewModel(picsLister(), nil)

	change, err := m.OpenDirectory("/pics")
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, change)
	assert.Equal(t, []string{"/pics/bird.gif", "/pics/cat.png", "/pics/dog.jpg"}, m.Images())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, "/pics/bird.gif", m.Current())

	require.True(t, m.Next())
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, "/pics/cat.png", m.Current())

	m.Next()
	m.Next()
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, "/pics/bird.gif", m.Current())
	assertConsistent(t, m)
}

func TestWraparound(t *testing.T) {
	m := NewModel(picsLister(), nil)
	_, err := m.OpenDirectory("/pics")
	require.NoError(t, err)

	require.True(t, m.Previous())
	assert.Equal(t, 2, m.Index())
	assert.Equal(t, "/pics/dog.jpg", m.Current())

	require.True(t, m.Next())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, "/pics/bird.gif", m.Current())
}

func TestNavigationNeverScans(t *testing.T) {
	lister := picsLister()
	m := NewModel(lister, nil)
	_, err := m.OpenDirectory("/pics")
	require.NoError(t, err)
	scans := lister.total()

	m.Next()
	m.Previous()
	m.Last()
	m.First()
	m.Skip(5)

	assert.Equal(t, scans, lister.total())
	assert.Equal(t, "/pics", m.Directory())
}

func TestOpenImageFirstTime(t *testing.T) {
	lister := picsLister()
	m := NewModel(lister, nil)

	change, err := m.OpenImage("/pics/cat.png")
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, change)
	assert.Equal(t, "/pics", m.Directory())
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, "/pics/cat.png", m.Current())
	assert.Equal(t, 1, lister.calls["/pics"])
	assertConsistent(t, m)
}

func TestOpenImageSameDirectoryIsIdempotent(t *testing.T) {
	lister := picsLister()
	m := NewModel(lister, nil)

	_, err := m.OpenImage("/pics/dog.jpg")
	require.NoError(t, err)
	first := m.Images()

	change, err := m.OpenImage("/pics/dog.jpg")
	require.NoError(t, err)
	assert.Equal(t, Reindexed, change)
	assert.Equal(t, first, m.Images())
	assert.Equal(t, 2, m.Index())
	assert.Equal(t, 1, lister.calls["/pics"], "same directory must not rescan")

	change, err = m.OpenImage("/pics/bird.gif")
	require.NoError(t, err)
	assert.Equal(t, Reindexed, change)
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, 1, lister.calls["/pics"])
}

func TestOpenImageDifferentDirectoryRebuilds(t *testing.T) {
	lister := picsLister()
	m := NewModel(lister, nil)
	_, err := m.OpenImage("/pics/cat.png")
	require.NoError(t, err)

	change, err := m.OpenImage("/other/b.png")
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, change)
	assert.Equal(t, "/other", m.Directory())
	assert.Equal(t, []string{"/other/a.png", "/other/b.png"}, m.Images())
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, 1, lister.calls["/other"])
	assertConsistent(t, m)
}

func TestOpenImageNotInList(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Model)
		path  string
	}{
		{"first open", func(m *Model) {}, "/pics/notes.txt"},
		{"same directory stale list", func(m *Model) { m.OpenImage("/pics/cat.png") }, "/pics/new.png"},
		{"new directory", func(m *Model) { m.OpenImage("/pics/cat.png") }, "/other/missing.png"},
		{"empty directory", func(m *Model) { m.OpenImage("/pics/cat.png") }, "/empty/ghost.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(picsLister(), nil)
			tt.setup(m)
			dir, images, index, current := m.Directory(), m.Images(), m.Index(), m.Current()

			change, err := m.OpenImage(tt.path)
			require.Error(t, err)
			assert.Equal(t, Unchanged, change)

			var notInList *ImageNotInListError
			require.True(t, errors.As(err, &notInList))
			assert.Equal(t, tt.path, notInList.Path)
			assert.Equal(t, filepath.ToSlash(filepath.Dir(tt.path)), notInList.Directory)

			assert.Equal(t, dir, m.Directory())
			assert.Equal(t, images, m.Images())
			assert.Equal(t, index, m.Index())
			assert.Equal(t, current, m.Current())
		})
	}
}

func TestScanErrorKeepsState(t *testing.T) {
	lister := picsLister()
	lister.errs["/locked"] = os.ErrPermission
	m := NewModel(lister, nil)
	_, err := m.OpenDirectory("/pics")
	require.NoError(t, err)
	m.Next()

	change, err := m.OpenDirectory("/locked")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, Unchanged, change)

	change, err = m.OpenImage("/locked/x.png")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, Unchanged, change)

	assert.Equal(t, "/pics", m.Directory())
	assert.Equal(t, "/pics/cat.png", m.Current())
	assert.Len(t, m.Images(), 3)
}

func TestOpenDirectoryChangeRebuilds(t *testing.T) {
	m := NewModel(picsLister(), nil)
	_, err := m.OpenDirectory("/pics")
	require.NoError(t, err)

	change, err := m.OpenDirectory("/other")
	require.NoError(t, err)
	assert.Equal(t, Rebuilt, change)
	assert.Equal(t, []string{"/other/a.png", "/other/b.png"}, m.Images())
	for _, p := range m.Images() {
		assert.Equal(t, "/other", filepath.ToSlash(filepath.Dir(p)))
	}
	assert.Equal(t, "/other/a.png", m.Current())
}

func TestOpenDirectorySameDirectoryIsNoop(t *testing.T) {
	lister := picsLister()
	m := NewModel(lister, nil)
	_, err := m.OpenDirectory("/pics")
	require.NoError(t, err)
	m.Next()
	lister.dirs["/pics"] = append(lister.dirs["/pics"], "/pics/zebra.png")

	change, err := m.OpenDirectory("/pics/")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, change)
	assert.Equal(t, 1, m.Index())
	assert.Len(t, m.Images(), 3, "reopening must not pick up new files")
	assert.Equal(t, 1, lister.calls["/pics"])
}

func TestOpenDirectoryAfterOpenImageInSameDirectory(t *testing.T) {
	lister := picsLister()
	m := NewModel(lister, nil)
	_, err := m.OpenImage("/pics/dog.jpg")
	require.NoError(t, err)

	change, err := m.OpenDirectory("/pics")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, change)
	assert.Equal(t, "/pics/dog.jpg", m.Current())
}

func TestOpenDirectoryEmpty(t *testing.T) {
	t.Run("before any open", func(t *testing.T) {
		m := NewModel(picsLister(), nil)
		change, err := m.OpenDirectory("/empty")
		require.NoError(t, err)
		assert.Equal(t, EmptyDirectory, change)
		assert.False(t, m.CanNavigate())
		assert.False(t, m.Next())
		assert.False(t, m.Previous())
		assert.Equal(t, "", m.Directory())
	})

	t.Run("keeps prior state", func(t *testing.T) {
		m := NewModel(picsLister(), nil)
		_, err := m.OpenDirectory("/pics")
		require.NoError(t, err)
		m.Last()

		change, err := m.OpenDirectory("/empty")
		require.NoError(t, err)
		assert.Equal(t, EmptyDirectory, change)
		assert.Equal(t, "/pics", m.Directory())
		assert.Equal(t, 2, m.Index())
		assert.Equal(t, "/pics/dog.jpg", m.Current())
		assertConsistent(t, m)
	})
}

func TestCancelledPicksAreNoops(t *testing.T) {
	lister := picsLister()
	m := NewModel(lister, nil)

	change, err := m.OpenImage("")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, change)

	change, err = m.OpenDirectory("")
	require.NoError(t, err)
	assert.Equal(t, Unchanged, change)

	assert.Zero(t, lister.total())
	assert.Equal(t, "", m.Directory())
}

func TestFirstLastSkip(t *testing.T) {
	lister := newFakeLister()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		lister.dirs["/d"] = append(lister.dirs["/d"], "/d/"+name+".png")
	}
	m := NewModel(lister, nil)
	_, err := m.OpenDirectory("/d")
	require.NoError(t, err)

	require.True(t, m.Last())
	assert.Equal(t, 4, m.Index())
	require.True(t, m.First())
	assert.Equal(t, 0, m.Index())

	m.Skip(3)
	assert.Equal(t, 3, m.Index())
	m.Skip(20)
	assert.Equal(t, 4, m.Index(), "skip clamps at the end")
	m.Skip(-20)
	assert.Equal(t, 0, m.Index(), "skip clamps at the start")
	assert.Equal(t, "/d/a.png", m.Current())

	pos, total := m.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 5, total)
}

func TestReload(t *testing.T) {
	t.Run("keeps the current image", func(t *testing.T) {
		lister := picsLister()
		m := NewModel(lister, nil)
		_, err := m.OpenImage("/pics/cat.png")
		require.NoError(t, err)
		lister.dirs["/pics"] = []string{"/pics/ant.png", "/pics/bird.gif", "/pics/cat.png", "/pics/dog.jpg"}

		change, err := m.Reload()
		require.NoError(t, err)
		assert.Equal(t, Rebuilt, change)
		assert.Equal(t, 2, m.Index())
		assert.Equal(t, "/pics/cat.png", m.Current())
		assert.Equal(t, 2, lister.calls["/pics"])
	})

	t.Run("current image removed", func(t *testing.T) {
		lister := picsLister()
		m := NewModel(lister, nil)
		_, err := m.OpenImage("/pics/dog.jpg")
		require.NoError(t, err)
		lister.dirs["/pics"] = []string{"/pics/bird.gif"}

		_, err = m.Reload()
		require.NoError(t, err)
		assert.Equal(t, 0, m.Index())
		assert.Equal(t, "/pics/bird.gif", m.Current())
		assertConsistent(t, m)
	})

	t.Run("directory emptied", func(t *testing.T) {
		lister := picsLister()
		m := NewModel(lister, nil)
		_, err := m.OpenDirectory("/pics")
		require.NoError(t, err)
		lister.dirs["/pics"] = nil

		change, err := m.Reload()
		require.NoError(t, err)
		assert.Equal(t, EmptyDirectory, change)
		assert.Len(t, m.Images(), 3)
	})

	t.Run("nothing opened", func(t *testing.T) {
		lister := picsLister()
		m := NewModel(lister, nil)
		change, err := m.Reload()
		require.NoError(t, err)
		assert.Equal(t, Unchanged, change)
		assert.Zero(t, lister.total())
	})
}

func TestImagesReturnsCopy(t *testing.T) {
	m := NewModel(picsLister(), nil)
	_, err := m.OpenDirectory("/pics")
	require.NoError(t, err)

	images := m.Images()
	images[0] = "/tampered.png"
	assert.Equal(t, "/pics/bird.gif", m.Images()[0])
}

func TestOpenLogsDecisions(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	m := NewModel(picsLister(), logger)

	_, err := m.OpenImage("/pics/cat.png")
	require.NoError(t, err)
	_, err = m.OpenImage("/pics/dog.jpg")
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Same directory, reusing image list", entry.Message)
	assert.Equal(t, "/pics", entry.Data["directory"])
}

func TestWithScanner(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cat.png", "dog.jpg", "bird.gif", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	m := NewModel(scan.NewScanner(nil), nil)

	_, err := m.OpenDirectory(dir)
	require.NoError(t, err)
	base := scan.Normalize(dir)
	assert.Equal(t, []string{base + "/bird.gif", base + "/cat.png", base + "/dog.jpg"}, m.Images())

	_, err = m.OpenImage(filepath.Join(dir, "notes.txt"))
	var notInList *ImageNotInListError
	assert.True(t, errors.As(err, &notInList))

	_, err = m.OpenImage(filepath.Join(dir, "dog.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Index())
}
