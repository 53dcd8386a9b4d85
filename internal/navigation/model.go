// Package navigation keeps the displayed image, the image list of its
// directory and the position within that list consistent while the user opens
// images and folders and pages through them.
//
// A Model is owned by the UI goroutine. None of its methods are safe for
// concurrent use.
package navigation

import (
	"fmt"
	"io"
	"path/filepath"

	"ascentviewer/internal/scan"

	"github.com/sirupsen/logrus"
)

// Lister returns the ordered image list of a directory.
type Lister interface {
	List(dir string) ([]string, error)
}

// ImageNotInListError is returned when an image to open is missing from the
// image list of its directory, either because its extension is not supported
// or because the list is stale.
type ImageNotInListError struct {
	Path      string
	Directory string
}

func (e *ImageNotInListError) Error() string {
	return fmt.Sprintf("image %s is not in the image list of %s", e.Path, e.Directory)
}

// Change describes what an operation did to the model.
type Change int

const (
	// Unchanged means nothing happened: a cancelled pick or a reopened directory.
	Unchanged Change = iota
	// Reindexed means the current image moved within the existing list.
	Reindexed
	// Rebuilt means the directory was scanned and the list replaced.
	Rebuilt
	// EmptyDirectory means a scan found no images; the model kept its state.
	EmptyDirectory
)

func (c Change) String() string {
	switch c {
	case Unchanged:
		return "unchanged"
	case Reindexed:
		return "reindexed"
	case Rebuilt:
		return "rebuilt"
	case EmptyDirectory:
		return "empty directory"
	}
	return fmt.Sprintf("Change(%d)", int(c))
}

// Model is the directory navigation state.
type Model struct {
	lister Lister
	logger logrus.FieldLogger

	dir     string
	images  []string
	index   int
	current string
}

// NewModel creates an empty model that builds image lists with lister.
func NewModel(lister Lister, logger logrus.FieldLogger) *Model {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Model{lister: lister, logger: logger}
}

// Directory returns the directory the image list was built from.
func (m *Model) Directory() string { return m.dir }

// Current returns the displayed image path, or "" before any open succeeded.
func (m *Model) Current() string { return m.current }

// Index returns the position of the displayed image in the list.
func (m *Model) Index() int { return m.index }

// Len returns the number of images in the list.
func (m *Model) Len() int { return len(m.images) }

// Images returns a copy of the image list.
func (m *Model) Images() []string {
	images := make([]string, len(m.images))
	copy(images, m.images)
	return images
}

// CanNavigate reports whether previous/next are available.
func (m *Model) CanNavigate() bool { return len(m.images) > 0 }

// Position returns the 1-based position of the displayed image and the list
// length, or 0, 0 when the list is empty.
func (m *Model) Position() (int, int) {
	if len(m.images) == 0 {
		return 0, 0
	}
	return m.index + 1, len(m.images)
}

// OpenImage displays path. Its directory is scanned only when it differs from
// the current one; otherwise path is looked up in the existing list. An empty
// path is a cancelled pick and changes nothing. On error the model is left as
// it was.
func (m *Model) OpenImage(path string) (Change, error) {
	if path == "" {
		m.logger.Info("No image selected")
		return Unchanged, nil
	}
	path = scan.Normalize(path)
	dir := scan.Normalize(filepath.Dir(path))
	log := m.logger.WithFields(logrus.Fields{"image": path, "directory": dir, "previous": m.dir})

	if m.dir != "" && dir == m.dir {
		index := indexOf(m.images, path)
		if index < 0 {
			return Unchanged, &ImageNotInListError{Path: path, Directory: dir}
		}
		log.Debug("Same directory, reusing image list")
		m.index = index
		m.current = path
		return Reindexed, nil
	}

	images, err := m.lister.List(dir)
	if err != nil {
		return Unchanged, err
	}
	index := indexOf(images, path)
	if index < 0 {
		return Unchanged, &ImageNotInListError{Path: path, Directory: dir}
	}
	log.WithField("count", len(images)).Debug("Directory changed, rebuilt image list")
	m.dir = dir
	m.images = images
	m.index = index
	m.current = path
	return Rebuilt, nil
}

// OpenDirectory builds the image list of dir and displays its first image.
// Reopening the current directory is a no-op; use Reload to rescan it. A
// directory without images leaves the model untouched and reports
// EmptyDirectory.
func (m *Model) OpenDirectory(dir string) (Change, error) {
	if dir == "" {
		m.logger.Info("No directory selected")
		return Unchanged, nil
	}
	dir = scan.Normalize(dir)
	log := m.logger.WithFields(logrus.Fields{"directory": dir, "previous": m.dir})

	if m.dir != "" && dir == m.dir {
		log.Debug("Same directory, not rebuilding image list")
		return Unchanged, nil
	}

	images, err := m.lister.List(dir)
	if err != nil {
		return Unchanged, err
	}
	if len(images) == 0 {
		log.Info("Directory has no images")
		return EmptyDirectory, nil
	}
	log.WithField("count", len(images)).Debug("Rebuilt image list")
	m.dir = dir
	m.images = images
	m.index = 0
	m.current = images[0]
	return Rebuilt, nil
}

// Reload rescans the current directory. The displayed image stays selected
// when it still exists; otherwise the position is kept within the new list.
func (m *Model) Reload() (Change, error) {
	if m.dir == "" {
		return Unchanged, nil
	}
	images, err := m.lister.List(m.dir)
	if err != nil {
		return Unchanged, err
	}
	if len(images) == 0 {
		m.logger.WithField("directory", m.dir).Warn("Directory no longer has images")
		return EmptyDirectory, nil
	}
	index := indexOf(images, m.current)
	if index < 0 {
		index = min(m.index, len(images)-1)
	}
	m.images = images
	m.index = index
	m.current = images[index]
	m.logger.WithFields(logrus.Fields{"directory": m.dir, "count": len(images)}).Debug("Reloaded image list")
	return Rebuilt, nil
}

// Next shows the following image, wrapping to the first one. It reports false
// when the list is empty.
func (m *Model) Next() bool {
	if len(m.images) == 0 {
		return false
	}
	return m.moveTo((m.index + 1) % len(m.images))
}

// Previous shows the preceding image, wrapping to the last one. It reports
// false when the list is empty.
func (m *Model) Previous() bool {
	if len(m.images) == 0 {
		return false
	}
	return m.moveTo((m.index - 1 + len(m.images)) % len(m.images))
}

// First shows the first image of the list.
func (m *Model) First() bool {
	if len(m.images) == 0 {
		return false
	}
	return m.moveTo(0)
}

// Last shows the last image of the list.
func (m *Model) Last() bool {
	if len(m.images) == 0 {
		return false
	}
	return m.moveTo(len(m.images) - 1)
}

// Skip moves n images forward (or backward for negative n), stopping at
// either end of the list instead of wrapping.
func (m *Model) Skip(n int) bool {
	if len(m.images) == 0 {
		return false
	}
	return m.moveTo(max(0, min(m.index+n, len(m.images)-1)))
}

func (m *Model) moveTo(index int) bool {
	m.logger.WithFields(logrus.Fields{"from": m.index, "to": index}).Debug("Navigating")
	m.index = index
	m.current = m.images[index]
	return true
}

func indexOf(images []string, path string) int {
	for i, p := range images {
		if p == path {
			return i
		}
	}
	return -1
}
