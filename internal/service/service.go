package service

import (
	"fmt"
	"image"
	"io"
	"sort"
	"strings"

	"ascentviewer/internal/navigation"
	"ascentviewer/internal/scan"

	"github.com/sirupsen/logrus"
)

// DirectoryLister abstracts directory scanning.
type DirectoryLister interface {
	List(dir string) ([]string, error)
}

// ImageInspector abstracts image decoding and metadata extraction.
type ImageInspector interface {
	GetImageInfo(path string) (*ImageInfo, image.Image, error)
	Preview(img image.Image) image.Image
}

// Service is the main entry point for business logic shared by the GUI and
// the CLI.
type Service struct {
	Lister DirectoryLister
	Images ImageInspector
	Logger logrus.FieldLogger
}

// NewService constructs a new Service. A nil logger discards service logs.
func NewService(lister DirectoryLister, images ImageInspector, logger logrus.FieldLogger) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Service{Lister: lister, Images: images, Logger: logger}
}

// NewDefaultService wires the directory scanner and the image service.
func NewDefaultService(logger logrus.FieldLogger, ignoreCase bool) *Service {
	var opts []scan.Option
	if ignoreCase {
		opts = append(opts, scan.WithIgnoreCase())
	}
	return NewService(scan.NewScanner(logger, opts...), NewImageService(), logger)
}

// NewModel returns an empty navigation model backed by the service's lister.
func (s *Service) NewModel() *navigation.Model {
	return navigation.NewModel(s.Lister, s.Logger)
}

// ListImages returns the ordered image list of dir.
func (s *Service) ListImages(dir string) ([]string, error) {
	return s.Lister.List(dir)
}

// Describe loads the image at path and returns its metadata, the full image
// and a preview bounded by PreviewSize.
func (s *Service) Describe(path string) (*ImageInfo, image.Image, image.Image, error) {
	info, img, err := s.Images.GetImageInfo(path)
	if err != nil {
		s.Logger.WithError(err).WithField("image", path).Warn("Could not load image")
		return nil, nil, nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"image":      path,
		"dimensions": info.Dimensions(),
		"format":     info.Format,
	}).Debug("Loaded image")
	return info, img, s.Images.Preview(img), nil
}

// Details renders the text placed on the clipboard by "Copy details": the file
// name, a blank line, then the modification date and the dimensions.
func Details(info *ImageInfo) string {
	return fmt.Sprintf("%s\n\nDate modified: %s\nDimensions: %s", info.Name, info.DateModified(), info.Dimensions())
}

// EXIFLines renders the EXIF fields of info as "Name: value" lines in
// EXIFFields order, followed by any other field sorted by name.
func EXIFLines(info *ImageInfo) []string {
	var lines []string
	seen := make(map[string]bool, len(info.EXIFData))
	for _, field := range EXIFFields {
		name := string(field)
		if value, ok := info.EXIFData[name]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Trim(value, `"`)))
			seen[name] = true
		}
	}
	var rest []string
	for name := range info.EXIFData {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		lines = append(lines, fmt.Sprintf("%s: %s", name, strings.Trim(info.EXIFData[name], `"`)))
	}
	return lines
}

// FormatSize renders a byte count the way file managers do.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
