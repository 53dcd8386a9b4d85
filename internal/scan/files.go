// Package scan lists the image files of a single directory.
package scan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

// Extensions is the fixed set of extensions a directory scan collects, in the
// order their patterns are matched.
var Extensions = []string{"png", "jpg", "jpeg", "bmp", "gif"}

// Scanner builds the image list of a directory.
type Scanner struct {
	patterns   []glob.Glob
	ignoreCase bool
	logger     logrus.FieldLogger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithIgnoreCase makes the extension patterns match regardless of case, so
// IMG_01.JPG is listed too. By default only lowercase extensions match.
func WithIgnoreCase() Option {
	return func(s *Scanner) { s.ignoreCase = true }
}

// NewScanner creates a Scanner. A nil logger discards scan logs.
func NewScanner(logger logrus.FieldLogger, opts ...Option) *Scanner {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	s := &Scanner{logger: logger}
	for _, ext := range Extensions {
		s.patterns = append(s.patterns, glob.MustCompile("*."+ext))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetIgnoreCase changes extension case handling for later scans.
func (s *Scanner) SetIgnoreCase(ignore bool) {
	s.ignoreCase = ignore
}

// List returns the image files directly inside dir. Matches of every pattern
// are concatenated, normalized to forward slashes and sorted case-insensitively
// with a stable sort, so paths differing only in case keep their match order.
func (s *Scanner) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, pattern := range s.patterns {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			candidate := name
			if s.ignoreCase {
				candidate = strings.ToLower(name)
			}
			if pattern.Match(candidate) {
				paths = append(paths, Normalize(filepath.Join(dir, name)))
			}
		}
	}
	SortPaths(paths)

	s.logger.WithFields(logrus.Fields{"directory": dir, "count": len(paths)}).Debug("Scanned directory")
	return paths, nil
}

// SortPaths sorts paths case-insensitively in place, keeping the relative order
// of entries that compare equal.
func SortPaths(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return strings.ToLower(paths[i]) < strings.ToLower(paths[j])
	})
}

// Normalize cleans p and converts its separators to forward slashes.
func Normalize(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// IsImage reports whether name carries one of the supported extensions,
// ignoring case.
func IsImage(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
