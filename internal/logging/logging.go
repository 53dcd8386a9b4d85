// Package logging sets up the application logger: a logrus logger writing to
// stderr and to a per-run log file, plus hooks feeding the status bar and the
// log window.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

// TimestampLayout is used for log lines and matches the info panel dates.
const TimestampLayout = "02-01-2006 15:04:05"

// fileLayout names a run's log file, log_ddmmYYYY_HHMMSS.log.
const fileLayout = "02012006_150405"

// Banner is written at the top of every log file and to stderr.
var Banner = strings.Repeat("=", 20) + "[ BEGIN LOG ]" + strings.Repeat("=", 20)

var oldLogs = glob.MustCompile("log*.log")

// Options configures Setup.
type Options struct {
	Level     logrus.Level
	Dir       string    // Directory for log files, none written when empty
	DeleteOld bool      // Remove earlier log*.log files from Dir first
	Stderr    io.Writer // Defaults to os.Stderr
	Now       func() time.Time
}

// Setup creates the application logger. The returned closer closes the log
// file and must be called on shutdown.
func Setup(opts Options) (*logrus.Logger, io.Closer, error) {
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := logrus.New()
	logger.SetLevel(opts.Level)
	logger.SetFormatter(NewFormatter())

	var closer io.Closer = nopCloser{}
	out := opts.Stderr
	var removed int
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if opts.DeleteOld {
			n, err := CleanOld(opts.Dir)
			if err != nil {
				return nil, nil, err
			}
			removed = n
		}
		path := filepath.Join(opts.Dir, FileName(opts.Now()))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = f
		out = io.MultiWriter(opts.Stderr, f)
	}

	fmt.Fprintln(out, Banner)
	logger.SetOutput(out)
	if removed > 0 {
		logger.WithField("count", removed).Debug("Deleted old log files")
	}
	return logger, closer, nil
}

// NewFormatter returns the text formatter used for every log destination.
func NewFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: TimestampLayout,
	}
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return "log_" + t.Format(fileLayout) + ".log"
}

// CleanOld removes log*.log files directly inside dir and returns how many
// were removed.
func CleanOld(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !oldLogs.Match(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to delete old log file: %w", err)
		}
		removed++
	}
	return removed, nil
}

// Discard returns a logger that drops everything, for callers without one.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
