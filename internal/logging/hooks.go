package logging

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultMemorySize is the number of entries kept for the log window.
const DefaultMemorySize = 500

// MemoryHook keeps the most recent formatted entries in memory.
type MemoryHook struct {
	mu        sync.Mutex
	lines     []string
	size      int
	formatter logrus.Formatter
}

// NewMemoryHook keeps at most size entries; a non-positive size uses
// DefaultMemorySize.
func NewMemoryHook(size int) *MemoryHook {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &MemoryHook{size: size, formatter: NewFormatter()}
}

// Levels implements logrus.Hook.
func (h *MemoryHook) Levels() []logrus.Level { return logrus.AllLevels }

// Fire implements logrus.Hook.
func (h *MemoryHook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, strings.TrimRight(string(b), "\n"))
	if over := len(h.lines) - h.size; over > 0 {
		h.lines = h.lines[over:]
	}
	return nil
}

// Lines returns a copy of the kept entries, oldest first.
func (h *MemoryHook) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	lines := make([]string, len(h.lines))
	copy(lines, h.lines)
	return lines
}

// Text returns the kept entries joined by newlines.
func (h *MemoryHook) Text() string {
	return strings.Join(h.Lines(), "\n")
}

// Clear drops the kept entries.
func (h *MemoryHook) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = nil
}

// Severity classifies a status message for display.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityWarning
	SeverityError
)

// SeverityOf maps a logrus level to a status severity.
func SeverityOf(level logrus.Level) Severity {
	switch {
	case level <= logrus.ErrorLevel:
		return SeverityError
	case level == logrus.WarnLevel:
		return SeverityWarning
	}
	return SeverityNormal
}

// StatusHook forwards info and more severe entries to a status display.
// The callback runs on the logging goroutine.
type StatusHook struct {
	notify func(message string, severity Severity)
}

// NewStatusHook creates a StatusHook calling notify for each entry.
func NewStatusHook(notify func(message string, severity Severity)) *StatusHook {
	return &StatusHook{notify: notify}
}

// Levels implements logrus.Hook.
func (h *StatusHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel,
	}
}

// Fire implements logrus.Hook.
func (h *StatusHook) Fire(entry *logrus.Entry) error {
	message := entry.Message
	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		message += ": " + err.Error()
	}
	h.notify(message, SeverityOf(entry.Level))
	return nil
}
