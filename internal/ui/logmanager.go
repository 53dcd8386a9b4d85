package ui

import (
	"fmt"
	"time"

	"ascentviewer/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	// DefaultMaxLogMessages is how many status messages can be paged through.
	DefaultMaxLogMessages = 100
	// statusResetDelay is how long a warning or error stays highlighted.
	statusResetDelay = 5 * time.Second
)

type statusMessage struct {
	text     string
	severity logging.Severity
}

// LogUIManager drives the status bar log line and its paging buttons.
// All methods must be called on the fyne goroutine.
type LogUIManager struct {
	logMessages     []statusMessage
	currentLogIndex int
	maxLogMessages  int
	resetTimer      *time.Timer

	statusLogLabel   *widget.Label
	statusLogUpBtn   *widget.Button
	statusLogDownBtn *widget.Button
}

func NewLogUIManager(logLabel *widget.Label, upBtn, downBtn *widget.Button, maxMessages int) *LogUIManager {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxLogMessages
	}
	return &LogUIManager{
		logMessages:      make([]statusMessage, 0, maxMessages),
		currentLogIndex:  -1,
		maxLogMessages:   maxMessages,
		statusLogLabel:   logLabel,
		statusLogUpBtn:   upBtn,
		statusLogDownBtn: downBtn,
	}
}

// AddLogMessage shows message as the newest status line. Warnings and errors
// are highlighted until statusResetDelay passes.
func (lm *LogUIManager) AddLogMessage(message string, severity logging.Severity) {
	if lm == nil || lm.statusLogLabel == nil {
		return
	}
	lm.logMessages = append(lm.logMessages, statusMessage{text: message, severity: severity})
	if len(lm.logMessages) > lm.maxLogMessages {
		lm.logMessages = lm.logMessages[len(lm.logMessages)-lm.maxLogMessages:]
	}
	lm.currentLogIndex = len(lm.logMessages) - 1
	lm.UpdateLogDisplay()

	if lm.resetTimer != nil {
		lm.resetTimer.Stop()
		lm.resetTimer = nil
	}
	if severity != logging.SeverityNormal {
		lm.resetTimer = time.AfterFunc(statusResetDelay, func() {
			fyne.Do(lm.resetHighlight)
		})
	}
}

// resetHighlight returns the status line to its normal colour.
func (lm *LogUIManager) resetHighlight() {
	lm.statusLogLabel.Importance = widget.MediumImportance
	lm.statusLogLabel.Refresh()
}

func (lm *LogUIManager) UpdateLogDisplay() {
	if lm.statusLogLabel == nil || lm.statusLogUpBtn == nil || lm.statusLogDownBtn == nil {
		return
	}
	if len(lm.logMessages) == 0 {
		lm.statusLogLabel.Importance = widget.MediumImportance
		lm.statusLogLabel.SetText("")
		lm.statusLogUpBtn.Disable()
		lm.statusLogDownBtn.Disable()
		return
	}

	lm.currentLogIndex = max(0, min(lm.currentLogIndex, len(lm.logMessages)-1))
	msg := lm.logMessages[lm.currentLogIndex]
	lm.statusLogLabel.Importance = importanceOf(msg.severity)
	lm.statusLogLabel.SetText(fmt.Sprintf("[%d/%d] %s", lm.currentLogIndex+1, len(lm.logMessages), msg.text))

	if lm.currentLogIndex <= 0 {
		lm.statusLogUpBtn.Disable()
	} else {
		lm.statusLogUpBtn.Enable()
	}
	if lm.currentLogIndex >= len(lm.logMessages)-1 {
		lm.statusLogDownBtn.Disable()
	} else {
		lm.statusLogDownBtn.Enable()
	}
}

func (lm *LogUIManager) ShowPreviousLogMessage() {
	if len(lm.logMessages) == 0 || lm.currentLogIndex <= 0 {
		return
	}
	lm.currentLogIndex--
	lm.UpdateLogDisplay()
}

func (lm *LogUIManager) ShowNextLogMessage() {
	if len(lm.logMessages) == 0 || lm.currentLogIndex >= len(lm.logMessages)-1 {
		return
	}
	lm.currentLogIndex++
	lm.UpdateLogDisplay()
}

// Stop cancels a pending highlight reset.
func (lm *LogUIManager) Stop() {
	if lm != nil && lm.resetTimer != nil {
		lm.resetTimer.Stop()
		lm.resetTimer = nil
	}
}

func importanceOf(severity logging.Severity) widget.Importance {
	switch severity {
	case logging.SeverityError:
		return widget.DangerImportance
	case logging.SeverityWarning:
		return widget.WarningImportance
	}
	return widget.MediumImportance
}

// buildStatusLog creates the status bar log line and wires the LogUIManager.
func (a *App) buildStatusLog() fyne.CanvasObject {
	a.UI.statusLogLabel = widget.NewLabel("")
	a.UI.statusLogLabel.Truncation = fyne.TextTruncateEllipsis
	a.UI.statusLogUpBtn = widget.NewButtonWithIcon("", theme.MenuDropUpIcon(), nil)
	a.UI.statusLogDownBtn = widget.NewButtonWithIcon("", theme.MenuDropDownIcon(), nil)
	a.logUIManager = NewLogUIManager(a.UI.statusLogLabel, a.UI.statusLogUpBtn, a.UI.statusLogDownBtn, DefaultMaxLogMessages)
	a.UI.statusLogUpBtn.OnTapped = a.logUIManager.ShowPreviousLogMessage
	a.UI.statusLogDownBtn.OnTapped = a.logUIManager.ShowNextLogMessage
	a.logUIManager.UpdateLogDisplay()

	return container.NewBorder(nil, nil,
		container.NewHBox(a.UI.statusLogUpBtn, a.UI.statusLogDownBtn), nil,
		a.UI.statusLogLabel)
}

// showLogWindow opens a window with the log entries kept in memory.
func (a *App) showLogWindow() {
	win := a.app.NewWindow(AppName + " - Log")
	text := widget.NewMultiLineEntry()
	text.Wrapping = fyne.TextWrapOff
	text.TextStyle.Monospace = true
	refresh := func() {
		text.SetText(a.memory.Text())
		text.CursorRow = len(a.memory.Lines())
	}
	refresh()

	buttons := container.NewHBox(
		widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), refresh),
		widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), func() {
			win.Clipboard().SetContent(a.memory.Text())
		}),
		widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
			a.memory.Clear()
			refresh()
		}),
	)
	win.SetContent(container.NewBorder(nil, buttons, nil, nil, text))
	win.Resize(fyne.NewSize(800, 500))
	win.Show()
}
