// Package ui  Shortcuts for keyboard actions
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

func (a *App) buildKeyboardShortcuts() {
	c := a.UI.MainWin.Canvas()
	add := func(key fyne.KeyName, mod fyne.KeyModifier, action func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) { action() })
	}

	mod := a.UI.mainModKey
	add(fyne.KeyQ, mod, a.requestQuit)
	add(fyne.KeyO, mod, a.showOpenImageDialog)
	add(fyne.KeyO, mod|fyne.KeyModifierShift, a.showOpenFolderDialog)
	add(fyne.KeyC, mod|fyne.KeyModifierShift, a.copyDetails)
	add(fyne.KeyL, mod, a.showLogWindow)
	add(fyne.KeyComma, mod, a.showSettings)
	add(fyne.KeyLeft, fyne.KeyModifierAlt, a.historyBack)
	add(fyne.KeyRight, fyne.KeyModifierAlt, a.historyForward)

	c.SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		// move forward/back within the current folder of images
		case fyne.KeyRight:
			a.nextImage()
		case fyne.KeyLeft:
			a.previousImage()
		case fyne.KeyPageUp:
			a.skipImages(-a.cfg.Navigation.SkipCount)
		case fyne.KeyPageDown:
			a.skipImages(a.cfg.Navigation.SkipCount)
		case fyne.KeyHome:
			a.firstImage()
		case fyne.KeyEnd:
			a.lastImage()
		case fyne.KeySpace, fyne.KeyP:
			a.toggleSlideshow()
		case fyne.KeyF5:
			a.reloadDirectory()
		case fyne.KeyF1:
			a.showHelp()
		// close dialogs with esc key
		case fyne.KeyEscape:
			if top := c.Overlays().Top(); top != nil {
				top.Hide()
			}
		}
	})
}

type shortcutHelp struct {
	keys        string
	description string
}

// shortcutList describes the keyboard shortcuts for modifier name mod.
func shortcutList(mod string, skip int) []shortcutHelp {
	return []shortcutHelp{
		{"Arrow Right", "Next Image"},
		{"Arrow Left", "Previous Image"},
		{"Page Up", fmt.Sprintf("Skip %d Images Back", skip)},
		{"Page Down", fmt.Sprintf("Skip %d Images Forward", skip)},
		{"Home", "First Image"},
		{"End", "Last Image"},
		{"Space or P", "Play or Pause Slideshow"},
		{"Alt+Left", "Back in History"},
		{"Alt+Right", "Forward in History"},
		{mod + "+O", "Open Image"},
		{mod + "+Shift+O", "Open Folder"},
		{"F5", "Reload Folder"},
		{mod + "+Shift+C", "Copy Image Details"},
		{mod + "+L", "Log Window"},
		{mod + "+,", "Settings"},
		{"F1", "Help"},
		{"Esc", "Close Dialog"},
		{mod + "+Q", "Quit Application"},
	}
}

func (a *App) showShortcuts() {
	mod := "Ctrl"
	if a.UI.mainModKey == fyne.KeyModifierSuper {
		mod = "Cmd"
	}
	shortcuts := shortcutList(mod, a.cfg.Navigation.SkipCount)

	win := a.app.NewWindow("Keyboard Shortcuts")
	table := widget.NewTable(
		func() (int, int) { return len(shortcuts) + 1, 2 }, // +1 for header row
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			isHeader := id.Row == 0
			label.TextStyle.Bold = isHeader
			switch {
			case isHeader && id.Col == 0:
				label.SetText("Description")
			case isHeader:
				label.SetText("Shortcut")
			case id.Col == 0:
				label.SetText(shortcuts[id.Row-1].description)
			default:
				label.SetText(shortcuts[id.Row-1].keys)
			}
		},
	)
	table.SetColumnWidth(0, 250)
	table.SetColumnWidth(1, 200)
	win.SetContent(table)
	win.Resize(fyne.NewSize(470, 500))
	win.Show()
}
