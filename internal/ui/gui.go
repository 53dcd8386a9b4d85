package ui

import (
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

func (a *App) buildStatusBar() *fyne.Container {
	first := widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), a.firstImage)
	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.previousImage)
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.nextImage)
	last := widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), a.lastImage)
	a.UI.navButtons = []*widget.Button{first, prev, next, last}
	a.UI.positionLabel = widget.NewLabel("")

	return container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil,
			nil,
			container.NewHBox(first, prev, a.UI.positionLabel, next, last),
			a.buildStatusLog(),
		),
	)
}

func (a *App) buildInfoPanel() fyne.CanvasObject {
	a.UI.fileLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.UI.fileLabel.Wrapping = fyne.TextWrapBreak
	a.UI.dateLabel = widget.NewLabel("")
	a.UI.dimensionsLabel = widget.NewLabel("")
	a.UI.sizeLabel = widget.NewLabel("")
	a.UI.formatLabel = widget.NewLabel("")
	a.UI.exifText = widget.NewLabel("")
	a.UI.exifText.Wrapping = fyne.TextWrapWord

	return container.NewAppTabs(
		container.NewTabItem("Information", container.NewVScroll(container.NewVBox(
			a.UI.fileLabel,
			widget.NewSeparator(),
			a.UI.dateLabel,
			a.UI.dimensionsLabel,
			a.UI.sizeLabel,
			a.UI.formatLabel,
		))),
		container.NewTabItem("EXIF", container.NewVScroll(a.UI.exifText)),
	)
}

func (a *App) buildToolbar() *widget.Toolbar {
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.FileImageIcon(), a.showOpenImageDialog),
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.showOpenFolderDialog),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), a.reloadDirectory),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentCopyIcon(), a.copyDetails),
		widget.NewToolbarAction(theme.MediaPlayIcon(), a.toggleSlideshow),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), a.showSettings),
		widget.NewToolbarAction(theme.HelpIcon(), a.showHelp),
	)
}

func (a *App) buildMainMenu() *fyne.MainMenu {
	a.UI.reloadItem = fyne.NewMenuItem("Reload Folder", a.reloadDirectory)
	a.UI.reloadItem.Icon = theme.ViewRefreshIcon()
	quit := fyne.NewMenuItem("Quit", a.requestQuit)
	quit.IsQuit = true

	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", a.showOpenImageDialog),
		fyne.NewMenuItem("Open Folder...", a.showOpenFolderDialog),
		a.UI.reloadItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettings),
		fyne.NewMenuItem("Reset Configuration", a.confirmResetConfig),
		fyne.NewMenuItemSeparator(),
		quit,
	)

	prev := fyne.NewMenuItem("Previous Image", a.previousImage)
	next := fyne.NewMenuItem("Next Image", a.nextImage)
	first := fyne.NewMenuItem("First Image", a.firstImage)
	last := fyne.NewMenuItem("Last Image", a.lastImage)
	a.UI.navMenuItems = []*fyne.MenuItem{prev, next, first, last}
	a.UI.backItem = fyne.NewMenuItem("Back", a.historyBack)
	a.UI.forwardItem = fyne.NewMenuItem("Forward", a.historyForward)
	a.UI.slideItem = fyne.NewMenuItem("Play Slideshow", a.toggleSlideshow)
	view := fyne.NewMenu("View",
		prev, next, first, last,
		fyne.NewMenuItemSeparator(),
		a.UI.backItem, a.UI.forwardItem,
		fyne.NewMenuItemSeparator(),
		a.UI.slideItem,
	)

	a.UI.detailsItem = fyne.NewMenuItem("Copy Image Details", a.copyDetails)
	tools := fyne.NewMenu("Tools",
		a.UI.detailsItem,
		fyne.NewMenuItem("Log Window", a.showLogWindow),
	)

	help := fyne.NewMenu("Help",
		fyne.NewMenuItem("Help", a.showHelp),
		fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcuts),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("About", a.showAbout),
	)

	menus := []*fyne.Menu{file, view, tools}
	if a.cfg.Debug.EnableDebugMenu {
		menus = append(menus, a.buildDebugMenu())
	}
	return fyne.NewMainMenu(append(menus, help)...)
}

func (a *App) buildMainUI() fyne.CanvasObject {
	a.UI.MainWin.SetMaster()
	// set main mod key to super on darwin hosts, else set it to ctrl
	if runtime.GOOS == "darwin" {
		a.UI.mainModKey = fyne.KeyModifierSuper
	} else {
		a.UI.mainModKey = fyne.KeyModifierControl
	}

	toolbar := a.buildToolbar()
	status := a.buildStatusBar()

	a.UI.mainMenu = a.buildMainMenu()
	a.UI.MainWin.SetMainMenu(a.UI.mainMenu)
	a.buildKeyboardShortcuts()

	a.UI.imageView = newImageView(a.previousImage, a.nextImage)
	a.UI.split = container.NewHSplit(a.UI.imageView, a.buildInfoPanel())
	a.UI.split.SetOffset(a.cfg.WindowProperties.InfoPanelOffset)
	a.updateInfoPanel(nil)

	return container.NewBorder(
		toolbar, // Top
		status,  // Bottom
		nil,
		nil,
		a.UI.split,
	)
}

// helpText is shown by the Help dialog.
const helpText = `Open an image with File > Open Image or a folder with File > Open Folder.
The other images of the folder can then be browsed in name order with the
arrow keys, the arrow buttons in the status bar or by clicking the left or
right edge of the image. Browsing wraps around at either end.

Back and Forward in the View menu revisit images in the order they were viewed.

Settings are stored in config.json next to the logs folder and the themes
folder, where additional themes can be installed.`

func (a *App) showHelp() {
	text := widget.NewLabel(helpText)
	text.Wrapping = fyne.TextWrapWord
	d := newInfoDialog("Help", container.NewVBox(text, layout.NewSpacer()), a.UI.MainWin)
	d.Resize(fyne.NewSize(520, 300))
	d.Show()
}
