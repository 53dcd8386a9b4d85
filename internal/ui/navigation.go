package ui

import (
	"errors"
	"path/filepath"
	"strings"

	"ascentviewer/internal/navigation"
	"ascentviewer/internal/scan"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/sirupsen/logrus"
)

// imageFilter limits the open-image dialog to the scanned extensions.
func imageFilter() storage.FileFilter {
	exts := make([]string, 0, 2*len(scan.Extensions))
	for _, ext := range scan.Extensions {
		exts = append(exts, "."+ext, "."+strings.ToUpper(ext))
	}
	return storage.NewExtensionFileFilter(exts)
}

// dialogLocation returns the current directory as a dialog start location.
func (a *App) dialogLocation() fyne.ListableURI {
	if a.model.Directory() == "" {
		return nil
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(filepath.FromSlash(a.model.Directory())))
	if err != nil {
		return nil
	}
	return lister
}

// showOpenImageDialog asks for an image file and opens it.
func (a *App) showOpenImageDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			a.openImage("")
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.openImage(path)
	}, a.UI.MainWin)
	d.SetFilter(imageFilter())
	if loc := a.dialogLocation(); loc != nil {
		d.SetLocation(loc)
	}
	d.Show()
}

// showOpenFolderDialog asks for a folder and opens it.
func (a *App) showOpenFolderDialog() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if uri == nil {
			a.openDirectory("")
			return
		}
		a.openDirectory(uri.Path())
	}, a.UI.MainWin)
	if loc := a.dialogLocation(); loc != nil {
		d.SetLocation(loc)
	}
	d.Show()
}

// openImage displays path, rebuilding the image list when its folder changed.
func (a *App) openImage(path string) {
	if path != "" {
		a.logger.WithField("image", path).Info("Opened image")
	}
	change, err := a.model.OpenImage(path)
	if err != nil {
		var notInList *navigation.ImageNotInListError
		if errors.As(err, &notInList) {
			a.logger.WithError(err).Warn("Image is not in the folder's image list")
			dialog.ShowInformation("Image not shown", "The image is not a supported image of its folder:\n"+notInList.Path, a.UI.MainWin)
			return
		}
		a.showError(err)
		return
	}
	a.applyChange(change)
}

// openDirectory displays the first image of dir.
func (a *App) openDirectory(dir string) {
	if dir != "" {
		a.logger.WithField("directory", dir).Info("Opened directory")
	}
	change, err := a.model.OpenDirectory(dir)
	if err != nil {
		a.showError(err)
		return
	}
	a.applyChange(change)
}

// reloadDirectory rescans the current folder.
func (a *App) reloadDirectory() {
	change, err := a.model.Reload()
	if err != nil {
		a.showError(err)
		return
	}
	if change == navigation.Rebuilt && a.current != nil && a.model.Current() == scan.Normalize(a.current.Path) {
		a.updateControls()
		return
	}
	a.applyChange(change)
}

// applyChange updates the window after a navigation model operation.
func (a *App) applyChange(change navigation.Change) {
	switch change {
	case navigation.Unchanged:
		return
	case navigation.EmptyDirectory:
		a.logger.Warn("The selected folder has no images")
		a.updateControls()
		return
	case navigation.Rebuilt:
		a.watchCurrent()
	}
	a.updateControls()
	a.showCurrent()
}

func (a *App) nextImage() {
	if a.model.Next() {
		a.showCurrent()
	}
}

func (a *App) previousImage() {
	if a.model.Previous() {
		a.showCurrent()
	}
}

func (a *App) firstImage() {
	if a.model.First() {
		a.showCurrent()
	}
}

func (a *App) lastImage() {
	if a.model.Last() {
		a.showCurrent()
	}
}

func (a *App) skipImages(offset int) {
	if a.model.Skip(offset) {
		a.showCurrent()
	}
}

// historyBack reopens the previously viewed image.
func (a *App) historyBack() {
	if path, ok := a.trail.Back(); ok {
		a.openFromHistory(path, a.trail.Forward)
	}
}

// historyForward reopens the image viewed after the current one.
func (a *App) historyForward() {
	if path, ok := a.trail.Forward(); ok {
		a.openFromHistory(path, a.trail.Back)
	}
}

// openFromHistory opens a recorded image. Images that can no longer be
// opened are forgotten and the cursor is restored with undo.
func (a *App) openFromHistory(path string, undo func() (string, bool)) {
	change, err := a.model.OpenImage(path)
	if err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{"image": path}).Warn("Removing unavailable image from history")
		undo()
		a.trail.Forget(path)
		a.updateControls()
		return
	}
	if change == navigation.Rebuilt {
		a.watchCurrent()
	}
	a.updateControls()
	a.showCurrent()
}

// updateControls enables navigation only while the model has an image list.
func (a *App) updateControls() {
	can := a.model.CanNavigate()
	for _, b := range a.UI.navButtons {
		if can {
			b.Enable()
		} else {
			b.Disable()
		}
	}
	for _, item := range a.UI.navMenuItems {
		item.Disabled = !can
	}
	if a.UI.backItem != nil {
		a.UI.backItem.Disabled = !a.trail.CanGoBack()
		a.UI.forwardItem.Disabled = !a.trail.CanGoForward()
	}
	if a.UI.detailsItem != nil {
		a.UI.detailsItem.Disabled = a.current == nil
	}
	if a.UI.reloadItem != nil {
		a.UI.reloadItem.Disabled = a.model.Directory() == ""
	}
	if !can {
		a.slides.Pause(false)
	}
	if a.UI.slideItem != nil {
		a.UI.slideItem.Disabled = !can
		a.UI.slideItem.Label = "Play Slideshow"
		if a.slides.IsPlaying() {
			a.UI.slideItem.Label = "Pause Slideshow"
		}
	}
	if a.UI.mainMenu != nil {
		a.UI.mainMenu.Refresh()
	}
	a.updateStatusBar()
}
