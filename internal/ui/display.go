package ui

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"ascentviewer/internal/service"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"
)

// windowTitle returns the main window title for the image called name.
func windowTitle(name string) string {
	if name == "" {
		return AppName
	}
	return fmt.Sprintf("%s  -  %s", AppName, name)
}

// positionText renders "Image 3 / 12" for the status bar.
func positionText(pos, total int) string {
	if total == 0 {
		return "No images"
	}
	return fmt.Sprintf("Image %d / %d", pos, total)
}

// exifText renders the EXIF panel contents.
func exifText(info *service.ImageInfo) string {
	lines := service.EXIFLines(info)
	if len(lines) == 0 {
		return "No EXIF data"
	}
	return strings.Join(lines, "\n")
}

// updateStatusBar shows the position of the displayed image.
func (a *App) updateStatusBar() {
	if a.UI.positionLabel == nil {
		return
	}
	a.UI.positionLabel.SetText(positionText(a.model.Position()))
}

// updateInfoPanel fills the info panel from info; nil clears it.
func (a *App) updateInfoPanel(info *service.ImageInfo) {
	if info == nil {
		a.UI.fileLabel.SetText("No image loaded")
		a.UI.dateLabel.SetText("")
		a.UI.dimensionsLabel.SetText("")
		a.UI.sizeLabel.SetText("")
		a.UI.formatLabel.SetText("")
		a.UI.exifText.SetText("")
		return
	}
	a.UI.fileLabel.SetText(info.Name)
	a.UI.dateLabel.SetText("Date modified: " + info.DateModified())
	a.UI.dimensionsLabel.SetText("Dimensions: " + info.Dimensions())
	a.UI.sizeLabel.SetText("Size: " + service.FormatSize(info.Size))
	a.UI.formatLabel.SetText("Format: " + strings.ToUpper(info.Format))
	a.UI.exifText.SetText(exifText(info))
}

// showCurrent loads the model's current image off the UI goroutine. The fast
// preview is shown first and the full image replaces it after fullQualityDelay.
// Results of superseded loads are dropped.
func (a *App) showCurrent() {
	path := a.model.Current()
	if path == "" {
		return
	}
	a.loadSeq++
	seq := a.loadSeq
	a.stopFullTimer()
	a.updateStatusBar()

	a.async(func() {
		info, full, preview, err := a.Service.Describe(filepath.FromSlash(path))
		fyne.Do(func() {
			if seq != a.loadSeq {
				return
			}
			if err != nil {
				a.handleImageDisplayError(path, err)
				return
			}
			a.displayImage(seq, path, info, full, preview)
		})
	})
}

func (a *App) displayImage(seq int, path string, info *service.ImageInfo, full, preview image.Image) {
	a.current = info
	a.UI.imageView.SetImage(preview)
	a.updateInfoPanel(info)
	a.UI.MainWin.SetTitle(windowTitle(info.Name))
	a.trail.Visit(path)
	a.updateControls()
	a.logger.WithField("image", path).Debug("Displayed image")

	if preview == full {
		return
	}
	a.fullTimer = time.AfterFunc(fullQualityDelay, func() {
		fyne.Do(func() {
			if seq == a.loadSeq {
				a.UI.imageView.SetImage(full)
			}
		})
	})
}

// handleImageDisplayError clears the view when the current image cannot be
// decoded. The navigation state stays as it is so the user can move on.
func (a *App) handleImageDisplayError(path string, err error) {
	a.current = nil
	a.UI.imageView.SetImage(nil)
	a.updateInfoPanel(nil)
	a.UI.MainWin.SetTitle(windowTitle(filepath.Base(path)))
	a.updateControls()
	a.logger.WithError(err).WithFields(logrus.Fields{"image": path}).Error("Could not display image")
}

// clearDisplay resets the view to its empty state.
func (a *App) clearDisplay() {
	a.loadSeq++
	a.stopFullTimer()
	a.current = nil
	a.UI.imageView.SetImage(nil)
	a.updateInfoPanel(nil)
	a.UI.MainWin.SetTitle(windowTitle(""))
	a.updateStatusBar()
}

func (a *App) stopFullTimer() {
	if a.fullTimer != nil {
		a.fullTimer.Stop()
		a.fullTimer = nil
	}
}

// copyDetails places the details of the displayed image on the clipboard.
func (a *App) copyDetails() {
	if a.current == nil {
		return
	}
	a.UI.MainWin.Clipboard().SetContent(service.Details(a.current))
	a.logger.Info("Copied image details to the clipboard")
}
