package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// splashDuration is how long the splash window stays up after start.
const splashDuration = 1500 * time.Millisecond

// showSplash shows a borderless splash window on desktop drivers and returns
// it, or nil when the driver has no splash support.
func (a *App) showSplash() fyne.Window {
	drv, ok := a.app.Driver().(desktop.Driver)
	if !ok {
		return nil
	}
	w := drv.CreateSplashWindow()

	icon := canvas.NewImageFromResource(theme.FileImageIcon())
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(128, 128))
	w.SetContent(container.NewPadded(container.NewVBox(
		icon,
		widget.NewLabelWithStyle(AppName, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Version "+Version, fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		widget.NewProgressBarInfinite(),
	)))
	w.Show()
	return w
}
