package ui

import (
	"net/url"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const projectURL = "https://github.com/ascentviewer/ascentviewer"

// About is the dialog describing the application.
type About struct {
	title     string
	parent    fyne.Window
	container *fyne.Container
	d         dialog.Dialog
}

func NewAbout(parent fyne.Window, title string, image fyne.Resource) *About {
	a := &About{
		title:  title,
		parent: parent,
	}

	img := canvas.NewImageFromResource(image)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(96, 96))

	name := widget.NewLabelWithStyle(AppName, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	vbox := container.NewVBox(
		img,
		name,
		widget.NewLabelWithStyle("A simple image viewer.", fyne.TextAlignCenter, fyne.TextStyle{}),
		widget.NewLabelWithStyle("Version "+Version+" | "+runtime.Version(), fyne.TextAlignCenter, fyne.TextStyle{}),
	)
	if u := parseURL(projectURL); u != nil {
		vbox.Add(container.NewCenter(widget.NewHyperlink("Source code and issues", u)))
	}

	ok := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("OK", func() { a.Hide() }),
		layout.NewSpacer(),
	)

	a.container = container.NewBorder(nil, ok, nil, nil, vbox)

	return a
}

func (a *About) Hide() {
	if a.d != nil {
		a.d.Hide()
	}
}

func (a *About) Show() {
	a.d = dialog.NewCustomWithoutButtons(a.title, a.container, a.parent)
	a.d.Show()
}

func (a *App) showAbout() {
	NewAbout(a.UI.MainWin, "About "+AppName, theme.FileImageIcon()).Show()
}

// newInfoDialog creates a dialog with a single Close button.
func newInfoDialog(title string, content fyne.CanvasObject, parent fyne.Window) dialog.Dialog {
	return dialog.NewCustom(title, "Close", content, parent)
}

func parseURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		return nil
	}
	return u
}
