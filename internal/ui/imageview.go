package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// imageView displays the current image scaled to fit and turns taps on its
// left or right third into previous/next navigation.
type imageView struct {
	widget.BaseWidget
	image    *canvas.Image
	onLeft   func()
	onRight  func()
	hasImage bool
}

func newImageView(onLeft, onRight func()) *imageView {
	v := &imageView{
		image:   &canvas.Image{},
		onLeft:  onLeft,
		onRight: onRight,
	}
	v.image.FillMode = canvas.ImageFillContain
	v.image.ScaleMode = canvas.ImageScaleSmooth
	v.ExtendBaseWidget(v)
	return v
}

func (v *imageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

// Tapped navigates when an image is shown and the tap is near either edge.
func (v *imageView) Tapped(ev *fyne.PointEvent) {
	if !v.hasImage {
		return
	}
	switch tapZone(ev.Position.X, v.Size().Width) {
	case -1:
		if v.onLeft != nil {
			v.onLeft()
		}
	case 1:
		if v.onRight != nil {
			v.onRight()
		}
	}
}

// SetImage replaces the displayed image; nil clears it.
func (v *imageView) SetImage(img image.Image) {
	v.image.Image = img
	v.hasImage = img != nil
	v.image.Refresh()
}

// tapZone returns -1 for the left third of width, 1 for the right third and
// 0 in between.
func tapZone(x, width float32) int {
	if width <= 0 {
		return 0
	}
	switch {
	case x < width/3:
		return -1
	case x > 2*width/3:
		return 1
	}
	return 0
}
