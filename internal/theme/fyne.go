package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

// viewerTheme wraps a base fyne theme with a palette and an accent colour.
type viewerTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
	palette map[fyne.ThemeColorName]color.Color
	accent  color.Color
}

var _ fyne.Theme = (*viewerTheme)(nil)

// Fyne turns t into a fyne theme. The accent colour becomes the primary and
// focus colour; a nil accent keeps the base theme's. The theme's base variant
// is used regardless of the system preference.
func (t *Theme) Fyne(accent color.Color) fyne.Theme {
	return &viewerTheme{
		Theme:   fynetheme.DefaultTheme(),
		variant: t.Variant(),
		palette: t.Palette,
		accent:  accent,
	}
}

func (t *viewerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if t.accent != nil {
		switch name {
		case fynetheme.ColorNamePrimary, fynetheme.ColorNameHyperlink:
			return t.accent
		case fynetheme.ColorNameFocus, fynetheme.ColorNameSelection:
			r, g, b, _ := t.accent.RGBA()
			return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x66}
		}
	}
	if c, ok := t.palette[name]; ok {
		return c
	}
	return t.Theme.Color(name, t.variant)
}
