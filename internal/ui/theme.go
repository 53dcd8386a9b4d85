package ui

import (
	"errors"

	vtheme "ascentviewer/internal/theme"
)

// fallbackTheme is used when the configured theme cannot be found.
const fallbackTheme = "default_dark"

// applyTheme installs the configured theme and accent colour.
func (a *App) applyTheme() {
	t, err := a.themes.Get(a.cfg.Theme.Name)
	if err != nil {
		a.logger.WithError(err).WithField("theme", a.cfg.Theme.Name).Warn("Theme not found, using the default theme")
		if t, err = a.themes.Get(fallbackTheme); err != nil {
			a.logger.WithError(err).Error("Default theme is missing")
			return
		}
	}

	accent, err := vtheme.ParseHex(a.cfg.Theme.AccentColors.AccentColorMain)
	if err != nil {
		a.logger.WithError(err).Warn("Invalid accent color, using the theme's primary color")
		a.app.Settings().SetTheme(t.Fyne(nil))
		return
	}
	a.app.Settings().SetTheme(t.Fyne(accent))
	a.logger.WithField("theme", t.Manifest.Name).Debug("Applied theme")
}

// themeNames lists the selectable themes, keeping the configured one even
// when it failed to load.
func (a *App) themeNames() []string {
	names := a.themes.Names()
	if _, err := a.themes.Get(a.cfg.Theme.Name); errors.Is(err, vtheme.ErrNotFound) {
		names = append(names, a.cfg.Theme.Name)
	}
	return names
}
