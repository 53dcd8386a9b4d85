package ui

import (
	"encoding/json"
	"errors"
	"net/url"
	"path/filepath"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"
)

// buildDebugMenu creates the Debug menu shown when enableDebugMenu is set.
func (a *App) buildDebugMenu() *fyne.Menu {
	logAt := func(level logrus.Level) *fyne.MenuItem {
		return fyne.NewMenuItem("Log "+level.String()+" message", func() {
			a.logger.WithField("source", "debug menu").Logf(level, "Test %s message", level)
		})
	}
	return fyne.NewMenu("Debug",
		logAt(logrus.DebugLevel),
		logAt(logrus.InfoLevel),
		logAt(logrus.WarnLevel),
		logAt(logrus.ErrorLevel),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Error Dialog", func() {
			a.showError(errors.New("test error raised from the debug menu"))
		}),
		fyne.NewMenuItem("Dump Configuration", a.dumpConfig),
		fyne.NewMenuItem("Open Log Folder", a.openLogFolder),
	)
}

// dumpConfig writes the running configuration to the log.
func (a *App) dumpConfig() {
	data, err := json.MarshalIndent(a.cfg, "", "    ")
	if err != nil {
		a.logger.WithError(err).Error("Could not encode configuration")
		return
	}
	a.logger.WithField("path", a.cfgPath).Info("Current configuration:\n" + string(data))
}

func (a *App) openLogFolder() {
	if a.logDir == "" {
		a.logger.Warn("No log folder in use")
		return
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(a.logDir)}
	if err := a.app.OpenURL(u); err != nil {
		a.logger.WithError(err).Error("Could not open log folder")
	}
}
