package ui

import (
	"errors"
	"fmt"
	"strconv"

	"ascentviewer/internal/config"
	"ascentviewer/internal/history"
	vtheme "ascentviewer/internal/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// logLevels are the selectable logging levels, in config.json spelling.
var logLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// showError logs err and reports it in a dialog.
func (a *App) showError(err error) {
	if err == nil {
		return
	}
	a.logger.WithError(err).Error("Operation failed")
	dialog.ShowError(err, a.UI.MainWin)
}

// showExitPrompt asks for confirmation before quitting. Ticking
// "Don't ask again" turns the prompt off for later sessions.
func (a *App) showExitPrompt() {
	dontAsk := widget.NewCheck("Don't ask again", nil)
	content := container.NewVBox(
		widget.NewLabel("Are you sure you want to exit "+AppName+"?"),
		dontAsk,
	)
	dialog.ShowCustomConfirm("Quit", "Quit", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if dontAsk.Checked {
			a.cfg.Prompts.EnableExitPrompt = false
		}
		a.quit()
	}, a.UI.MainWin)
}

// confirmResetConfig restores the default configuration after confirmation.
func (a *App) confirmResetConfig() {
	dialog.ShowConfirm("Reset Configuration",
		"Restore all settings to their defaults?\nThis can't be undone.",
		func(ok bool) {
			if !ok {
				return
			}
			previous := *a.cfg
			fresh := config.Default()
			if a.cfgPath != "" {
				var err error
				if fresh, err = config.Reset(a.cfgPath); err != nil {
					a.showError(err)
					return
				}
			}
			*a.cfg = *fresh
			a.applyConfig(previous)
			a.logger.Info("Configuration reset to defaults")
		}, a.UI.MainWin)
}

// settingsForm holds the widgets of the settings dialog.
type settingsForm struct {
	theme       *widget.Select
	accent      *widget.Entry
	exitPrompt  *widget.Check
	debugMenu   *widget.Check
	logLevel    *widget.Select
	watch       *widget.Check
	ignoreCase  *widget.Check
	skipCount   *widget.Entry
	historySize *widget.Entry
	slideshow   *widget.Entry
}

func newSettingsForm(cfg *config.Config, themes []string) *settingsForm {
	f := &settingsForm{
		theme:       widget.NewSelect(themes, nil),
		accent:      widget.NewEntry(),
		exitPrompt:  widget.NewCheck("Confirm before quitting", nil),
		debugMenu:   widget.NewCheck("Show the Debug menu", nil),
		logLevel:    widget.NewSelect(logLevels, nil),
		watch:       widget.NewCheck("Reload when the folder changes", nil),
		ignoreCase:  widget.NewCheck("Match upper case extensions", nil),
		skipCount:   widget.NewEntry(),
		historySize: widget.NewEntry(),
		slideshow:   widget.NewEntry(),
	}
	f.theme.SetSelected(cfg.Theme.Name)
	f.accent.SetText(cfg.Theme.AccentColors.AccentColorMain)
	f.accent.Validator = func(s string) error {
		_, err := vtheme.ParseHex(s)
		return err
	}
	f.exitPrompt.SetChecked(cfg.Prompts.EnableExitPrompt)
	f.debugMenu.SetChecked(cfg.Debug.EnableDebugMenu)
	f.logLevel.SetSelected(cfg.Debug.Logging.LoggingLevel)
	f.watch.SetChecked(cfg.Navigation.WatchDirectory)
	f.ignoreCase.SetChecked(cfg.Navigation.IgnoreExtensionCase)
	f.skipCount.SetText(strconv.Itoa(cfg.Navigation.SkipCount))
	f.skipCount.Validator = intValidator
	f.historySize.SetText(strconv.Itoa(cfg.Navigation.HistorySize))
	f.historySize.Validator = intValidator
	f.slideshow.SetText(strconv.Itoa(cfg.Navigation.SlideshowSeconds))
	f.slideshow.Validator = intValidator
	return f
}

func intValidator(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return errors.New("not a whole number")
	}
	return nil
}

func (f *settingsForm) items() []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem("Theme", f.theme),
		widget.NewFormItem("Accent color", f.accent),
		widget.NewFormItem("Exit prompt", f.exitPrompt),
		widget.NewFormItem("Watch folder", f.watch),
		widget.NewFormItem("Extensions", f.ignoreCase),
		widget.NewFormItem("Page skip", f.skipCount),
		widget.NewFormItem("History size", f.historySize),
		widget.NewFormItem("Slideshow seconds", f.slideshow),
		widget.NewFormItem("Logging level", f.logLevel),
		widget.NewFormItem("Debug", f.debugMenu),
	}
}

// apply returns a copy of cfg updated from the form, validated.
func (f *settingsForm) apply(cfg config.Config) (config.Config, error) {
	skip, err := strconv.Atoi(f.skipCount.Text)
	if err != nil {
		return cfg, fmt.Errorf("invalid page skip %q: %w", f.skipCount.Text, err)
	}
	size, err := strconv.Atoi(f.historySize.Text)
	if err != nil {
		return cfg, fmt.Errorf("invalid history size %q: %w", f.historySize.Text, err)
	}
	seconds, err := strconv.Atoi(f.slideshow.Text)
	if err != nil {
		return cfg, fmt.Errorf("invalid slideshow interval %q: %w", f.slideshow.Text, err)
	}
	if f.theme.Selected != "" {
		cfg.Theme.Name = f.theme.Selected
	}
	cfg.Theme.AccentColors.AccentColorMain = f.accent.Text
	cfg.Prompts.EnableExitPrompt = f.exitPrompt.Checked
	cfg.Debug.EnableDebugMenu = f.debugMenu.Checked
	if f.logLevel.Selected != "" {
		cfg.Debug.Logging.LoggingLevel = f.logLevel.Selected
	}
	cfg.Navigation.WatchDirectory = f.watch.Checked
	cfg.Navigation.IgnoreExtensionCase = f.ignoreCase.Checked
	cfg.Navigation.SkipCount = skip
	cfg.Navigation.HistorySize = size
	cfg.Navigation.SlideshowSeconds = seconds
	return cfg, cfg.Validate()
}

func (a *App) showSettings() {
	form := newSettingsForm(a.cfg, a.themeNames())
	a.slides.Pause(true)
	d := dialog.NewForm("Settings", "Save", "Cancel", form.items(), func(ok bool) {
		defer a.slides.ResumeAfterOperation()
		if !ok {
			return
		}
		updated, err := form.apply(*a.cfg)
		if err != nil {
			a.showError(err)
			return
		}
		previous := *a.cfg
		*a.cfg = updated
		a.saveConfig()
		a.applyConfig(previous)
		a.logger.Info("Settings saved")
	}, a.UI.MainWin)
	d.Resize(fyne.NewSize(460, 0))
	d.Show()
}

// applyConfig brings the running application in line with a.cfg after it
// replaced previous.
func (a *App) applyConfig(previous config.Config) {
	if level, err := a.cfg.LogLevel(); err == nil {
		a.logger.SetLevel(level)
	}
	if previous.Theme != a.cfg.Theme {
		a.applyTheme()
	}
	a.slides.SetInterval(a.slideshowInterval())
	if previous.Navigation.HistorySize != a.cfg.Navigation.HistorySize {
		a.trail = history.NewTrail(a.cfg.Navigation.HistorySize)
	}
	if previous.Debug.EnableDebugMenu != a.cfg.Debug.EnableDebugMenu {
		a.UI.mainMenu = a.buildMainMenu()
		a.UI.MainWin.SetMainMenu(a.UI.mainMenu)
	}
	switch {
	case a.cfg.Navigation.WatchDirectory && a.watcher == nil:
		a.startWatcher()
	case !a.cfg.Navigation.WatchDirectory && a.watcher != nil:
		a.stopWatcher()
	}
	if previous.Navigation.IgnoreExtensionCase != a.cfg.Navigation.IgnoreExtensionCase {
		a.scanner.SetIgnoreCase(a.cfg.Navigation.IgnoreExtensionCase)
		if a.model.Directory() != "" {
			a.reloadDirectory()
			return
		}
	}
	a.updateControls()
}
