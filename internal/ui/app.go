// Package ui Setup for the AscentViewer application
package ui

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"ascentviewer/internal/config"
	"ascentviewer/internal/history"
	"ascentviewer/internal/logging"
	"ascentviewer/internal/navigation"
	"ascentviewer/internal/scan"
	"ascentviewer/internal/service"
	"ascentviewer/internal/slideshow"
	vtheme "ascentviewer/internal/theme"
	"ascentviewer/internal/watch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

const (
	// AppID identifies the application to fyne's preferences store.
	AppID = "io.github.ascentviewer"
	// AppName is shown in window titles and dialogs.
	AppName = "AscentViewer"
	// Version of the application.
	Version = "1.0.0"

	// fullQualityDelay is how long the preview stays before the full image replaces it.
	fullQualityDelay = 250 * time.Millisecond
)

// UI holds the widgets the App updates after creation.
type UI struct {
	MainWin    fyne.Window
	mainModKey fyne.KeyModifier
	mainMenu   *fyne.MainMenu

	imageView *imageView
	split     *container.Split

	fileLabel       *widget.Label
	dateLabel       *widget.Label
	dimensionsLabel *widget.Label
	sizeLabel       *widget.Label
	formatLabel     *widget.Label
	exifText        *widget.Label

	statusLogLabel   *widget.Label
	statusLogUpBtn   *widget.Button
	statusLogDownBtn *widget.Button
	positionLabel    *widget.Label

	navButtons   []*widget.Button
	navMenuItems []*fyne.MenuItem
	backItem     *fyne.MenuItem
	forwardItem  *fyne.MenuItem
	detailsItem  *fyne.MenuItem
	reloadItem   *fyne.MenuItem
	slideItem    *fyne.MenuItem
}

// Options configures a new App.
type Options struct {
	Config     *config.Config
	ConfigPath string
	Logger     *logrus.Logger
	Memory     *logging.MemoryHook
	LogDir     string
	// StartPath is an image or folder opened once the window is shown.
	StartPath string
}

// App represents the whole application with all its windows, widgets and functions
type App struct {
	app fyne.App
	UI  UI

	cfg     *config.Config
	cfgPath string
	logger  *logrus.Logger
	memory  *logging.MemoryHook
	logDir  string

	scanner *scan.Scanner
	Service *service.Service
	model   *navigation.Model
	trail   *history.Trail
	watcher *watch.DirWatcher
	themes  *vtheme.Registry
	slides  *slideshow.Player

	current   *service.ImageInfo
	loadSeq   int
	fullTimer *time.Timer
	// async runs image decoding off the UI goroutine.
	async func(func())

	logUIManager *LogUIManager
}

// New builds the application and its main window on fyneApp without showing it.
func New(fyneApp fyne.App, opts Options) *App {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Memory == nil {
		opts.Memory = logging.NewMemoryHook(0)
		opts.Logger.AddHook(opts.Memory)
	}

	a := &App{
		app:     fyneApp,
		cfg:     opts.Config,
		cfgPath: opts.ConfigPath,
		logger:  opts.Logger,
		memory:  opts.Memory,
		logDir:  opts.LogDir,
		async:   func(f func()) { go f() },
	}

	var scanOpts []scan.Option
	if a.cfg.Navigation.IgnoreExtensionCase {
		scanOpts = append(scanOpts, scan.WithIgnoreCase())
	}
	a.scanner = scan.NewScanner(a.logger, scanOpts...)
	a.Service = service.NewService(a.scanner, service.NewImageService(), a.logger)
	a.model = a.Service.NewModel()
	a.trail = history.NewTrail(a.cfg.Navigation.HistorySize)
	a.slides = slideshow.NewPlayer(a.slideshowInterval(), func() { fyne.Do(a.nextImage) }, a.logger)
	a.themes = vtheme.NewRegistry(a.logger, a.themeRoots()...)
	a.applyTheme()

	a.UI.MainWin = fyneApp.NewWindow(AppName)
	a.UI.MainWin.SetIcon(theme.FileImageIcon())
	a.UI.MainWin.SetContent(a.buildMainUI())
	a.UI.MainWin.Resize(fyne.NewSize(a.cfg.WindowProperties.Width, a.cfg.WindowProperties.Height))
	a.UI.MainWin.SetCloseIntercept(a.requestQuit)

	a.logger.AddHook(logging.NewStatusHook(func(message string, severity logging.Severity) {
		fyne.Do(func() { a.logUIManager.AddLogMessage(message, severity) })
	}))

	if a.cfg.Navigation.WatchDirectory {
		a.startWatcher()
	}
	a.updateControls()
	return a
}

// Run creates the fyne application, shows the main window and blocks until
// the application quits.
func Run(opts Options) {
	fyneApp := app.NewWithID(AppID)
	fyneApp.SetIcon(theme.FileImageIcon())

	a := New(fyneApp, opts)
	a.logger.WithFields(logrus.Fields{"version": Version, "args": os.Args}).Info("GUI has been initialized")

	splash := a.showSplash()
	a.UI.MainWin.CenterOnScreen()
	if opts.StartPath != "" {
		a.openPath(opts.StartPath)
	}
	if splash != nil {
		time.AfterFunc(splashDuration, func() { fyne.Do(splash.Close) })
	}
	a.UI.MainWin.ShowAndRun()
}

// openPath opens path as a folder or as an image depending on what it is.
func (a *App) openPath(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		a.showError(err)
		return
	}
	info, err := os.Stat(abs)
	if err != nil {
		a.showError(err)
		return
	}
	if info.IsDir() {
		a.openDirectory(abs)
		return
	}
	a.openImage(abs)
}

// themeRoots lists the built-in themes followed by the user's themes folder
// next to the configuration file.
func (a *App) themeRoots() []fs.FS {
	roots := []fs.FS{vtheme.Builtin()}
	if a.cfgPath != "" {
		roots = append(roots, os.DirFS(filepath.Join(filepath.Dir(a.cfgPath), "themes")))
	}
	return roots
}

// requestQuit asks for confirmation when the exit prompt is enabled.
func (a *App) requestQuit() {
	if !a.cfg.Prompts.EnableExitPrompt {
		a.quit()
		return
	}
	a.showExitPrompt()
}

// quit persists the window layout, stops background work and quits.
func (a *App) quit() {
	size := a.UI.MainWin.Canvas().Size()
	a.cfg.WindowProperties.Width = size.Width
	a.cfg.WindowProperties.Height = size.Height
	a.cfg.WindowProperties.InfoPanelOffset = a.UI.split.Offset
	a.saveConfig()

	a.slides.Pause(false)
	a.stopWatcher()
	a.stopFullTimer()
	a.logger.Info("Quitting")
	a.app.Quit()
}

func (a *App) slideshowInterval() time.Duration {
	return time.Duration(a.cfg.Navigation.SlideshowSeconds) * time.Second
}

// toggleSlideshow starts or pauses automatic advancing.
func (a *App) toggleSlideshow() {
	if !a.model.CanNavigate() {
		a.slides.Pause(false)
		a.logger.Warn("Open a folder to start a slideshow")
		a.updateControls()
		return
	}
	if a.slides.Toggle() {
		a.logger.WithField("interval", a.slides.Interval()).Info("Slideshow started")
	} else {
		a.logger.Info("Slideshow paused")
	}
	a.updateControls()
}

func (a *App) saveConfig() {
	if a.cfgPath == "" {
		return
	}
	if err := a.cfg.Save(a.cfgPath); err != nil {
		a.logger.WithError(err).Error("Could not save configuration")
	}
}

func (a *App) startWatcher() {
	if a.watcher != nil {
		return
	}
	w, err := watch.New(a.logger, watch.DefaultDebounce, func(string) {
		fyne.Do(a.reloadDirectory)
	})
	if err != nil {
		a.logger.WithError(err).Error("Could not start directory watcher")
		return
	}
	if err := w.Start(context.Background()); err != nil {
		a.logger.WithError(err).Error("Could not start directory watcher")
		w.Close()
		return
	}
	a.watcher = w
	a.watchCurrent()
}

func (a *App) stopWatcher() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		a.logger.WithError(err).Warn("Error closing directory watcher")
	}
	a.watcher = nil
}

func (a *App) watchCurrent() {
	if a.watcher == nil || a.model.Directory() == "" {
		return
	}
	if err := a.watcher.Watch(filepath.FromSlash(a.model.Directory())); err != nil {
		a.logger.WithError(err).Warn("Could not watch directory")
	}
}
