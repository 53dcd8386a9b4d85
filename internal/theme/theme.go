// Package theme loads colour themes from theme directories and turns them
// into fyne themes.
//
// A theme directory holds a manifest.json naming a palette file:
//
//	{
//	    "name": "nord",
//	    "themeData": {"base": "dark", "paletteJSONLocation": "colors/nord.json"}
//	}
//
// The palette maps fyne colour names to #RRGGBB or #RRGGBBAA values.
package theme

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"
)

//go:embed themes
var embedded embed.FS

// ManifestFile names the manifest inside a theme directory.
const ManifestFile = "manifest.json"

// Builtin returns the themes shipped with the application.
func Builtin() fs.FS {
	sub, err := fs.Sub(embedded, "themes")
	if err != nil {
		panic(err)
	}
	return sub
}

// Manifest describes a theme directory.
type Manifest struct {
	Name      string `json:"name"`
	Author    string `json:"author"`
	Version   string `json:"version"`
	ThemeData struct {
		Base                string `json:"base"` // "dark" or "light"
		PaletteJSONLocation string `json:"paletteJSONLocation"`
	} `json:"themeData"`
}

type paletteFile struct {
	Palette map[string]string `json:"palette"`
}

// Theme is a loaded theme.
type Theme struct {
	Manifest Manifest
	Palette  map[fyne.ThemeColorName]color.Color
}

// Variant returns the fyne variant of the theme's base.
func (t *Theme) Variant() fyne.ThemeVariant {
	if t.Manifest.ThemeData.Base == "light" {
		return fynetheme.VariantLight
	}
	return fynetheme.VariantDark
}

// Load reads the theme in directory dir of fsys.
func Load(fsys fs.FS, dir string) (*Theme, error) {
	var manifest Manifest
	if err := readJSON(fsys, path.Join(dir, ManifestFile), &manifest); err != nil {
		return nil, err
	}
	if manifest.Name == "" {
		manifest.Name = dir
	}
	switch manifest.ThemeData.Base {
	case "", "dark", "light":
	default:
		return nil, fmt.Errorf("theme %s: unknown base %q", manifest.Name, manifest.ThemeData.Base)
	}
	if manifest.ThemeData.PaletteJSONLocation == "" {
		return nil, fmt.Errorf("theme %s: manifest has no paletteJSONLocation", manifest.Name)
	}

	var palette paletteFile
	if err := readJSON(fsys, path.Join(dir, manifest.ThemeData.PaletteJSONLocation), &palette); err != nil {
		return nil, fmt.Errorf("theme %s: %w", manifest.Name, err)
	}

	t := &Theme{Manifest: manifest, Palette: make(map[fyne.ThemeColorName]color.Color, len(palette.Palette))}
	for name, value := range palette.Palette {
		c, err := ParseHex(value)
		if err != nil {
			return nil, fmt.Errorf("theme %s: colour %s: %w", manifest.Name, name, err)
		}
		t.Palette[fyne.ThemeColorName(name)] = c
	}
	return t, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// ParseHex parses #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 || len(hex) == len(s) {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ErrNotFound is returned by Registry.Get for unknown theme names.
var ErrNotFound = errors.New("theme not found")

// Registry indexes the themes of one or more theme roots by name. Themes from
// later roots replace earlier ones with the same name.
type Registry struct {
	themes map[string]*Theme
}

// NewRegistry loads every theme directory found directly in each root.
// Invalid themes are logged and skipped.
func NewRegistry(logger logrus.FieldLogger, roots ...fs.FS) *Registry {
	r := &Registry{themes: map[string]*Theme{}}
	for _, root := range roots {
		entries, err := fs.ReadDir(root, ".")
		if err != nil {
			logger.WithError(err).Debug("Theme directory not readable")
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, err := fs.Stat(root, path.Join(entry.Name(), ManifestFile)); err != nil {
				continue
			}
			t, err := Load(root, entry.Name())
			if err != nil {
				logger.WithError(err).WithField("theme", entry.Name()).Warn("Skipping invalid theme")
				continue
			}
			r.themes[t.Manifest.Name] = t
		}
	}
	return r
}

// Names returns the sorted theme names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the theme called name.
func (r *Registry) Get(name string) (*Theme, error) {
	t, ok := r.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return t, nil
}
