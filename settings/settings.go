// Package settings loads the user-tunable values the configuration is built
// from. Every value has a default, so the settings file is optional.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/vhal/tilerc/keysym"
)

const (
	appName           = "tilerc"
	defaultConfigName = "settings"
	envPrefix         = "TILERC"
)

// WallpaperModes are the wallpaper modes the host understands.
var WallpaperModes = []string{"fill", "stretch", "center"}

type Settings struct {
	Mod       string `yaml:"mod" json:"mod" toml:"mod"`
	Terminal  string `yaml:"terminal,omitempty" json:"terminal,omitempty" toml:"terminal,omitempty"`
	Autostart string `yaml:"autostart" json:"autostart" toml:"autostart"`

	WallpaperPath string `yaml:"wallpaper_path" json:"wallpaper_path" toml:"wallpaper_path"`
	WallpaperMode string `yaml:"wallpaper_mode" json:"wallpaper_mode" toml:"wallpaper_mode"`

	FontFamily string `yaml:"font_family" json:"font_family" toml:"font_family"`
	FontSize   int    `yaml:"font_size" json:"font_size" toml:"font_size"`
	BarSize    int    `yaml:"bar_size" json:"bar_size" toml:"bar_size"`

	// File is the settings file that was read, if any.
	File string `yaml:"-" json:"-" toml:"-"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Mod:           "mod4",
		Autostart:     filepath.Join(xdg.ConfigHome, "qtile", "autostart.sh"),
		WallpaperPath: filepath.Join(xdg.UserDirs.Pictures, "wallpaper.png"),
		WallpaperMode: "fill",
		FontFamily:    "Ubuntu Nerd",
		FontSize:      14,
		BarSize:       24,
	}
}

// DefaultPath is where Load looks when no explicit file is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, defaultConfigName+".toml")
}

// Load reads settings from path (or DefaultPath when empty) and TILERC_*
// environment variables, over the defaults. A missing file is not an error
// unless it was named explicitly.
func Load(path string) (Settings, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mod", def.Mod)
	v.SetDefault("terminal", def.Terminal)
	v.SetDefault("autostart", def.Autostart)
	v.SetDefault("wallpaper.path", def.WallpaperPath)
	v.SetDefault("wallpaper.mode", def.WallpaperMode)
	v.SetDefault("font.family", def.FontFamily)
	v.SetDefault("font.size", def.FontSize)
	v.SetDefault("bar.size", def.BarSize)

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	file := path
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			if explicit {
				return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
			}
			file = ""
		default:
			return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
		}
	}

	s := Settings{
		Mod:           strings.TrimSpace(v.GetString("mod")),
		Terminal:      strings.TrimSpace(v.GetString("terminal")),
		Autostart:     expandHome(v.GetString("autostart")),
		WallpaperPath: expandHome(v.GetString("wallpaper.path")),
		WallpaperMode: strings.TrimSpace(v.GetString("wallpaper.mode")),
		FontFamily:    strings.TrimSpace(v.GetString("font.family")),
		FontSize:      v.GetInt("font.size"),
		BarSize:       v.GetInt("bar.size"),
		File:          file,
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// reservedMods cannot be the main modifier. The fixed bindings add shift and
// control to it, and lock and mod2 (Num Lock) are masked out of key presses.
var reservedMods = []string{"shift", "control", "lock", "mod2"}

// Validate checks the values Load cannot coerce.
func (s Settings) Validate() error {
	if _, err := keysym.Modifier(s.Mod); err != nil {
		return fmt.Errorf("invalid mod: %w", err)
	}
	if slices.Contains(reservedMods, strings.ToLower(s.Mod)) {
		return fmt.Errorf("invalid mod %q: the bindings already use shift and control, and lock and mod2 are ignored", s.Mod)
	}
	if !slices.Contains(WallpaperModes, s.WallpaperMode) {
		return fmt.Errorf("invalid wallpaper.mode %q (use %s)", s.WallpaperMode, strings.Join(WallpaperModes, ", "))
	}
	if s.FontFamily == "" {
		return fmt.Errorf("font.family must not be empty")
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("invalid font.size %d", s.FontSize)
	}
	if s.BarSize <= 0 {
		return fmt.Errorf("invalid bar.size %d", s.BarSize)
	}
	return nil
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}
