// Package wmconf builds the window manager configuration: key bindings,
// groups, layouts, the bar and its widgets, mouse actions, float rules, flags
// and startup hooks.
//
// Build is a pure function of its Env. The host calls it at startup and on
// every reload and derives its dispatch tables from the result; nothing in
// the returned Config is mutated afterwards.
package wmconf

import (
	"github.com/vhal/tilerc/hook"
	"github.com/vhal/tilerc/lazy"
	"github.com/vhal/tilerc/settings"
	"github.com/vhal/tilerc/spawn"
)

// Env is everything Build takes from the host.
type Env struct {
	Settings settings.Settings

	// Terminal is the resolved terminal program.
	Terminal string

	// Backend names the running backend ("x11", "wayland"). It is only valid
	// once the host has started, so Build never calls it.
	Backend func() string

	// DefaultFloatRules are the host's own float rules.
	DefaultFloatRules []Match

	// Spawn starts external programs. Nil means spawn.Start.
	Spawn spawn.Func
}

type Config struct {
	Mod      string  `yaml:"mod" json:"mod" toml:"mod"`
	Terminal string  `yaml:"terminal" json:"terminal" toml:"terminal"`
	Colors   Palette `yaml:"colors" json:"colors" toml:"colors"`

	Keys    []Key    `yaml:"keys" json:"keys" toml:"keys"`
	Groups  []Group  `yaml:"groups" json:"groups" toml:"groups"`
	Layouts []Layout `yaml:"layouts" json:"layouts" toml:"layouts"`

	FloatingLayout Floating `yaml:"floating_layout" json:"floating_layout" toml:"floating_layout"`

	WidgetDefaults    WidgetDefaults `yaml:"widget_defaults" json:"widget_defaults" toml:"widget_defaults"`
	ExtensionDefaults WidgetDefaults `yaml:"extension_defaults" json:"extension_defaults" toml:"extension_defaults"`

	Screens []Screen `yaml:"screens" json:"screens" toml:"screens"`
	Mouse   []Mouse  `yaml:"mouse" json:"mouse" toml:"mouse"`

	Flags Flags `yaml:"flags" json:"flags" toml:"flags"`

	Hooks []hook.Hook `yaml:"hooks" json:"hooks" toml:"hooks"`
}

// Key binds a modifier+key chord to a command.
type Key struct {
	Modifiers []string     `yaml:"modifiers" json:"modifiers" toml:"modifiers"`
	Key       string       `yaml:"key" json:"key" toml:"key"`
	Command   lazy.Command `yaml:"command" json:"command" toml:"command"`
	Desc      string       `yaml:"desc" json:"desc" toml:"desc"`
}

// Group is a workspace. Its order is the cycling and display order.
type Group struct {
	Name string `yaml:"name" json:"name" toml:"name"`
}

// Layout selects a tiling algorithm and its parameters. Only the first
// layout is active by default; the rest are cycle targets.
type Layout struct {
	Name         string `yaml:"name" json:"name" toml:"name"`
	BorderFocus  Color  `yaml:"border_focus" json:"border_focus" toml:"border_focus"`
	BorderNormal Color  `yaml:"border_normal" json:"border_normal" toml:"border_normal"`
	BorderWidth  int    `yaml:"border_width" json:"border_width" toml:"border_width"`
	Margin       int    `yaml:"margin" json:"margin" toml:"margin"`
	NumColumns   int    `yaml:"num_columns,omitempty" json:"num_columns,omitempty" toml:"num_columns,omitempty"`
}

// Floating is the layout used for floating windows.
type Floating struct {
	BorderFocus  Color   `yaml:"border_focus" json:"border_focus" toml:"border_focus"`
	BorderNormal Color   `yaml:"border_normal" json:"border_normal" toml:"border_normal"`
	BorderWidth  int     `yaml:"border_width" json:"border_width" toml:"border_width"`
	FloatRules   []Match `yaml:"float_rules" json:"float_rules" toml:"float_rules"`
}

// Match selects windows by one attribute. Predicate names a host-side check,
// such as "has_fixed_size", for rules that are not attribute matches.
type Match struct {
	WMClass   string `yaml:"wm_class,omitempty" json:"wm_class,omitempty" toml:"wm_class,omitempty"`
	WMType    string `yaml:"wm_type,omitempty" json:"wm_type,omitempty" toml:"wm_type,omitempty"`
	Title     string `yaml:"title,omitempty" json:"title,omitempty" toml:"title,omitempty"`
	Role      string `yaml:"role,omitempty" json:"role,omitempty" toml:"role,omitempty"`
	Predicate string `yaml:"predicate,omitempty" json:"predicate,omitempty" toml:"predicate,omitempty"`
}

// DefaultFloatRules is the host's stock float rule set: dialogs, utility
// and notification windows, and windows that cannot be resized.
func DefaultFloatRules() []Match {
	return []Match{
		{WMType: "utility"},
		{WMType: "notification"},
		{WMType: "toolbar"},
		{WMType: "splash"},
		{WMType: "dialog"},
		{WMClass: "file_progress"},
		{WMClass: "confirm"},
		{WMClass: "dialog"},
		{WMClass: "download"},
		{WMClass: "error"},
		{WMClass: "notification"},
		{WMClass: "splash"},
		{WMClass: "toolbar"},
		{Predicate: "has_fixed_size"},
		{Predicate: "has_fixed_ratio"},
	}
}

// Screen is one display surface with its bar.
type Screen struct {
	Top           *Bar   `yaml:"top,omitempty" json:"top,omitempty" toml:"top,omitempty"`
	Bottom        *Bar   `yaml:"bottom,omitempty" json:"bottom,omitempty" toml:"bottom,omitempty"`
	Wallpaper     string `yaml:"wallpaper,omitempty" json:"wallpaper,omitempty" toml:"wallpaper,omitempty"`
	WallpaperMode string `yaml:"wallpaper_mode,omitempty" json:"wallpaper_mode,omitempty" toml:"wallpaper_mode,omitempty"`
}

// Bar is a status bar. Widgets are placed left to right in order.
type Bar struct {
	Widgets    []Widget `yaml:"widgets" json:"widgets" toml:"widgets"`
	Size       int      `yaml:"size" json:"size" toml:"size"`
	Background Color    `yaml:"background" json:"background" toml:"background"`
	Margin     [4]int   `yaml:"margin,flow" json:"margin" toml:"margin"`
}

// Mouse binds a pointer button to a command. A drag also carries the
// command that reports the starting position or size.
type Mouse struct {
	Kind      string        `yaml:"kind" json:"kind" toml:"kind"`
	Modifiers []string      `yaml:"modifiers" json:"modifiers" toml:"modifiers"`
	Button    string        `yaml:"button" json:"button" toml:"button"`
	Command   lazy.Command  `yaml:"command" json:"command" toml:"command"`
	Start     *lazy.Command `yaml:"start,omitempty" json:"start,omitempty" toml:"start,omitempty"`
}

const (
	MouseDrag  = "drag"
	MouseClick = "click"
)

// InputRule configures a Wayland input device.
type InputRule struct {
	Tap           bool   `yaml:"tap" json:"tap" toml:"tap"`
	NaturalScroll bool   `yaml:"natural_scroll" json:"natural_scroll" toml:"natural_scroll"`
	KBLayout      string `yaml:"kb_layout,omitempty" json:"kb_layout,omitempty" toml:"kb_layout,omitempty"`
}

// Flags are the scalar settings the host reads by name. Empty strings and
// nil maps mean "unset, use the host default".
type Flags struct {
	DGroupsKeyBinder        string               `yaml:"dgroups_key_binder,omitempty" json:"dgroups_key_binder,omitempty" toml:"dgroups_key_binder,omitempty"`
	DGroupsAppRules         []string             `yaml:"dgroups_app_rules" json:"dgroups_app_rules" toml:"dgroups_app_rules"`
	FollowMouseFocus        bool                 `yaml:"follow_mouse_focus" json:"follow_mouse_focus" toml:"follow_mouse_focus"`
	BringFrontClick         bool                 `yaml:"bring_front_click" json:"bring_front_click" toml:"bring_front_click"`
	FloatsKeptAbove         bool                 `yaml:"floats_kept_above" json:"floats_kept_above" toml:"floats_kept_above"`
	CursorWarp              bool                 `yaml:"cursor_warp" json:"cursor_warp" toml:"cursor_warp"`
	AutoFullscreen          bool                 `yaml:"auto_fullscreen" json:"auto_fullscreen" toml:"auto_fullscreen"`
	FocusOnWindowActivation string               `yaml:"focus_on_window_activation" json:"focus_on_window_activation" toml:"focus_on_window_activation"`
	ReconfigureScreens      bool                 `yaml:"reconfigure_screens" json:"reconfigure_screens" toml:"reconfigure_screens"`
	AutoMinimize            bool                 `yaml:"auto_minimize" json:"auto_minimize" toml:"auto_minimize"`
	WLInputRules            map[string]InputRule `yaml:"wl_input_rules,omitempty" json:"wl_input_rules,omitempty" toml:"wl_input_rules,omitempty"`
	WLXCursorTheme          string               `yaml:"wl_xcursor_theme,omitempty" json:"wl_xcursor_theme,omitempty" toml:"wl_xcursor_theme,omitempty"`
	WLXCursorSize           int                  `yaml:"wl_xcursor_size" json:"wl_xcursor_size" toml:"wl_xcursor_size"`
	WMName                  string               `yaml:"wmname" json:"wmname" toml:"wmname"`
}
