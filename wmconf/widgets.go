package wmconf

import "github.com/vhal/tilerc/lazy"

// Widget kinds.
const (
	KindSpacer         = "spacer"
	KindSep            = "separator"
	KindGroupBox       = "groupbox"
	KindVolume         = "volume"
	KindClock          = "clock"
	KindStatusNotifier = "statusnotifier"
	KindSystray        = "systray"
)

// Widget is one entry on a bar.
type Widget interface {
	Kind() string
	Style() Base
}

// RectDecoration draws a rounded rectangle behind a widget. Decorations are
// immutable, so one value is shared by every widget that uses it.
type RectDecoration struct {
	UseWidgetBackground bool  `yaml:"use_widget_background" json:"use_widget_background" toml:"use_widget_background"`
	Radius              int   `yaml:"radius" json:"radius" toml:"radius"`
	Filled              bool  `yaml:"filled" json:"filled" toml:"filled"`
	Colour              Color `yaml:"colour" json:"colour" toml:"colour"`
	Group               bool  `yaml:"group" json:"group" toml:"group"`
	Clip                bool  `yaml:"clip" json:"clip" toml:"clip"`
}

// Base holds what every widget has in common.
type Base struct {
	Type        string            `yaml:"type" json:"type" toml:"type"`
	Background  Color             `yaml:"background,omitempty" json:"background,omitzero" toml:"background,omitempty"`
	Foreground  Color             `yaml:"foreground,omitempty" json:"foreground,omitzero" toml:"foreground,omitempty"`
	Padding     int               `yaml:"padding,omitempty" json:"padding,omitempty" toml:"padding,omitempty"`
	Decorations []*RectDecoration `yaml:"decorations,omitempty" json:"decorations,omitempty" toml:"decorations,omitempty"`
}

func (b Base) Kind() string { return b.Type }
func (b Base) Style() Base  { return b }

// WidgetDefaults apply to every widget that does not override them.
type WidgetDefaults struct {
	Font       string `yaml:"font" json:"font" toml:"font"`
	FontSize   int    `yaml:"fontsize" json:"fontsize" toml:"fontsize"`
	Padding    int    `yaml:"padding" json:"padding" toml:"padding"`
	Background Color  `yaml:"background" json:"background" toml:"background"`
}

type Spacer struct {
	Base `yaml:",inline"`
}

type Sep struct {
	Base      `yaml:",inline"`
	LineWidth int `yaml:"linewidth" json:"linewidth" toml:"linewidth"`
}

type GroupBox struct {
	Base                     `yaml:",inline"`
	Font                     string `yaml:"font" json:"font" toml:"font"`
	FontSize                 int    `yaml:"fontsize" json:"fontsize" toml:"fontsize"`
	Markup                   bool   `yaml:"markup" json:"markup" toml:"markup"`
	MarginX                  int    `yaml:"margin_x" json:"margin_x" toml:"margin_x"`
	MarginY                  int    `yaml:"margin_y" json:"margin_y" toml:"margin_y"`
	PaddingX                 int    `yaml:"padding_x" json:"padding_x" toml:"padding_x"`
	PaddingY                 int    `yaml:"padding_y" json:"padding_y" toml:"padding_y"`
	BorderWidth              int    `yaml:"borderwidth" json:"borderwidth" toml:"borderwidth"`
	Active                   Color  `yaml:"active" json:"active" toml:"active"`
	Inactive                 Color  `yaml:"inactive" json:"inactive" toml:"inactive"`
	Rounded                  bool   `yaml:"rounded" json:"rounded" toml:"rounded"`
	HighlightColor           Color  `yaml:"highlight_color" json:"highlight_color" toml:"highlight_color"`
	HighlightMethod          string `yaml:"highlight_method" json:"highlight_method" toml:"highlight_method"`
	ThisCurrentScreenBorder  Color  `yaml:"this_current_screen_border" json:"this_current_screen_border" toml:"this_current_screen_border"`
	ThisScreenBorder         Color  `yaml:"this_screen_border" json:"this_screen_border" toml:"this_screen_border"`
	OtherCurrentScreenBorder Color  `yaml:"other_current_screen_border" json:"other_current_screen_border" toml:"other_current_screen_border"`
	OtherScreenBorder        Color  `yaml:"other_screen_border" json:"other_screen_border" toml:"other_screen_border"`
}

type Volume struct {
	Base           `yaml:",inline"`
	Fmt            string                  `yaml:"fmt" json:"fmt" toml:"fmt"`
	MouseCallbacks map[string]lazy.Command `yaml:"mouse_callbacks,omitempty" json:"mouse_callbacks,omitempty" toml:"mouse_callbacks,omitempty"`
}

type Clock struct {
	Base   `yaml:",inline"`
	Format string `yaml:"format" json:"format" toml:"format"`
}

// StatusNotifier is the tray for StatusNotifierItem applications, with the
// menu styling of the extended variant.
type StatusNotifier struct {
	Base            `yaml:",inline"`
	IconSize        int    `yaml:"icon_size" json:"icon_size" toml:"icon_size"`
	HighlightColour Color  `yaml:"highlight_colour" json:"highlight_colour" toml:"highlight_colour"`
	MenuBackground  Color  `yaml:"menu_background" json:"menu_background" toml:"menu_background"`
	MenuFont        string `yaml:"menu_font" json:"menu_font" toml:"menu_font"`
	MenuFontSize    int    `yaml:"menu_fontsize" json:"menu_fontsize" toml:"menu_fontsize"`
	MenuForeground  Color  `yaml:"menu_foreground" json:"menu_foreground" toml:"menu_foreground"`
}

// Systray is the XEmbed system tray. It only works on X11.
type Systray struct {
	Base     `yaml:",inline"`
	IconSize int `yaml:"icon_size" json:"icon_size" toml:"icon_size"`
}
