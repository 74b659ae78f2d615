package wmconf

import (
	"fmt"

	"github.com/vhal/tilerc/hook"
	"github.com/vhal/tilerc/lazy"
	"github.com/vhal/tilerc/spawn"
)

const (
	// groupLabels are the workspaces, one per character, in display order.
	groupLabels = "123456789"

	// vtFirst and vtLast bound the virtual terminals reachable with
	// Control-Alt-F<n>. vtLast is exclusive.
	vtFirst = 1
	vtLast  = 8

	// wmName is reported to clients. Java toolkits misbehave under window
	// managers they do not recognize, and LG3D is on their list.
	wmName = "LG3D"

	launcher   = "ulauncher"
	screenshot = "flameshot gui"
	mixer      = "pavucontrol"
)

// Dracula returns the color table. Entries are referenced by index, so the
// order matters.
func Dracula() Palette {
	return Palette{
		"#282A36", // 0 background
		"#1c1f24", // 1 darker background
		"#F8F8F2", // 2 foreground
		"#FF5555", // 3 red
		"#50FA7B", // 4 green
		"#FFB86C", // 5 orange
		"#8BE9FD", // 6 cyan
		"#BD93F9", // 7 purple
		"#6272A4", // 8 comment
		"#BD93F9", // 9 purple
	}
}

// Build assembles the configuration. It performs no validation; see Validate.
func Build(env Env) *Config {
	s := env.Settings
	colors := Dracula()
	groups := buildGroups()

	cfg := &Config{
		Mod:      s.Mod,
		Terminal: env.Terminal,
		Colors:   colors,
		Groups:   groups,
		Keys:     buildKeys(s.Mod, env.Terminal, env.Backend, groups),
		Layouts: []Layout{{
			Name:         "columns",
			BorderFocus:  colors.Ref(4),
			BorderNormal: colors.Ref(8),
			BorderWidth:  2,
			NumColumns:   3,
			Margin:       4,
		}},
		FloatingLayout: Floating{
			BorderFocus:  colors.Ref(4),
			BorderNormal: colors.Ref(8),
			BorderWidth:  2,
			FloatRules:   buildFloatRules(env.DefaultFloatRules),
		},
		WidgetDefaults: WidgetDefaults{
			Font:       s.FontFamily,
			FontSize:   s.FontSize,
			Padding:    0,
			Background: colors.Ref(2),
		},
		Screens: []Screen{{
			Top:           buildBar(colors, s.FontFamily, s.BarSize),
			Wallpaper:     s.WallpaperPath,
			WallpaperMode: s.WallpaperMode,
		}},
		Mouse: buildMouse(s.Mod),
		Flags: Flags{
			DGroupsAppRules:         []string{},
			FollowMouseFocus:        true,
			BringFrontClick:         false,
			FloatsKeptAbove:         true,
			CursorWarp:              false,
			AutoFullscreen:          true,
			FocusOnWindowActivation: "smart",
			ReconfigureScreens:      true,
			AutoMinimize:            true,
			WLXCursorSize:           24,
			WMName:                  wmName,
		},
		Hooks: []hook.Hook{autostartHook(s.Autostart, env.Spawn)},
	}
	cfg.ExtensionDefaults = cfg.WidgetDefaults
	return cfg
}

func buildGroups() []Group {
	groups := make([]Group, 0, len(groupLabels))
	for _, r := range groupLabels {
		groups = append(groups, Group{Name: string(r)})
	}
	return groups
}

func buildKeys(mod, term string, backend func() string, groups []Group) []Key {
	m := []string{mod}
	ms := []string{mod, "shift"}
	mc := []string{mod, "control"}

	keys := []Key{
		// Switch between windows.
		{m, "h", lazy.Layout("left"), "Move focus to left"},
		{m, "l", lazy.Layout("right"), "Move focus to right"},
		{m, "j", lazy.Layout("down"), "Move focus down"},
		{m, "k", lazy.Layout("up"), "Move focus up"},
		{m, "space", lazy.Layout("next"), "Move window focus to other window"},

		// Move windows between columns, or up and down within a column.
		// Moving past the edge of the Columns layout makes a new column.
		{ms, "h", lazy.Layout("shuffle_left"), "Move window to the left"},
		{ms, "l", lazy.Layout("shuffle_right"), "Move window to the right"},
		{ms, "j", lazy.Layout("shuffle_down"), "Move window down"},
		{ms, "k", lazy.Layout("shuffle_up"), "Move window up"},

		// Growing toward the screen edge shrinks instead.
		{mc, "h", lazy.Layout("grow_left"), "Grow window to the left"},
		{mc, "l", lazy.Layout("grow_right"), "Grow window to the right"},
		{mc, "j", lazy.Layout("grow_down"), "Grow window down"},
		{mc, "k", lazy.Layout("grow_up"), "Grow window up"},
		{m, "n", lazy.Layout("normalize"), "Reset all window sizes"},

		{ms, "Return", lazy.Layout("toggle_split"), "Toggle between split and unsplit sides of stack"},
		{m, "Return", lazy.Spawn(term), "Launch terminal"},
		{m, "Tab", lazy.NextLayout(), "Toggle between layouts"},
		{m, "w", lazy.Window("kill"), "Kill focused window"},
		{m, "f", lazy.Window("toggle_fullscreen"), "Toggle fullscreen on the focused window"},
		{m, "t", lazy.Window("toggle_floating"), "Toggle floating on the focused window"},
		{ms, "r", lazy.ReloadConfig(), "Reload the config"},
		{ms, "q", lazy.Shutdown(), "Shutdown the window manager"},
		{m, "r", lazy.Spawn(launcher), "Spawn a command using a prompt widget"},
		{nil, "Print", lazy.Spawn(screenshot), "Flameshot Screenshot"},
	}

	// VT switching only means something on Wayland, and the backend is not
	// known until the host has started, so the check runs when the key is hit.
	onWayland := func() bool { return backend != nil && backend() == "wayland" }
	for vt := vtFirst; vt < vtLast; vt++ {
		keys = append(keys, Key{
			Modifiers: []string{"control", "mod1"},
			Key:       fmt.Sprintf("f%d", vt),
			Command:   lazy.Core("change_vt", vt).When(onWayland),
			Desc:      fmt.Sprintf("Switch to VT%d", vt),
		})
	}

	for _, g := range groups {
		keys = append(keys,
			Key{m, g.Name, lazy.Group(g.Name, "toscreen"),
				fmt.Sprintf("Switch to group %s", g.Name)},
			Key{ms, g.Name, lazy.Window("togroup", g.Name).With("switch_group", true),
				fmt.Sprintf("Switch to & move focused window to group %s", g.Name)},
		)
	}
	return keys
}

func buildMouse(mod string) []Mouse {
	m := []string{mod}
	getPosition := lazy.Window("get_position")
	getSize := lazy.Window("get_size")
	return []Mouse{
		{Kind: MouseDrag, Modifiers: m, Button: "Button1", Command: lazy.Window("set_position_floating"), Start: &getPosition},
		{Kind: MouseDrag, Modifiers: m, Button: "Button3", Command: lazy.Window("set_size_floating"), Start: &getSize},
		{Kind: MouseClick, Modifiers: m, Button: "Button2", Command: lazy.Window("bring_to_front")},
	}
}

// buildFloatRules appends the local exceptions to the host's defaults. Run
// xprop to see a client's WM_CLASS and WM_NAME.
func buildFloatRules(defaults []Match) []Match {
	rules := make([]Match, 0, len(defaults)+6)
	rules = append(rules, defaults...)
	return append(rules,
		Match{WMClass: "confirmreset"}, // gitk
		Match{WMClass: "makebranch"},   // gitk
		Match{WMClass: "maketag"},      // gitk
		Match{WMClass: "ssh-askpass"},  // ssh-askpass
		Match{Title: "branchdialog"},   // gitk
		Match{Title: "pinentry"},       // GPG key password entry
	)
}

func buildBar(colors Palette, font string, size int) *Bar {
	transparent := Literal("#00000000")
	decorations := []*RectDecoration{{
		UseWidgetBackground: true,
		Radius:              12,
		Filled:              true,
		Colour:              transparent,
		Group:               true,
		Clip:                true,
	}}

	sep := func(bg Color, padding int, decorated bool) *Sep {
		w := &Sep{Base: Base{Type: KindSep, Background: bg, Padding: padding}}
		if decorated {
			w.Decorations = decorations
		}
		return w
	}

	widgets := []Widget{
		&Spacer{Base{Type: KindSpacer, Background: transparent}},
		sep(colors.Ref(0), 9, true),
		&GroupBox{
			Base: Base{
				Type:        KindGroupBox,
				Foreground:  colors.Ref(2),
				Background:  colors.Ref(0),
				Decorations: decorations,
			},
			Font:                     font,
			FontSize:                 13,
			Markup:                   true,
			MarginY:                  4,
			MarginX:                  2,
			PaddingY:                 3,
			PaddingX:                 7,
			BorderWidth:              2,
			Active:                   colors.Ref(2),
			Inactive:                 Literal("#696969"),
			Rounded:                  false,
			HighlightColor:           colors.Ref(1),
			HighlightMethod:          "line",
			ThisCurrentScreenBorder:  colors.Ref(6),
			ThisScreenBorder:         colors.Ref(4),
			OtherCurrentScreenBorder: colors.Ref(6),
			OtherScreenBorder:        colors.Ref(4),
		},
		sep(colors.Ref(0), 9, true),
		&Spacer{Base{Type: KindSpacer, Background: transparent}},
		sep(colors.Ref(7), 9, true),
		&Volume{
			Base: Base{
				Type:        KindVolume,
				Foreground:  colors.Ref(0),
				Background:  colors.Ref(7),
				Padding:     5,
				Decorations: decorations,
			},
			Fmt: " \U000f057e   {}",
			MouseCallbacks: map[string]lazy.Command{
				"Button1": lazy.Spawn(mixer),
			},
		},
		sep(colors.Ref(7), 9, true),
		sep(transparent, 7, false),
		sep(colors.Ref(8), 9, true),
		&Clock{
			Base: Base{
				Type:        KindClock,
				Foreground:  colors.Ref(2),
				Background:  colors.Ref(8),
				Decorations: decorations,
			},
			Format: "   %I:%M %p ",
		},
		sep(colors.Ref(8), 9, true),
		&Sep{Base: Base{Type: KindSep, Foreground: transparent, Background: transparent, Padding: 4}},
		&StatusNotifier{
			Base: Base{
				Type:        KindStatusNotifier,
				Background:  colors.Ref(0),
				Padding:     1,
				Decorations: decorations,
			},
			IconSize: 16,
			// A darker shade of 51afef that renders closer to it.
			HighlightColour: Literal("308dcd"),
			MenuBackground:  Literal("282c34"),
			MenuFont:        "Ubuntu Bold",
			MenuFontSize:    11,
			MenuForeground:  Literal("dfdfdf"),
		},
		&Systray{
			Base: Base{
				Type:        KindSystray,
				Background:  colors.Ref(0),
				Padding:     1,
				Decorations: decorations,
			},
			IconSize: 16,
		},
	}

	return &Bar{
		Widgets:    widgets,
		Size:       size,
		Background: Literal("00000000"),
		Margin:     [4]int{5, 5, 5, 5},
	}
}

// autostartHook launches the autostart script, with no arguments, the first
// time the host starts. The script is not waited on.
func autostartHook(path string, start spawn.Func) hook.Hook {
	if start == nil {
		start = spawn.Start
	}
	return hook.Hook{
		Event: hook.StartupOnce,
		Name:  "autostart",
		Fn: func() error {
			return start([]string{path})
		},
	}
}
