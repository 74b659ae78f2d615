package wmconf

import (
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vhal/tilerc/hook"
	"github.com/vhal/tilerc/settings"
)

func testEnv() Env {
	s := settings.Default()
	s.Autostart = "/home/test/.config/qtile/autostart.sh"
	s.WallpaperPath = "/home/test/Pictures/wallpaper.png"
	return Env{
		Settings:          s,
		Terminal:          "alacritty",
		Backend:           func() string { return "x11" },
		DefaultFloatRules: DefaultFloatRules(),
		Spawn:             func([]string) error { return nil },
	}
}

func TestBuildIsValid(t *testing.T) {
	assert.NoError(t, Validate(Build(testEnv())))
}

func TestPaletteColorsWellFormed(t *testing.T) {
	for i, c := range Dracula() {
		_, err := ParseColor(c)
		assert.NoError(t, err, "colors[%d]", i)
	}
}

func TestEveryColorIndexInRange(t *testing.T) {
	cfg := Build(testEnv())
	n := 0
	walkColors(reflect.ValueOf(cfg), "", map[uintptr]bool{}, func(path string, c Color) {
		if c.FromPalette {
			n++
			assert.True(t, c.Index >= 0 && c.Index < len(cfg.Colors), "%s uses index %d", path, c.Index)
			assert.Equal(t, cfg.Colors[c.Index], c.Value, path)
		}
	})
	assert.Positive(t, n, "the configuration references the palette")
}

func TestGroups(t *testing.T) {
	cfg := Build(testEnv())
	var names []string
	for _, g := range cfg.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, names)

	for _, g := range cfg.Groups {
		var bound []Key
		for _, k := range cfg.Keys {
			if k.Key == g.Name {
				bound = append(bound, k)
			}
		}
		require.Len(t, bound, 2, "group %s", g.Name)
		assert.Equal(t, []string{"mod4"}, bound[0].Modifiers)
		assert.Equal(t, []string{"mod4", "shift"}, bound[1].Modifiers)
		assert.Equal(t, fmt.Sprintf("group[%s].toscreen()", g.Name), bound[0].Command.String())
		assert.Equal(t, fmt.Sprintf("window.togroup(%s, switch_group=true)", g.Name), bound[1].Command.String())
	}
}

func TestVTBindings(t *testing.T) {
	backend := "x11"
	calls := 0
	env := testEnv()
	env.Backend = func() string {
		calls++
		return backend
	}
	cfg := Build(env)
	assert.Zero(t, calls, "the backend is not consulted while building")

	var vts []Key
	for _, k := range cfg.Keys {
		if k.Command.Name == "change_vt" {
			vts = append(vts, k)
		}
	}
	require.Len(t, vts, 7)
	for i, k := range vts {
		assert.Equal(t, []string{"control", "mod1"}, k.Modifiers)
		assert.Equal(t, fmt.Sprintf("f%d", i+1), k.Key)
		assert.Equal(t, []any{i + 1}, k.Command.Args)
		assert.True(t, k.Command.Guarded)
		assert.False(t, k.Command.Applicable(), "no-op outside wayland")
	}

	backend = "wayland"
	assert.True(t, vts[0].Command.Applicable())
	assert.Equal(t, 8, calls)
}

func TestVTBindingWithoutBackend(t *testing.T) {
	env := testEnv()
	env.Backend = nil
	for _, k := range Build(env).Keys {
		if k.Command.Name == "change_vt" {
			assert.NotPanics(t, func() { assert.False(t, k.Command.Applicable()) })
		}
	}
}

func TestKeyCount(t *testing.T) {
	// 24 fixed bindings, 7 VT bindings, 2 per group.
	assert.Len(t, Build(testEnv()).Keys, 24+7+2*9)
}

func TestFixedBindings(t *testing.T) {
	cfg := Build(testEnv())
	find := func(key string, mods ...string) Key {
		for _, k := range cfg.Keys {
			if k.Key == key && slices.Equal(k.Modifiers, mods) {
				return k
			}
		}
		t.Fatalf("no binding for %v+%s", mods, key)
		return Key{}
	}
	assert.Equal(t, "spawn(alacritty)", find("Return", "mod4").Command.String())
	assert.Equal(t, "layout.toggle_split()", find("Return", "mod4", "shift").Command.String())
	assert.Equal(t, "spawn(ulauncher)", find("r", "mod4").Command.String())
	assert.Equal(t, "reload_config()", find("r", "mod4", "shift").Command.String())
	assert.Equal(t, "shutdown()", find("q", "mod4", "shift").Command.String())
	assert.Equal(t, "window.kill()", find("w", "mod4").Command.String())
	assert.Equal(t, "spawn(flameshot gui)", find("Print").Command.String())
	assert.Equal(t, "layout.grow_left()", find("h", "mod4", "control").Command.String())
	for _, k := range cfg.Keys {
		assert.NotEmpty(t, k.Desc, "%v+%s", k.Modifiers, k.Key)
	}
}

func TestModSetting(t *testing.T) {
	env := testEnv()
	env.Settings.Mod = "mod1"
	cfg := Build(env)
	assert.Equal(t, []string{"mod1"}, cfg.Keys[0].Modifiers)
	assert.Equal(t, []string{"mod1"}, cfg.Mouse[0].Modifiers)
}

func TestLayouts(t *testing.T) {
	cfg := Build(testEnv())
	require.Len(t, cfg.Layouts, 1)
	l := cfg.Layouts[0]
	assert.Equal(t, "columns", l.Name)
	assert.Equal(t, "#50FA7B", l.BorderFocus.Value)
	assert.Equal(t, "#6272A4", l.BorderNormal.Value)
	assert.Equal(t, 2, l.BorderWidth)
	assert.Equal(t, 3, l.NumColumns)
	assert.Equal(t, 4, l.Margin)
}

func TestScreenWidgetOrder(t *testing.T) {
	cfg := Build(testEnv())
	require.Len(t, cfg.Screens, 1)
	s := cfg.Screens[0]
	require.NotNil(t, s.Top)
	assert.Nil(t, s.Bottom)
	assert.Equal(t, "/home/test/Pictures/wallpaper.png", s.Wallpaper)
	assert.Equal(t, "fill", s.WallpaperMode)
	assert.Equal(t, 24, s.Top.Size)
	assert.Equal(t, [4]int{5, 5, 5, 5}, s.Top.Margin)
	assert.Equal(t, "00000000", s.Top.Background.Value)

	var kinds []string
	for _, w := range s.Top.Widgets {
		kinds = append(kinds, w.Kind())
	}
	assert.Equal(t, []string{
		KindSpacer, KindSep, KindGroupBox, KindSep, KindSpacer, KindSep, KindVolume,
		KindSep, KindSep, KindSep, KindClock, KindSep, KindSep, KindStatusNotifier, KindSystray,
	}, kinds)
}

func TestDecorationShared(t *testing.T) {
	widgets := Build(testEnv()).Screens[0].Top.Widgets
	var shared *RectDecoration
	decorated := 0
	for _, w := range widgets {
		for _, d := range w.Style().Decorations {
			decorated++
			if shared == nil {
				shared = d
			}
			assert.Same(t, shared, d)
		}
	}
	require.NotNil(t, shared)
	assert.Equal(t, 11, decorated)
	assert.Equal(t, 12, shared.Radius)
	assert.Equal(t, "#00000000", shared.Colour.Value)
}

func TestVolumeCallback(t *testing.T) {
	for _, w := range Build(testEnv()).Screens[0].Top.Widgets {
		if v, ok := w.(*Volume); ok {
			argv, ok := v.MouseCallbacks["Button1"].IsSpawn()
			require.True(t, ok)
			assert.Equal(t, []string{"pavucontrol"}, argv)
			return
		}
	}
	t.Fatal("no volume widget")
}

func TestFloatRules(t *testing.T) {
	env := testEnv()
	cfg := Build(env)
	rules := cfg.FloatingLayout.FloatRules
	assert.Len(t, rules, len(env.DefaultFloatRules)+6)
	assert.Equal(t, env.DefaultFloatRules, rules[:len(env.DefaultFloatRules)])
	assert.Equal(t, Match{Title: "pinentry"}, rules[len(rules)-1])

	env.DefaultFloatRules = nil
	assert.Len(t, Build(env).FloatingLayout.FloatRules, 6)
}

func TestFloatRulesDoNotAliasDefaults(t *testing.T) {
	env := testEnv()
	defaults := make([]Match, 2, 10)
	copy(defaults, env.DefaultFloatRules)
	env.DefaultFloatRules = defaults
	Build(env)
	assert.Equal(t, Match{}, defaults[:3][2], "Build must not write into the caller's backing array")
}

func TestMouse(t *testing.T) {
	mouse := Build(testEnv()).Mouse
	require.Len(t, mouse, 3)
	assert.Equal(t, MouseDrag, mouse[0].Kind)
	assert.Equal(t, "Button1", mouse[0].Button)
	assert.Equal(t, "window.set_position_floating()", mouse[0].Command.String())
	assert.Equal(t, "window.get_position()", mouse[0].Start.String())
	assert.Equal(t, "Button3", mouse[1].Button)
	assert.Equal(t, "window.get_size()", mouse[1].Start.String())
	assert.Equal(t, MouseClick, mouse[2].Kind)
	assert.Nil(t, mouse[2].Start)
}

func TestFlags(t *testing.T) {
	f := Build(testEnv()).Flags
	assert.True(t, f.FollowMouseFocus)
	assert.False(t, f.BringFrontClick)
	assert.True(t, f.FloatsKeptAbove)
	assert.False(t, f.CursorWarp)
	assert.True(t, f.AutoFullscreen)
	assert.Equal(t, "smart", f.FocusOnWindowActivation)
	assert.True(t, f.ReconfigureScreens)
	assert.True(t, f.AutoMinimize)
	assert.Nil(t, f.WLInputRules)
	assert.Empty(t, f.WLXCursorTheme)
	assert.Equal(t, 24, f.WLXCursorSize)
	assert.Equal(t, "LG3D", f.WMName)
	assert.NotNil(t, f.DGroupsAppRules)
	assert.Empty(t, f.DGroupsAppRules)
}

func TestWidgetDefaults(t *testing.T) {
	cfg := Build(testEnv())
	assert.Equal(t, "Ubuntu Nerd", cfg.WidgetDefaults.Font)
	assert.Equal(t, 14, cfg.WidgetDefaults.FontSize)
	assert.Equal(t, "#F8F8F2", cfg.WidgetDefaults.Background.Value)
	assert.Equal(t, cfg.WidgetDefaults, cfg.ExtensionDefaults)
}

func TestAutostartHook(t *testing.T) {
	var started [][]string
	env := testEnv()
	env.Spawn = func(argv []string) error {
		started = append(started, argv)
		return nil
	}
	cfg := Build(env)
	assert.Empty(t, started, "nothing is launched while building")

	require.Len(t, cfg.Hooks, 1)
	assert.Equal(t, hook.StartupOnce, cfg.Hooks[0].Event)

	r := hook.NewRegistry()
	r.Subscribe(cfg.Hooks...)
	require.NoError(t, r.Fire(hook.Startup))
	require.NoError(t, r.Fire(hook.StartupOnce))
	require.NoError(t, r.Fire(hook.StartupOnce))
	assert.Equal(t, [][]string{{"/home/test/.config/qtile/autostart.sh"}}, started)
}

func TestBuildIsDeterministic(t *testing.T) {
	a, b := Build(testEnv()), Build(testEnv())

	ya, err := yaml.Marshal(a)
	require.NoError(t, err)
	yb, err := yaml.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ya), string(yb))
	assert.Equal(t, a.Flags, b.Flags)

	assert.NotSame(t, a.Screens[0].Top, b.Screens[0].Top, "each build makes fresh values")
}

func TestSpawnCommandsUseSettings(t *testing.T) {
	env := testEnv()
	env.Terminal = "kitty -1"
	for _, k := range Build(env).Keys {
		if k.Desc == "Launch terminal" {
			argv, ok := k.Command.IsSpawn()
			require.True(t, ok)
			assert.Equal(t, []string{"kitty", "-1"}, argv)
			return
		}
	}
	t.Fatal("no terminal binding")
}
