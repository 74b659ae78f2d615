package wmconf

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhal/tilerc/lazy"
)

func TestValidateOutOfRangeIndex(t *testing.T) {
	cfg := Build(testEnv())
	cfg.Layouts[0].BorderFocus = cfg.Colors.Ref(len(cfg.Colors))

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrColorIndex))

	defects := Defects(err)
	require.Len(t, defects, 1)
	assert.Equal(t, "layouts[0].border_focus", defects[0].Field)
	assert.Contains(t, defects[0].Error(), "palette index 10 out of range [0, 10)")
}

func TestValidateShrunkPalette(t *testing.T) {
	cfg := Build(testEnv())
	// Layout borders were resolved against the full palette; truncating it
	// afterwards leaves them dangling.
	cfg.Colors = cfg.Colors[:3]

	err := Validate(cfg)
	assert.True(t, HasCode(err, ErrColorIndex))
	fields := map[string]bool{}
	for _, d := range Defects(err) {
		fields[d.Field] = true
	}
	assert.True(t, fields["layouts[0].border_focus"])
	assert.True(t, fields["layouts[0].border_normal"])
	assert.False(t, fields["widget_defaults.background"], "index 2 is still in range")
}

func TestValidateMalformedColors(t *testing.T) {
	cfg := Build(testEnv())
	cfg.Colors[3] = "#GG0000"
	cfg.Screens[0].Top.Background = Literal("not-a-color")

	defects := Defects(Validate(cfg))
	require.Len(t, defects, 2)
	assert.Equal(t, ErrColorInvalid, defects[0].Code)
	assert.Equal(t, "colors[3]", defects[0].Field)
	assert.Equal(t, ErrColorInvalid, defects[1].Code)
	assert.Equal(t, "screens[0].top.background", defects[1].Field)
}

func TestValidateSharedDecorationReportedOnce(t *testing.T) {
	cfg := Build(testEnv())
	cfg.Screens[0].Top.Widgets[1].Style().Decorations[0].Colour = Literal("#12")

	defects := Defects(Validate(cfg))
	require.Len(t, defects, 1)
	assert.Equal(t, ErrColorInvalid, defects[0].Code)
}

func TestValidateKeys(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		code Code
	}{
		{"unknown modifier", Key{[]string{"hyper"}, "x", lazy.Layout("left"), "x"}, ErrModifierUnknown},
		{"unknown key", Key{[]string{"mod4"}, "nosuchkey", lazy.Layout("left"), "x"}, ErrKeyUnknown},
		{"duplicate chord", Key{[]string{"mod4"}, "h", lazy.Layout("right"), "dup"}, ErrChordDuplicate},
		{"empty command", Key{[]string{"mod4"}, "z", lazy.Command{}, "none"}, ErrCommandInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Build(testEnv())
			cfg.Keys = append(cfg.Keys, tt.key)
			err := Validate(cfg)
			assert.True(t, HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestValidateMouse(t *testing.T) {
	cfg := Build(testEnv())
	cfg.Mouse = append(cfg.Mouse,
		Mouse{Kind: MouseClick, Modifiers: []string{"mod4"}, Button: "Button9", Command: lazy.Window("kill")},
		Mouse{Kind: MouseClick, Modifiers: []string{"mod4"}, Button: "Button2", Command: lazy.Window("kill")},
	)
	err := Validate(cfg)
	assert.True(t, HasCode(err, ErrButtonUnknown))
	assert.True(t, HasCode(err, ErrChordDuplicate))
}

func TestValidateGroups(t *testing.T) {
	cfg := Build(testEnv())
	cfg.Groups = append(cfg.Groups, Group{Name: "3"}, Group{})

	defects := Defects(Validate(cfg))
	require.Len(t, defects, 2)
	assert.Equal(t, "groups[9]", defects[0].Field)
	assert.Equal(t, "groups[10]", defects[1].Field)
}

func TestValidateLayoutsAndBars(t *testing.T) {
	cfg := Build(testEnv())
	cfg.Layouts[0].NumColumns = 0
	cfg.Screens[0].Top.Size = 0
	err := Validate(cfg)
	assert.True(t, HasCode(err, ErrLayoutInvalid))
	assert.True(t, HasCode(err, ErrScreenInvalid))

	cfg.Layouts = nil
	assert.True(t, HasCode(Validate(cfg), ErrLayoutInvalid))
}

func TestValidateUnresolvedTerminal(t *testing.T) {
	env := testEnv()
	env.Terminal = ""
	cfg := Build(env)
	require.NoError(t, Validate(cfg))

	i := slices.IndexFunc(cfg.Keys, func(k Key) bool {
		return k.Key == "Return" && slices.Equal(k.Modifiers, []string{"mod4"})
	})
	require.GreaterOrEqual(t, i, 0)
	_, ok := cfg.Keys[i].Command.IsSpawn()
	assert.False(t, ok, "the terminal binding stays but has nothing to run")
}
