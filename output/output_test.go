package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vhal/tilerc/settings"
	"github.com/vhal/tilerc/wmconf"
)

func testConfig() *wmconf.Config {
	return wmconf.Build(wmconf.Env{
		Settings:          settings.Default(),
		Terminal:          "alacritty",
		Backend:           func() string { return "x11" },
		DefaultFloatRules: wmconf.DefaultFloatRules(),
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatYAML, "YAML": FormatYAML, "yml": FormatYAML, "json": FormatJSON, "toml": FormatTOML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, testConfig(), FormatYAML))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "mod4", doc["mod"])
	assert.Equal(t, "alacritty", doc["terminal"])
	assert.Contains(t, buf.String(), "wmname: LG3D")
	assert.Contains(t, buf.String(), "border_focus: '#50FA7B'")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, testConfig(), FormatJSON))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "mod4", doc["mod"])
	keys, ok := doc["keys"].([]any)
	require.True(t, ok)
	assert.Len(t, keys, 49)
}

func TestUnsetColorsOmitted(t *testing.T) {
	w := wmconf.Base{Type: "sep", Background: wmconf.Literal("#282A36")}
	for _, f := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Print(&buf, w, f))
		assert.Contains(t, buf.String(), "background", f)
		assert.Contains(t, buf.String(), "#282A36", f)
		assert.NotContains(t, buf.String(), "foreground", f)
	}
}

func TestPrintTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, testConfig().Flags, FormatTOML))
	assert.Contains(t, buf.String(), "LG3D")
	assert.Contains(t, buf.String(), "follow_mouse_focus = true")
}

func TestChord(t *testing.T) {
	assert.Equal(t, "Print", Chord(nil, "Print"))
	assert.Equal(t, "mod4+shift+h", Chord([]string{"mod4", "shift"}, "h"))
}

func TestKeyTablePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, KeyTable(&buf, testConfig(), false))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "CHORD")
	assert.Contains(t, out, "mod4+shift+3")
	assert.Contains(t, out, "window.togroup(3, switch_group=true)")
	assert.Contains(t, out, "control+mod1+f1")
	assert.Contains(t, out, "core.change_vt(1) [guarded]")
	assert.Contains(t, out, "mod4+Button1")

	// Header, blank border lines, 49 keys and 3 mouse bindings.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.GreaterOrEqual(t, len(lines), 1+49+3)
}

func TestSwatches(t *testing.T) {
	p := wmconf.Palette{"#282A36", "#nothex"}

	var plain bytes.Buffer
	require.NoError(t, Swatches(&plain, p, false))
	lines := strings.Split(strings.TrimRight(plain.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], " 0  #282A36"))
	assert.NotContains(t, lines[0], "invalid")
	assert.Contains(t, lines[1], "invalid")
	assert.NotContains(t, plain.String(), "\x1b[")

	var styled bytes.Buffer
	require.NoError(t, Swatches(&styled, p[:1], true))
	assert.Contains(t, styled.String(), "\x1b[")
}
