package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupWriter(t *testing.T) {
	state := useStateHome(t)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	SetupWriter(1, &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	l := For("test")
	l.Info().Msg("hello from test")
	l.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), "hello from test")
	assert.NotContains(t, buf.String(), "hidden")

	data, err := os.ReadFile(filepath.Join(state, "tilerc", "tilerc.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
}

// useStateHome points XDG_STATE_HOME at a fresh directory for the test.
func useStateHome(t *testing.T) string {
	t.Helper()
	state := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", state)
	xdg.Reload()
	return state
}

func TestFilePath(t *testing.T) {
	state := useStateHome(t)
	path, err := FilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(state, "tilerc", "tilerc.log"), path)
	assert.DirExists(t, filepath.Join(state, "tilerc"))
}
