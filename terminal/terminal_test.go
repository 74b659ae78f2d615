package terminal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func installed(names ...string) LookPathFunc {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
}

func TestGuess(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		installed []string
		want      string
	}{
		{"env wins", "foot", []string{"foot", "xterm"}, "foot"},
		{"env with args", "kitty -1", []string{"kitty"}, "kitty -1"},
		{"env not installed", "foot", []string{"xterm"}, "xterm"},
		{"candidate order", "", []string{"xterm", "alacritty", "kitty"}, "alacritty"},
		{"nothing installed", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERMINAL", tt.env)
			assert.Equal(t, tt.want, Guess(installed(tt.installed...)))
		})
	}
}
