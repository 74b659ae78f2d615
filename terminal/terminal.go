// Package terminal finds an installed terminal emulator.
package terminal

import (
	"os"
	"strings"
)

// Candidates are tried in order after $TERMINAL.
var Candidates = []string{
	"roxterm",
	"sakura",
	"hyper",
	"alacritty",
	"terminator",
	"termite",
	"gnome-terminal",
	"konsole",
	"xfce4-terminal",
	"lxterminal",
	"mate-terminal",
	"kitty",
	"yakuake",
	"tilda",
	"guake",
	"eterm",
	"st",
	"urxvt",
	"wezterm",
	"xterm",
	"x-terminal-emulator",
}

// LookPathFunc resolves a program name, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Guess returns the terminal to launch: $TERMINAL if it resolves, otherwise
// the first resolvable candidate, otherwise "".
func Guess(lookPath LookPathFunc) string {
	return guess(os.Getenv("TERMINAL"), lookPath)
}

func guess(preferred string, lookPath LookPathFunc) string {
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		if fields := strings.Fields(preferred); len(fields) > 0 {
			if _, err := lookPath(fields[0]); err == nil {
				return preferred
			}
		}
	}
	for _, name := range Candidates {
		if _, err := lookPath(name); err == nil {
			return name
		}
	}
	return ""
}
