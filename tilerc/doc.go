/*
Tilerc builds, checks and runs a tiling window manager configuration: the
keyboard and mouse bindings, nine workspaces, a columns layout, a single
screen with a rounded top bar, floating rules and a one-time autostart script.
The configuration itself is a plain value; tilerc is the tool for looking at
it and for driving an X display with it.


INSTALLATION

To install tilerc:
	1. Install Go (as per https://go.dev/doc/install or get it from your
	   distribution).
	2. Run "go install github.com/vhal/tilerc/tilerc@latest".


USAGE

"tilerc dump" prints the whole configuration as YAML. Pass --format json or
--format toml for other serializations. Colors print as their palette value.

"tilerc check" validates the configuration and then looks at the world
outside it: whether the wallpaper exists and is an image, whether the
autostart script is executable, and whether a terminal emulator was found.
Configuration errors make it exit non-zero; the other findings are warnings.

"tilerc keys" prints every key and mouse binding. Bindings marked [guarded]
only apply in some sessions; the Control-Alt-F1 through F7 bindings switch
virtual terminals under Wayland and do nothing under X11.

"tilerc palette" prints the color table with a sample of each color when
writing to a terminal.

"tilerc run" connects to $DISPLAY, grabs the bindings on the root window and
runs the autostart script once. Launcher, terminal and screenshot bindings are
started directly; every other command is logged for the window manager.
Mod-Shift-R reloads the settings without rerunning the autostart script, and
Mod-Shift-Q stops.

Pass -v, -vv or -vvv for more logging. Logs are also written to
$XDG_STATE_HOME/tilerc/tilerc.log.


CUSTOMIZATION

The values most people want to change live in a TOML file, by default
$XDG_CONFIG_HOME/tilerc/settings.toml:
	mod = "mod4"
	terminal = "alacritty"
	autostart = "~/.config/qtile/autostart.sh"

	[wallpaper]
	path = "~/Pictures/wallpaper.png"
	mode = "fill"

	[font]
	family = "Ubuntu Nerd"
	size = 14

	[bar]
	size = 24

Every key can also be set from the environment, e.g. TILERC_MOD=mod1 or
TILERC_WALLPAPER_PATH. When no terminal is set, $TERMINAL is used if it is
installed, and otherwise the first installed of a list of common terminals.

Anything else, such as the bindings, the bar widgets or the colors, is changed
by editing the wmconf package and re-installing.


DEVELOPMENT

"tilerc run" can be tried in a nested X server such as Xephyr:
	Xephyr :9 2>/dev/null &
	DISPLAY=:9 go run ./tilerc run -vv
*/
package main
