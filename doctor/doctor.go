// Package doctor checks the files and programs a configuration points at.
// Nothing it finds stops the window manager from starting; findings are
// warnings for the user.
package doctor

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/vhal/tilerc/terminal"
	"github.com/vhal/tilerc/wmconf"
)

// Finding is the result of one check.
type Finding struct {
	Check  string `yaml:"check" json:"check" toml:"check"`
	OK     bool   `yaml:"ok" json:"ok" toml:"ok"`
	Detail string `yaml:"detail" json:"detail" toml:"detail"`
}

func (f Finding) String() string {
	status := "ok"
	if !f.OK {
		status = "warn"
	}
	return fmt.Sprintf("%-4s %-10s %s", status, f.Check, f.Detail)
}

// Wallpaper checks that path is an image the host can decode.
func Wallpaper(path string) Finding {
	f := Finding{Check: "wallpaper"}
	if path == "" {
		f.Detail = "no wallpaper configured"
		return f
	}
	fh, err := os.Open(path)
	if err != nil {
		f.Detail = err.Error()
		return f
	}
	defer fh.Close()
	cfg, format, err := image.DecodeConfig(fh)
	if err != nil {
		f.Detail = fmt.Sprintf("%s: %v", path, err)
		return f
	}
	f.OK = true
	f.Detail = fmt.Sprintf("%s (%s %dx%d)", path, format, cfg.Width, cfg.Height)
	return f
}

// Autostart checks that path is an executable regular file.
func Autostart(path string) Finding {
	f := Finding{Check: "autostart"}
	fi, err := os.Stat(path)
	switch {
	case err != nil:
		f.Detail = err.Error()
	case !fi.Mode().IsRegular():
		f.Detail = path + " is not a regular file"
	case fi.Mode().Perm()&0o111 == 0:
		f.Detail = path + " is not executable"
	default:
		f.OK = true
		f.Detail = path
	}
	return f
}

// Terminal checks that term is set and its program can be found.
func Terminal(term string, lookPath terminal.LookPathFunc) Finding {
	f := Finding{Check: "terminal"}
	fields := strings.Fields(term)
	if len(fields) == 0 {
		f.Detail = "no terminal emulator found; set $TERMINAL or terminal in the settings file"
		return f
	}
	p, err := lookPath(fields[0])
	if err != nil {
		f.Detail = err.Error()
		return f
	}
	f.OK = true
	f.Detail = p
	return f
}

// Run performs every check against cfg. autostart is the script the
// startup hook will launch.
func Run(cfg *wmconf.Config, autostart string, lookPath terminal.LookPathFunc) []Finding {
	findings := []Finding{
		Terminal(cfg.Terminal, lookPath),
		Autostart(autostart),
	}
	for _, s := range cfg.Screens {
		findings = append(findings, Wallpaper(s.Wallpaper))
	}
	return findings
}

// Failed counts the findings that are not OK.
func Failed(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if !f.OK {
			n++
		}
	}
	return n
}
