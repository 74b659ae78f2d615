// Package output renders configurations for people and for other programs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vhal/tilerc/wmconf"
)

// Format is a machine-readable serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat parses a --format value. The empty string means YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown format %q (want yaml, json or toml)", s)
}

// Print serializes v to w.
func Print(w io.Writer, v any, f Format) error {
	switch f {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown format %q", f)
}

// Styled reports whether f should get colored output.
func Styled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

func renderer(w io.Writer, styled bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if styled {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Chord renders modifiers and a key or button the way the key table shows
// them, e.g. "mod4+shift+h".
func Chord(mods []string, key string) string {
	if len(mods) == 0 {
		return key
	}
	return strings.Join(mods, "+") + "+" + key
}

// KeyTable prints every key and mouse binding of cfg.
func KeyTable(w io.Writer, cfg *wmconf.Config, styled bool) error {
	r := renderer(w, styled)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)
	guarded := cell.Foreground(paletteColor(cfg.Colors, 8))

	rows := make([][]string, 0, len(cfg.Keys)+len(cfg.Mouse))
	var isGuarded []bool
	for _, k := range cfg.Keys {
		rows = append(rows, []string{Chord(k.Modifiers, k.Key), k.Command.String(), k.Desc})
		isGuarded = append(isGuarded, k.Command.Guarded)
	}
	for _, m := range cfg.Mouse {
		rows = append(rows, []string{Chord(m.Modifiers, m.Button), m.Command.String(), string(m.Kind)})
		isGuarded = append(isGuarded, false)
	}

	border := lipgloss.HiddenBorder()
	if styled {
		border = lipgloss.RoundedBorder()
	}
	t := table.New().
		Border(border).
		BorderStyle(r.NewStyle().Foreground(paletteColor(cfg.Colors, 7))).
		Headers("CHORD", "COMMAND", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row >= 0 && row < len(isGuarded) && isGuarded[row]:
				return guarded
			}
			return cell
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func paletteColor(p wmconf.Palette, i int) lipgloss.TerminalColor {
	if c := p.Ref(i); c.Resolved() {
		return lipgloss.Color(c.Value)
	}
	return lipgloss.NoColor{}
}

// Swatches prints one line per palette entry with a sample of the color.
func Swatches(w io.Writer, p wmconf.Palette, styled bool) error {
	r := renderer(w, styled)
	for i, c := range p {
		sample := "      "
		if styled {
			sample = r.NewStyle().Background(lipgloss.Color(c)).Render(sample)
		}
		note := ""
		if _, err := wmconf.ParseColor(c); err != nil {
			note = "  invalid"
		}
		if _, err := fmt.Fprintf(w, "%2d  %-9s  %s%s\n", i, c, sample, note); err != nil {
			return err
		}
	}
	return nil
}
