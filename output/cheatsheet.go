package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vhal/tilerc/lazy"
	"github.com/vhal/tilerc/wmconf"
)

var sections = []string{"Focus and layout", "Windows", "Groups", "Programs", "Window manager", "Virtual terminals", "Mouse"}

func section(c lazy.Command) string {
	switch {
	case c.Object == "layout":
		return "Focus and layout"
	case c.Object == "window" && c.Name == "togroup", strings.HasPrefix(c.Object, "group["):
		return "Groups"
	case c.Object == "window":
		return "Windows"
	case c.Object == "core":
		return "Virtual terminals"
	}
	if _, ok := c.IsSpawn(); ok {
		return "Programs"
	}
	return "Window manager"
}

func mdCell(s string) string { return strings.ReplaceAll(s, "|", `\|`) }

// Cheatsheet renders the bindings of cfg as a Markdown document with one
// table per kind of command.
func Cheatsheet(cfg *wmconf.Config) string {
	rows := map[string][]string{}
	for _, k := range cfg.Keys {
		s := section(k.Command)
		rows[s] = append(rows[s], fmt.Sprintf("| `%s` | %s |", Chord(k.Modifiers, k.Key), mdCell(k.Desc)))
	}
	for _, m := range cfg.Mouse {
		rows["Mouse"] = append(rows["Mouse"], fmt.Sprintf("| `%s` | %s `%s` |", Chord(m.Modifiers, m.Button), m.Kind, mdCell(m.Command.String())))
	}

	var b strings.Builder
	b.WriteString("# Key bindings\n")
	fmt.Fprintf(&b, "\nMod is `%s`.\n", cfg.Mod)
	for _, s := range sections {
		if len(rows[s]) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n| Chord | Action |\n|---|---|\n", s)
		for _, r := range rows[s] {
			b.WriteString(r)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderMarkdown formats md for a terminal. Unstyled output is md itself.
func RenderMarkdown(md string, styled bool, width int) (string, error) {
	if !styled {
		return md, nil
	}
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
