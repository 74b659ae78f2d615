package wmconf

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/vhal/tilerc/keysym"
	"github.com/vhal/tilerc/lazy"
)

// Validate runs the checks the host performs when it loads a configuration
// and returns every defect found, joined. Each defect is an *Error.
func Validate(cfg *Config) error {
	var errs []error
	add := func(e *Error) { errs = append(errs, e) }

	for i, c := range cfg.Colors {
		if _, err := ParseColor(c); err != nil {
			e := newError(ErrColorInvalid, fmt.Sprintf("colors[%d]", i), "malformed color %q", c)
			e.Wrapped = err
			add(e)
		}
	}
	walkColors(reflect.ValueOf(cfg), "", map[uintptr]bool{}, func(path string, c Color) {
		switch {
		case c.FromPalette && (!c.Resolved() || c.Index < 0 || c.Index >= len(cfg.Colors)):
			add(newError(ErrColorIndex, path, "palette index %d out of range [0, %d)", c.Index, len(cfg.Colors)))
		case c.FromPalette:
			// Palette entries were checked above.
		case c.Value != "":
			if _, err := ParseColor(c.Value); err != nil {
				e := newError(ErrColorInvalid, path, "malformed color %q", c.Value)
				e.Wrapped = err
				add(e)
			}
		}
	})

	validateKeys(cfg.Keys, add)
	validateMouse(cfg.Mouse, add)

	seen := make(map[string]bool, len(cfg.Groups))
	for i, g := range cfg.Groups {
		field := fmt.Sprintf("groups[%d]", i)
		switch {
		case g.Name == "":
			add(newError(ErrGroupInvalid, field, "empty group name"))
		case seen[g.Name]:
			add(newError(ErrGroupInvalid, field, "duplicate group %q", g.Name))
		}
		seen[g.Name] = true
	}

	if len(cfg.Layouts) == 0 {
		add(newError(ErrLayoutInvalid, "layouts", "no layouts"))
	}
	for i, l := range cfg.Layouts {
		field := fmt.Sprintf("layouts[%d]", i)
		if l.Name == "" {
			add(newError(ErrLayoutInvalid, field, "empty layout name"))
		}
		if l.BorderWidth < 0 || l.Margin < 0 {
			add(newError(ErrLayoutInvalid, field, "negative border width or margin"))
		}
		if l.Name == "columns" && l.NumColumns < 1 {
			add(newError(ErrLayoutInvalid, field, "num_columns must be at least 1, got %d", l.NumColumns))
		}
	}

	for i, s := range cfg.Screens {
		bars := []struct {
			side string
			bar  *Bar
		}{{"top", s.Top}, {"bottom", s.Bottom}}
		for _, sb := range bars {
			b := sb.bar
			if b == nil {
				continue
			}
			field := fmt.Sprintf("screens[%d].%s", i, sb.side)
			if b.Size <= 0 {
				add(newError(ErrScreenInvalid, field, "bar size must be positive, got %d", b.Size))
			}
			for j, w := range b.Widgets {
				if w == nil || w.Kind() == "" {
					add(newError(ErrScreenInvalid, fmt.Sprintf("%s.widgets[%d]", field, j), "widget without a kind"))
				}
			}
		}
	}

	return errors.Join(errs...)
}

type chord struct {
	mods   uint16
	detail uint32
}

func validateKeys(keys []Key, add func(*Error)) {
	seen := make(map[chord]int, len(keys))
	for i, k := range keys {
		field := fmt.Sprintf("keys[%d]", i)
		mods, err := keysym.Modifiers(k.Modifiers)
		if err != nil {
			e := newError(ErrModifierUnknown, field, "bad modifiers %v", k.Modifiers)
			e.Wrapped = err
			add(e)
			continue
		}
		ks, err := keysym.Lookup(k.Key)
		if err != nil {
			e := newError(ErrKeyUnknown, field, "bad key %q", k.Key)
			e.Wrapped = err
			add(e)
			continue
		}
		validateCommand(field+".command", k.Command, add)
		c := chord{mods, uint32(ks)}
		if j, ok := seen[c]; ok {
			add(newError(ErrChordDuplicate, field, "%s also bound by keys[%d]", chordName(k.Modifiers, k.Key), j))
			continue
		}
		seen[c] = i
	}
}

func validateMouse(mouse []Mouse, add func(*Error)) {
	seen := make(map[chord]int, len(mouse))
	for i, m := range mouse {
		field := fmt.Sprintf("mouse[%d]", i)
		mods, err := keysym.Modifiers(m.Modifiers)
		if err != nil {
			e := newError(ErrModifierUnknown, field, "bad modifiers %v", m.Modifiers)
			e.Wrapped = err
			add(e)
			continue
		}
		b, err := keysym.Button(m.Button)
		if err != nil {
			e := newError(ErrButtonUnknown, field, "bad button %q", m.Button)
			e.Wrapped = err
			add(e)
			continue
		}
		validateCommand(field+".command", m.Command, add)
		c := chord{mods, uint32(b)}
		if j, ok := seen[c]; ok {
			add(newError(ErrChordDuplicate, field, "%s also bound by mouse[%d]", chordName(m.Modifiers, m.Button), j))
			continue
		}
		seen[c] = i
	}
}

// validateCommand rejects commands with no name. A spawn with an empty
// program is allowed: an unresolved terminal is reported by doctor and the
// binding does nothing when pressed.
func validateCommand(field string, c lazy.Command, add func(*Error)) {
	if c.Name == "" {
		add(newError(ErrCommandInvalid, field, "empty command"))
	}
}

func chordName(mods []string, key string) string {
	return strings.Join(append(slices.Clone(mods), key), "+")
}

var colorType = reflect.TypeOf(Color{})

// walkColors calls fn for every Color reachable from v. Pointers shared
// between widgets are visited once.
func walkColors(v reflect.Value, path string, visited map[uintptr]bool, fn func(string, Color)) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || visited[v.Pointer()] {
			return
		}
		visited[v.Pointer()] = true
		walkColors(v.Elem(), path, visited, fn)
	case reflect.Interface:
		if !v.IsNil() {
			walkColors(v.Elem(), path, visited, fn)
		}
	case reflect.Struct:
		if v.Type() == colorType {
			fn(path, v.Interface().(Color))
			return
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			p := path
			if !f.Anonymous {
				p = joinPath(path, fieldName(f))
			}
			walkColors(v.Field(i), p, visited, fn)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walkColors(v.Index(i), fmt.Sprintf("%s[%d]", path, i), visited, fn)
		}
	case reflect.Map:
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
		})
		for _, k := range keys {
			walkColors(v.MapIndex(k), fmt.Sprintf("%s[%v]", path, k), visited, fn)
		}
	}
}

func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("yaml"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
