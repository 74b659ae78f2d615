// Package lazy describes commands that are bound now and run later, when a key
// or pointer binding fires inside the window manager.
package lazy

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Command is a call on a window manager object, such as "layout.left()" or
// "group[3].toscreen()". The zero Object is the root object.
type Command struct {
	Object string         `yaml:"object,omitempty" json:"object,omitempty" toml:"object,omitempty"`
	Name   string         `yaml:"name" json:"name" toml:"name"`
	Args   []any          `yaml:"args,omitempty" json:"args,omitempty" toml:"args,omitempty"`
	Kwargs map[string]any `yaml:"kwargs,omitempty" json:"kwargs,omitempty" toml:"kwargs,omitempty"`

	// Guarded reports whether a predicate gates the command. It is exported
	// for printing only; the predicate itself is not serializable.
	Guarded bool `yaml:"guarded,omitempty" json:"guarded,omitempty" toml:"guarded,omitempty"`

	when func() bool
}

// SpawnName is the command name the host runs locally instead of delegating.
const SpawnName = "spawn"

func call(object, name string, args ...any) Command {
	return Command{Object: object, Name: name, Args: args}
}

// Layout calls a method on the current layout.
func Layout(name string, args ...any) Command { return call("layout", name, args...) }

// Window calls a method on the focused window.
func Window(name string, args ...any) Command { return call("window", name, args...) }

// Core calls a method on the backend.
func Core(name string, args ...any) Command { return call("core", name, args...) }

// Group calls a method on the named group.
func Group(label, name string, args ...any) Command {
	return call("group["+label+"]", name, args...)
}

// Root calls a method on the window manager itself.
func Root(name string, args ...any) Command { return call("", name, args...) }

// Spawn launches cmd, split on whitespace, without waiting for it.
func Spawn(cmd string) Command { return Root(SpawnName, cmd) }

// NextLayout, ReloadConfig and Shutdown are root commands with no arguments.
func NextLayout() Command   { return Root("next_layout") }
func ReloadConfig() Command { return Root("reload_config") }
func Shutdown() Command     { return Root("shutdown") }

// With returns a copy of c with a keyword argument set.
func (c Command) With(key string, value any) Command {
	kw := make(map[string]any, len(c.Kwargs)+1)
	for k, v := range c.Kwargs {
		kw[k] = v
	}
	kw[key] = value
	c.Kwargs = kw
	return c
}

// When returns a copy of c that only applies while pred returns true. pred
// is not called here.
func (c Command) When(pred func() bool) Command {
	c.when = pred
	c.Guarded = pred != nil
	return c
}

// Applicable evaluates the guard. An unguarded command always applies, and a
// guard that panics is treated as false.
func (c Command) Applicable() (ok bool) {
	if c.when == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return c.when()
}

// IsSpawn reports whether c is a spawn command, returning its argv.
func (c Command) IsSpawn() ([]string, bool) {
	if c.Object != "" || c.Name != SpawnName || len(c.Args) != 1 {
		return nil, false
	}
	s, ok := c.Args[0].(string)
	if !ok {
		return nil, false
	}
	argv := strings.Fields(s)
	return argv, len(argv) > 0
}

// String renders c the way it reads in a configuration file, e.g.
// "window.togroup(1, switch_group=true)".
func (c Command) String() string {
	var b strings.Builder
	if c.Object != "" {
		b.WriteString(c.Object)
		b.WriteByte('.')
	}
	b.WriteString(c.Name)
	b.WriteByte('(')
	parts := make([]string, 0, len(c.Args)+len(c.Kwargs))
	for _, a := range c.Args {
		parts = append(parts, fmt.Sprint(a))
	}
	for _, k := range slices.Sorted(maps.Keys(c.Kwargs)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.Kwargs[k]))
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteByte(')')
	if c.Guarded {
		b.WriteString(" [guarded]")
	}
	return b.String()
}
