// Package dispatch derives the host's lookup tables from a built
// configuration and fires the bound commands.
package dispatch

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/vhal/tilerc/keysym"
	"github.com/vhal/tilerc/lazy"
	"github.com/vhal/tilerc/spawn"
	"github.com/vhal/tilerc/wmconf"
)

// ignoredMods are lock-style modifiers that must not change what a chord
// means: Caps Lock and, on most keymaps, Num Lock.
const ignoredMods = xp.ModMaskLock | xp.ModMask2

// CleanMods strips the modifiers that do not take part in matching.
func CleanMods(state uint16) uint16 { return state &^ ignoredMods }

// KeyChord is a modifier mask and keysym.
type KeyChord struct {
	Mods   uint16
	Keysym xp.Keysym
}

// ButtonChord is a modifier mask and pointer button.
type ButtonChord struct {
	Mods   uint16
	Button xp.Button
}

// Table maps chords to bindings.
type Table struct {
	keys    map[KeyChord]wmconf.Key
	buttons map[ButtonChord]wmconf.Mouse
	order   []KeyChord
}

// NewTable resolves every key and mouse binding. Unknown names and
// duplicate chords are errors.
func NewTable(cfg *wmconf.Config) (*Table, error) {
	t := &Table{
		keys:    make(map[KeyChord]wmconf.Key, len(cfg.Keys)),
		buttons: make(map[ButtonChord]wmconf.Mouse, len(cfg.Mouse)),
	}
	for i, k := range cfg.Keys {
		mods, err := keysym.Modifiers(k.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
		ks, err := keysym.Lookup(k.Key)
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}
		c := KeyChord{mods, ks}
		if prev, ok := t.keys[c]; ok {
			return nil, fmt.Errorf("keys[%d]: chord %s already bound to %q", i, k.Key, prev.Desc)
		}
		t.keys[c] = k
		t.order = append(t.order, c)
	}
	for i, m := range cfg.Mouse {
		mods, err := keysym.Modifiers(m.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("mouse[%d]: %w", i, err)
		}
		b, err := keysym.Button(m.Button)
		if err != nil {
			return nil, fmt.Errorf("mouse[%d]: %w", i, err)
		}
		c := ButtonChord{mods, b}
		if _, ok := t.buttons[c]; ok {
			return nil, fmt.Errorf("mouse[%d]: chord %s already bound", i, m.Button)
		}
		t.buttons[c] = m
	}
	return t, nil
}

// KeyChords lists the key chords in configuration order.
func (t *Table) KeyChords() []KeyChord {
	return append([]KeyChord(nil), t.order...)
}

// ButtonChords lists the pointer chords.
func (t *Table) ButtonChords() []ButtonChord {
	out := make([]ButtonChord, 0, len(t.buttons))
	for c := range t.buttons {
		out = append(out, c)
	}
	return out
}

// Key looks up a key press. state is the raw modifier state of the event.
func (t *Table) Key(state uint16, ks xp.Keysym) (wmconf.Key, bool) {
	k, ok := t.keys[KeyChord{CleanMods(state), ks}]
	return k, ok
}

// Button looks up a pointer press.
func (t *Table) Button(state uint16, b xp.Button) (wmconf.Mouse, bool) {
	m, ok := t.buttons[ButtonChord{CleanMods(state), b}]
	return m, ok
}

// Executor runs commands on behalf of the host.
type Executor interface {
	Execute(cmd lazy.Command) error
}

// Fire evaluates cmd's guard and, if it applies, hands it to ex. It reports
// whether the command ran. A command whose guard is false is a no-op.
func Fire(cmd lazy.Command, ex Executor) (bool, error) {
	if !cmd.Applicable() {
		return false, nil
	}
	if err := ex.Execute(cmd); err != nil {
		return true, fmt.Errorf("%s: %w", cmd, err)
	}
	return true, nil
}

// FireKey looks up and fires the binding for a key press.
func (t *Table) FireKey(state uint16, ks xp.Keysym, ex Executor) (bool, error) {
	k, ok := t.Key(state, ks)
	if !ok {
		return false, nil
	}
	return Fire(k.Command, ex)
}

// Local executes spawn commands itself and logs every other command as
// belonging to the window manager.
type Local struct {
	Spawn spawn.Func
	Log   zerolog.Logger
}

func (l Local) Execute(cmd lazy.Command) error {
	argv, ok := cmd.IsSpawn()
	if !ok && cmd.Object == "" && cmd.Name == lazy.SpawnName {
		l.Log.Warn().Str("command", cmd.String()).Msg("Nothing to spawn, ignoring")
		return nil
	}
	if ok {
		start := l.Spawn
		if start == nil {
			start = spawn.Start
		}
		return start(argv)
	}
	l.Log.Info().Str("command", cmd.String()).Msg("Delegated to window manager")
	return nil
}
