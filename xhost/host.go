// Package xhost runs a configuration against an X11 display: it grabs the
// configured chords on the root window, fires the startup hooks and
// dispatches key and pointer presses.
package xhost

import (
	"context"
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/vhal/tilerc/dispatch"
	"github.com/vhal/tilerc/hook"
	"github.com/vhal/tilerc/keysym"
	"github.com/vhal/tilerc/lazy"
	"github.com/vhal/tilerc/wmconf"
)

// Backend is the backend name this host reports to the configuration.
const Backend = "x11"

// BackendName reports Backend. It is meant for wmconf.Env.Backend.
func BackendName() string { return Backend }

// Host drives one X display. Load is called for the initial configuration
// and again on every reload_config command.
type Host struct {
	Load  func() (*wmconf.Config, error)
	Hooks *hook.Registry
	Exec  dispatch.Executor
	Log   zerolog.Logger

	conn     *xgb.Conn
	root     xp.Window
	checkWin xp.Window
	keys     keymap

	cfg   *wmconf.Config
	table *dispatch.Table
	quit  bool

	checkers []checker
}

type checker interface {
	Check() error
}

func (h *Host) check(c checker) {
	h.checkers = append(h.checkers, c)
}

func (h *Host) flushChecks() {
	for i, c := range h.checkers {
		if err := c.Check(); err != nil {
			h.Log.Warn().Err(err).Msg("X request failed")
		}
		h.checkers[i] = nil
	}
	h.checkers = h.checkers[:0]
}

type xEventOrError struct {
	event xgb.Event
	error xgb.Error
}

// Run connects to $DISPLAY and processes events until ctx is done or a
// shutdown command fires.
func (h *Host) Run(ctx context.Context) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}
	if err := h.configure(cfg); err != nil {
		return err
	}

	h.conn, err = xgb.NewConn()
	if err != nil {
		return fmt.Errorf("could not connect to the X server: %w", err)
	}
	defer h.conn.Close()
	if err := xinerama.Init(h.conn); err != nil {
		return err
	}
	setup := xp.Setup(h.conn)
	if len(setup.Roots) != 1 {
		return fmt.Errorf("X setup has unsupported number of roots: %d", len(setup.Roots))
	}
	h.root = setup.Roots[0].Root

	if err := h.initKeyboardMapping(); err != nil {
		return err
	}
	h.initScreens()
	if err := h.apply(); err != nil {
		return err
	}
	h.start(true)

	done := make(chan struct{})
	defer close(done)
	eeChan := make(chan xEventOrError)
	go func() {
		for {
			e, err := h.conn.WaitForEvent()
			if e == nil && err == nil {
				close(eeChan)
				return
			}
			select {
			case eeChan <- xEventOrError{e, err}:
			case <-done:
				return
			}
		}
	}()

	for !h.quit {
		h.flushChecks()

		select {
		case <-ctx.Done():
			h.Log.Info().Msg("Stopping")
			return nil
		case ee, ok := <-eeChan:
			if !ok {
				return errors.New("X connection closed")
			}
			if ee.error != nil {
				h.Log.Warn().Str("error", ee.error.Error()).Msg("X error")
				continue
			}
			switch e := ee.event.(type) {
			case xp.KeyPressEvent:
				h.handleKeyPress(e)
			case xp.ButtonPressEvent:
				h.handleButtonPress(e)
			case xp.MappingNotifyEvent:
				if err := h.initKeyboardMapping(); err != nil {
					h.Log.Error().Err(err).Msg("Could not reload the keyboard mapping")
				} else {
					h.grab()
				}
			case xp.KeyReleaseEvent, xp.ButtonReleaseEvent, xp.MotionNotifyEvent:
				// No-op.
			default:
				h.Log.Trace().Str("event", ee.event.String()).Msg("Unhandled event")
			}
		}
	}
	h.Log.Info().Msg("Shutdown requested")
	return nil
}

// configure swaps in cfg and its hooks. It touches no X state.
func (h *Host) configure(cfg *wmconf.Config) error {
	table, err := dispatch.NewTable(cfg)
	if err != nil {
		return err
	}
	h.cfg, h.table = cfg, table
	h.Hooks.Reset()
	h.Hooks.Subscribe(cfg.Hooks...)
	return nil
}

// apply pushes the current configuration to the X server.
func (h *Host) apply() error {
	if err := h.setWMName(h.cfg.Flags.WMName); err != nil {
		return err
	}
	h.grab()
	return nil
}

// start fires the startup hooks. Hook failures do not stop the host.
func (h *Host) start(first bool) {
	if first {
		if err := h.Hooks.Fire(hook.StartupOnce); err != nil {
			h.Log.Warn().Err(err).Msg("Startup hook failed")
		}
	}
	if err := h.Hooks.Fire(hook.Startup); err != nil {
		h.Log.Warn().Err(err).Msg("Startup hook failed")
	}
}

// reload rebuilds the configuration. A configuration that fails to load
// leaves the previous one in place.
func (h *Host) reload() {
	cfg, err := h.Load()
	if err == nil {
		err = h.configure(cfg)
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("Reload failed, keeping the current configuration")
		return
	}
	if h.conn != nil {
		if err := h.apply(); err != nil {
			h.Log.Error().Err(err).Msg("Could not apply the reloaded configuration")
		}
	}
	h.start(false)
	h.Log.Info().Int("keys", len(cfg.Keys)).Msg("Configuration reloaded")
}

// Execute handles the commands that act on the host itself and passes the
// rest to h.Exec.
func (h *Host) Execute(cmd lazy.Command) error {
	if cmd.Object == "" {
		switch cmd.Name {
		case "reload_config":
			h.reload()
			return nil
		case "shutdown":
			h.quit = true
			return nil
		}
	}
	return h.Exec.Execute(cmd)
}

func (h *Host) fire(cmd lazy.Command) {
	fired, err := dispatch.Fire(cmd, h)
	if err != nil {
		h.Log.Warn().Err(err).Msg("Command failed")
		return
	}
	if !fired {
		h.Log.Debug().Str("command", cmd.String()).Msg("Guard not met, ignoring")
	}
}

func (h *Host) handleKeyPress(e xp.KeyPressEvent) {
	ks := h.keys.keysym(e.Detail)
	k, ok := h.table.Key(e.State, ks)
	if !ok {
		return
	}
	h.Log.Debug().
		Strs("mods", keysym.ModifierNames(dispatch.CleanMods(e.State))).
		Str("key", keysym.String(ks)).
		Str("desc", k.Desc).
		Msg("Key")
	h.fire(k.Command)
}

func (h *Host) handleButtonPress(e xp.ButtonPressEvent) {
	m, ok := h.table.Button(e.State, e.Detail)
	if !ok {
		return
	}
	if m.Start != nil {
		h.fire(*m.Start)
	}
	h.fire(m.Command)
}

func (h *Host) initKeyboardMapping() error {
	km, err := xp.GetKeyboardMapping(h.conn, keyLo, keyHi-keyLo+1).Reply()
	if err != nil {
		return err
	}
	return h.keys.load(int(km.KeysymsPerKeycode), km.Keysyms)
}

// grab replaces every grab on the root window with the current chords.
func (h *Host) grab() {
	h.check(xp.UngrabKeyChecked(h.conn, xp.GrabAny, h.root, xp.ModMaskAny))
	h.check(xp.UngrabButtonChecked(h.conn, xp.ButtonIndexAny, h.root, xp.ModMaskAny))

	for _, c := range h.table.KeyChords() {
		codes := h.keys.keycodes(c.Keysym)
		if len(codes) == 0 {
			h.Log.Warn().Str("key", keysym.String(c.Keysym)).Msg("Key not on this keyboard, binding skipped")
			continue
		}
		for _, code := range codes {
			for _, lock := range lockVariants {
				h.check(xp.GrabKeyChecked(h.conn, false, h.root, c.Mods|lock, code,
					xp.GrabModeAsync, xp.GrabModeAsync))
			}
		}
	}
	for _, c := range h.table.ButtonChords() {
		for _, lock := range lockVariants {
			h.check(xp.GrabButtonChecked(h.conn, false, h.root,
				xp.EventMaskButtonPress|xp.EventMaskButtonRelease,
				xp.GrabModeAsync, xp.GrabModeAsync, xp.WindowNone, xp.CursorNone,
				byte(c.Button), c.Mods|lock))
		}
	}
}

// initScreens compares the physical heads with the configured screens.
// Heads beyond the configured screens get no bar.
func (h *Host) initScreens() {
	xine, err := xinerama.QueryScreens(h.conn).Reply()
	if err != nil {
		h.Log.Warn().Err(err).Msg("Could not query screens")
		return
	}
	heads := len(xine.ScreenInfo)
	if heads > len(h.cfg.Screens) {
		h.Log.Info().Int("heads", heads).Int("screens", len(h.cfg.Screens)).Msg("More heads than configured screens")
	}
}

func (h *Host) internAtom(name string) (xp.Atom, error) {
	r, err := xp.InternAtom(h.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return r.Atom, nil
}

// setWMName advertises name as the window manager's name through an
// _NET_SUPPORTING_WM_CHECK window, the way wmname(1) does.
func (h *Host) setWMName(name string) error {
	if name == "" {
		return nil
	}
	if h.checkWin == 0 {
		w, err := xp.NewWindowId(h.conn)
		if err != nil {
			return err
		}
		if err := xp.CreateWindowChecked(h.conn, 0, w, h.root,
			-1, -1, 1, 1, 0, xp.WindowClassInputOnly, 0, 0, nil).Check(); err != nil {
			return err
		}
		h.checkWin = w
	}

	atoms := map[string]xp.Atom{}
	for _, n := range []string{"_NET_SUPPORTING_WM_CHECK", "_NET_WM_NAME", "UTF8_STRING"} {
		a, err := h.internAtom(n)
		if err != nil {
			return err
		}
		atoms[n] = a
	}

	win := make([]byte, 4)
	xgb.Put32(win, uint32(h.checkWin))
	for _, target := range []xp.Window{h.root, h.checkWin} {
		h.check(xp.ChangePropertyChecked(h.conn, xp.PropModeReplace, target,
			atoms["_NET_SUPPORTING_WM_CHECK"], xp.AtomWindow, 32, 1, win))
	}
	h.check(xp.ChangePropertyChecked(h.conn, xp.PropModeReplace, h.checkWin,
		atoms["_NET_WM_NAME"], atoms["UTF8_STRING"], 8, uint32(len(name)), []byte(name)))
	return nil
}
