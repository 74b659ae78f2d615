package xhost

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
)

const (
	keyLo = 8
	keyHi = 255
)

// keymap holds the unshifted and shifted keysym of every keycode.
type keymap [256][2]xp.Keysym

// load fills the keymap from a GetKeyboardMapping reply covering keyLo
// through keyHi.
func (m *keymap) load(perKeycode int, syms []xp.Keysym) error {
	if perKeycode < 2 {
		return fmt.Errorf("too few keysyms per keycode: %d", perKeycode)
	}
	if want := (keyHi - keyLo + 1) * perKeycode; len(syms) < want {
		return fmt.Errorf("keyboard mapping has %d keysyms, want %d", len(syms), want)
	}
	for i := keyLo; i <= keyHi; i++ {
		m[i][0] = syms[(i-keyLo)*perKeycode+0]
		m[i][1] = syms[(i-keyLo)*perKeycode+1]
	}
	return nil
}

// keysym is the keysym a key press is matched on. Bindings name the
// unshifted key and list shift as a modifier, so the shifted column is only
// used for keycodes that have nothing unshifted.
func (m *keymap) keysym(detail xp.Keycode) xp.Keysym {
	if ks := m[detail][0]; ks != 0 {
		return ks
	}
	return m[detail][1]
}

// keycodes lists every keycode that produces ks. Some keyboards have more
// than one, such as the two Return keys.
func (m *keymap) keycodes(ks xp.Keysym) []xp.Keycode {
	var codes []xp.Keycode
	for i := keyLo; i <= keyHi; i++ {
		if m[i][0] == ks || (m[i][0] == 0 && m[i][1] == ks) {
			codes = append(codes, xp.Keycode(i))
		}
	}
	return codes
}

// lockVariants are the ignored modifier combinations a chord is grabbed
// under, so that Caps Lock and Num Lock do not disable the bindings.
var lockVariants = []uint16{
	0,
	xp.ModMaskLock,
	xp.ModMask2,
	xp.ModMaskLock | xp.ModMask2,
}
