// Package keysym maps the key, modifier and pointer button names used in key
// bindings to their X11 values.
package keysym

// These constants come from /usr/include/X11/keysymdef.h and XF86keysym.h.

import (
	"errors"
	"fmt"
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"
)

const (
	XKSpace             = 0x0020
	XKISOLeftTab        = 0xfe20
	XKBackspace         = 0xff08
	XKTab               = 0xff09
	XKReturn            = 0xff0d
	XKPause             = 0xff13
	XKEscape            = 0xff1b
	XKHome              = 0xff50
	XKLeft              = 0xff51
	XKUp                = 0xff52
	XKRight             = 0xff53
	XKDown              = 0xff54
	XKPageUp            = 0xff55
	XKPageDown          = 0xff56
	XKEnd               = 0xff57
	XKPrint             = 0xff61
	XKInsert            = 0xff63
	XKMenu              = 0xff67
	XKF1                = 0xffbe
	XKShiftL            = 0xffe1
	XKShiftR            = 0xffe2
	XKControlL          = 0xffe3
	XKControlR          = 0xffe4
	XKCapsLock          = 0xffe5
	XKShiftLock         = 0xffe6
	XKMetaL             = 0xffe7
	XKMetaR             = 0xffe8
	XKAltL              = 0xffe9
	XKAltR              = 0xffea
	XKSuperL            = 0xffeb
	XKSuperR            = 0xffec
	XKHyperL            = 0xffed
	XKHyperR            = 0xffee
	XKDelete            = 0xffff
	XKAudioLowerVolume  = 0x1008ff11
	XKAudioMute         = 0x1008ff12
	XKAudioRaiseVolume  = 0x1008ff13
	XKAudioPlay         = 0x1008ff14
	XKAudioNext         = 0x1008ff17
	XKAudioPrev         = 0x1008ff16
	XKMonBrightnessUp   = 0x1008ff02
	XKMonBrightnessDown = 0x1008ff03
)

var (
	ErrUnknownKey      = errors.New("unknown key name")
	ErrUnknownModifier = errors.New("unknown modifier name")
	ErrUnknownButton   = errors.New("unknown pointer button")
)

// named holds the multi-character key names, lower-cased. Single characters
// map to their Latin-1 code point and are not listed.
var named = map[string]xp.Keysym{
	"space":                 XKSpace,
	"iso_left_tab":          XKISOLeftTab,
	"backspace":             XKBackspace,
	"tab":                   XKTab,
	"return":                XKReturn,
	"pause":                 XKPause,
	"escape":                XKEscape,
	"home":                  XKHome,
	"left":                  XKLeft,
	"up":                    XKUp,
	"right":                 XKRight,
	"down":                  XKDown,
	"page_up":               XKPageUp,
	"prior":                 XKPageUp,
	"page_down":             XKPageDown,
	"next":                  XKPageDown,
	"end":                   XKEnd,
	"print":                 XKPrint,
	"insert":                XKInsert,
	"menu":                  XKMenu,
	"delete":                XKDelete,
	"caps_lock":             XKCapsLock,
	"super_l":               XKSuperL,
	"super_r":               XKSuperR,
	"xf86audiolowervolume":  XKAudioLowerVolume,
	"xf86audiomute":         XKAudioMute,
	"xf86audioraisevolume":  XKAudioRaiseVolume,
	"xf86audioplay":         XKAudioPlay,
	"xf86audionext":         XKAudioNext,
	"xf86audioprev":         XKAudioPrev,
	"xf86monbrightnessup":   XKMonBrightnessUp,
	"xf86monbrightnessdown": XKMonBrightnessDown,
}

var modifiers = map[string]uint16{
	"shift":   xp.ModMaskShift,
	"lock":    xp.ModMaskLock,
	"control": xp.ModMaskControl,
	"mod1":    xp.ModMask1,
	"mod2":    xp.ModMask2,
	"mod3":    xp.ModMask3,
	"mod4":    xp.ModMask4,
	"mod5":    xp.ModMask5,
}

// modifierOrder is the canonical order used when naming a mask.
var modifierOrder = []string{"mod1", "mod2", "mod3", "mod4", "mod5", "control", "shift", "lock"}

var buttons = map[string]xp.Button{
	"button1": 1,
	"button2": 2,
	"button3": 3,
	"button4": 4,
	"button5": 5,
}

// Lookup returns the keysym for a key name. Single printable characters are
// taken literally; longer names are matched case-insensitively, with "f1"
// through "f35" mapping to the function keys.
func Lookup(name string) (xp.Keysym, error) {
	if r := []rune(name); len(r) == 1 {
		if r[0] >= 0x20 && r[0] <= 0xff {
			return xp.Keysym(r[0]), nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	lower := strings.ToLower(name)
	if ks, ok := named[lower]; ok {
		return ks, nil
	}
	var n int
	if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && fmt.Sprintf("f%d", n) == lower && n >= 1 && n <= 35 {
		return xp.Keysym(XKF1 + n - 1), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// Modifier returns the X11 modifier mask bit for a modifier name.
func Modifier(name string) (uint16, error) {
	if m, ok := modifiers[strings.ToLower(name)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
}

// Modifiers ORs together the masks of every named modifier.
func Modifiers(names []string) (uint16, error) {
	mask := uint16(0)
	for _, name := range names {
		m, err := Modifier(name)
		if err != nil {
			return 0, err
		}
		mask |= m
	}
	return mask, nil
}

// ModifierNames is the inverse of Modifiers.
func ModifierNames(mask uint16) []string {
	var names []string
	for _, name := range modifierOrder {
		if mask&modifiers[name] != 0 {
			names = append(names, name)
		}
	}
	return names
}

// Button returns the pointer button for a name such as "Button1".
func Button(name string) (xp.Button, error) {
	if b, ok := buttons[strings.ToLower(name)]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// String names a keysym for log messages.
func String(keysym xp.Keysym) string {
	switch {
	case keysym > XKSpace && keysym <= 0x7e:
		return string(rune(keysym))
	case keysym >= XKF1 && keysym < XKF1+35:
		return fmt.Sprintf("F%d", keysym-XKF1+1)
	}
	switch keysym {
	case XKSpace:
		return "space"
	case XKReturn:
		return "Return"
	case XKTab:
		return "Tab"
	case XKPrint:
		return "Print"
	case XKShiftL:
		return "ShiftL"
	case XKShiftR:
		return "ShiftR"
	case XKControlL:
		return "ControlL"
	case XKControlR:
		return "ControlR"
	case XKCapsLock:
		return "CapsLock"
	case XKShiftLock:
		return "ShiftLock"
	case XKMetaL:
		return "MetaL"
	case XKMetaR:
		return "MetaR"
	case XKAltL:
		return "AltL"
	case XKAltR:
		return "AltR"
	case XKSuperL:
		return "SuperL"
	case XKSuperR:
		return "SuperR"
	case XKHyperL:
		return "HyperL"
	case XKHyperR:
		return "HyperR"
	}
	return "UnknownKeysym"
}
