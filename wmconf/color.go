package wmconf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is either a literal color string or a reference into the palette.
// The zero Color means "unset" and lets the host fall back to its default.
type Color struct {
	Value       string
	Index       int
	FromPalette bool
}

// Literal wraps a color string such as "#00000000" or "308dcd".
func Literal(s string) Color { return Color{Value: s} }

// IsZero reports whether c is unset.
func (c Color) IsZero() bool { return !c.FromPalette && c.Value == "" }

// Resolved reports whether c carries a value. A palette reference that was out
// of range when it was taken is unresolved.
func (c Color) Resolved() bool { return c.Value != "" }

func (c Color) String() string {
	if c.FromPalette && !c.Resolved() {
		return fmt.Sprintf("colors[%d]", c.Index)
	}
	return c.Value
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Palette is the ordered color table. Entries are addressed by index.
type Palette []string

// Ref takes a reference to entry i. It never fails: an out-of-range index
// yields an unresolved Color that Validate reports.
func (p Palette) Ref(i int) Color {
	c := Color{Index: i, FromPalette: true}
	if i >= 0 && i < len(p) {
		c.Value = p[i]
	}
	return c
}

// RGBA is a parsed color.
type RGBA struct {
	colorful.Color
	Alpha float64
}

// ParseColor parses a hex color of the form [#]RGB, [#]RGBA, [#]RRGGBB or
// [#]RRGGBBAA.
func ParseColor(s string) (RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	alpha := "ff"
	switch len(hex) {
	case 3, 6:
	case 4:
		hex, alpha = hex[:3], strings.Repeat(hex[3:], 2)
	case 8:
		hex, alpha = hex[:6], hex[6:]
	default:
		return RGBA{}, fmt.Errorf("color %q: want 3, 4, 6 or 8 hex digits", s)
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return RGBA{}, fmt.Errorf("color %q: bad alpha: %w", s, err)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGBA{Color: c, Alpha: float64(a) / 255}, nil
}
