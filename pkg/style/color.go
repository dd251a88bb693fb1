package style

import (
	"fmt"
	"strings"

	"github.com/matzehuels/eventline/pkg/errors"
)

// Color is an 8-bit RGBA color. It serializes as a hex string (#RRGGBB, or
// #RRGGBBAA when the alpha channel is not opaque) so scene files stay
// human-readable.
type Color struct {
	R, G, B, A uint8
}

// namedColors is the small set of CSS-style names accepted in configs
// alongside hex notation.
var namedColors = map[string]Color{
	"black":   {0x00, 0x00, 0x00, 0xFF},
	"white":   {0xFF, 0xFF, 0xFF, 0xFF},
	"red":     {0xFF, 0x00, 0x00, 0xFF},
	"green":   {0x00, 0x80, 0x00, 0xFF},
	"blue":    {0x00, 0x00, 0xFF, 0xFF},
	"yellow":  {0xFF, 0xFF, 0x00, 0xFF},
	"orange":  {0xFF, 0xA5, 0x00, 0xFF},
	"purple":  {0x80, 0x00, 0x80, 0xFF},
	"cyan":    {0x00, 0xFF, 0xFF, 0xFF},
	"magenta": {0xFF, 0x00, 0xFF, 0xFF},
	"gray":    {0x80, 0x80, 0x80, 0xFF},
	"grey":    {0x80, 0x80, 0x80, 0xFF},
	"none":    {0x00, 0x00, 0x00, 0x00},
}

// ParseColor reads a color from config notation: #RGB, #RRGGBB, #RRGGBBAA,
// or one of a small set of color names (case-insensitive). Anything else
// fails with ErrCodeInvalidStyleValue.
func ParseColor(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)
	if named, ok := namedColors[strings.ToLower(trimmed)]; ok {
		return named, nil
	}

	if !strings.HasPrefix(trimmed, "#") {
		return Color{}, errors.New(errors.ErrCodeInvalidStyleValue, "color %q is not a hex color or known name", s)
	}

	hex := trimmed[1:]
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return Color{}, errors.New(errors.ErrCodeInvalidStyleValue, "color %q has invalid hex digits", s)
		}
		return Color{r * 17, g * 17, b * 17, 0xFF}, nil
	case 6, 8:
		var parts [4]uint8
		parts[3] = 0xFF
		for i := 0; i < len(hex)/2; i++ {
			hi, okHi := hexNibble(hex[2*i])
			lo, okLo := hexNibble(hex[2*i+1])
			if !okHi || !okLo {
				return Color{}, errors.New(errors.ErrCodeInvalidStyleValue, "color %q has invalid hex digits", s)
			}
			parts[i] = hi<<4 | lo
		}
		return Color{parts[0], parts[1], parts[2], parts[3]}, nil
	default:
		return Color{}, errors.New(errors.ErrCodeInvalidStyleValue, "color %q must be #RGB, #RRGGBB, or #RRGGBBAA", s)
	}
}

// MustParseColor is like ParseColor but panics on error.
// Intended for fixtures and tests with literal colors.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// Hex renders the color in config notation.
func (c Color) Hex() string {
	if c.A != 0xFF {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// RGBA01 returns the channels as floats in [0, 1] for drawing backends.
func (c Color) RGBA01() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// WithAlpha returns the color with its alpha channel scaled by factor.
// Factor is clamped to [0, 1].
func (c Color) WithAlpha(factor float64) Color {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	out := c
	out.A = uint8(float64(c.A)*factor + 0.5)
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
