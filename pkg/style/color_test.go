package style

import (
	"testing"

	"github.com/matzehuels/eventline/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#FFFFFF", Color{255, 255, 255, 255}},
		{"#2C3E50", Color{0x2C, 0x3E, 0x50, 0xFF}},
		{"#abc", Color{0xAA, 0xBB, 0xCC, 0xFF}},
		{"#80808080", Color{0x80, 0x80, 0x80, 0x80}},
		{"white", Color{255, 255, 255, 255}},
		{"Black", Color{0, 0, 0, 255}},
		{"GREY", Color{0x80, 0x80, 0x80, 0xFF}},
		{"none", Color{0, 0, 0, 0}},
		{"  #3498DB  ", Color{0x34, 0x98, 0xDB, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	inputs := []string{"", "notacolor", "123456", "#12", "#12345", "#GGGGGG", "#12345G"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseColor(input)
			if !errors.Is(err, errors.ErrCodeInvalidStyleValue) {
				t.Errorf("ParseColor(%q) error = %v, want code %s", input, err, errors.ErrCodeInvalidStyleValue)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	opaque := Color{0x2C, 0x3E, 0x50, 0xFF}
	if got := opaque.Hex(); got != "#2C3E50" {
		t.Errorf("Hex() = %q, want %q", got, "#2C3E50")
	}

	translucent := Color{0x2C, 0x3E, 0x50, 0x80}
	if got := translucent.Hex(); got != "#2C3E5080" {
		t.Errorf("Hex() = %q, want %q", got, "#2C3E5080")
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	orig := Color{0x34, 0x98, 0xDB, 0x99}
	text, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}

	var back Color
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q) error = %v", text, err)
	}
	if back != orig {
		t.Errorf("round trip = %+v, want %+v", back, orig)
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := Color{100, 100, 100, 200}

	if got := c.WithAlpha(0.5); got.A != 100 {
		t.Errorf("WithAlpha(0.5).A = %d, want 100", got.A)
	}
	if got := c.WithAlpha(1); got.A != 200 {
		t.Errorf("WithAlpha(1).A = %d, want 200", got.A)
	}
	if got := c.WithAlpha(-1); got.A != 0 {
		t.Errorf("WithAlpha(-1).A = %d, want 0", got.A)
	}
	if got := c.WithAlpha(2); got.A != 200 {
		t.Errorf("WithAlpha(2).A = %d, want 200", got.A)
	}
}

func TestColorRGBA01(t *testing.T) {
	r, g, b, a := Color{255, 0, 51, 255}.RGBA01()
	if r != 1 || g != 0 || b != 0.2 || a != 1 {
		t.Errorf("RGBA01() = %g, %g, %g, %g", r, g, b, a)
	}
}
