package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/eventline/pkg/style"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Primitive kinds.
const (
	KindSpine      = "spine"
	KindTick       = "tick"
	KindMarker     = "marker"
	KindConnector  = "connector"
	KindLabel      = "label"
	KindDateText   = "date_text"
	KindMonthLabel = "month_label"
	KindYearLabel  = "year_label"
	KindTitle      = "title"
)

// Paint layers, lowest drawn first. Scene order is structural (spine,
// ticks, one group of four primitives per event, decorations); renderers
// stable-sort by Z before painting so connectors sit under markers and
// decorations stay on top of everything.
const (
	ZTick       = 0
	ZSpine      = 1
	ZConnector  = 2
	ZMarker     = 3
	ZText       = 4
	ZDecoration = 5
	ZTitle      = 6
)

// Text alignment values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Vertical text anchor values.
const (
	VAlignTop    = "top"
	VAlignCenter = "center"
	VAlignBottom = "bottom"
)

// =============================================================================
// Primitive - Unified Drawing Element
// =============================================================================

// Primitive is the unified serialization format for one drawable element.
//
// This is a discriminated union type - check Kind to determine which fields
// are populated:
//
//	Lines (spine, tick, connector):
//	  - X, Y and X2, Y2: endpoints
//	  - Color, LineWidth, LineStyle
//
//	Markers (marker):
//	  - X, Y: center; Size: diameter
//	  - Color, Outline, OutlineWidth
//
//	Text (label, date_text, month_label, year_label, title):
//	  - X, Y: anchor point; Text may contain newlines
//	  - Color, FontSize, Bold, Italic, Align, VAlign
//	  - Box* fields add a rounded background box (year labels)
//
// All coordinates are pixels with the origin at the top-left corner.
// Colors carry their own alpha channel.
type Primitive struct {
	// Discriminator
	Kind string `json:"kind" bson:"kind"`
	Z    int    `json:"z" bson:"z"`

	// Geometry
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
	X2 float64 `json:"x2,omitempty" bson:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty" bson:"y2,omitempty"`

	// Paint
	Color     style.Color `json:"color" bson:"color"`
	LineWidth float64     `json:"line_width,omitempty" bson:"line_width,omitempty"`
	LineStyle string      `json:"line_style,omitempty" bson:"line_style,omitempty"`

	// Marker-specific
	Size         float64      `json:"size,omitempty" bson:"size,omitempty"`
	Outline      *style.Color `json:"outline,omitempty" bson:"outline,omitempty"`
	OutlineWidth float64      `json:"outline_width,omitempty" bson:"outline_width,omitempty"`

	// Text-specific
	Text     string  `json:"text,omitempty" bson:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty" bson:"font_size,omitempty"`
	Bold     bool    `json:"bold,omitempty" bson:"bold,omitempty"`
	Italic   bool    `json:"italic,omitempty" bson:"italic,omitempty"`
	Align    string  `json:"align,omitempty" bson:"align,omitempty"`
	VAlign   string  `json:"valign,omitempty" bson:"valign,omitempty"`

	// Box around text (year labels)
	BoxFill      *style.Color `json:"box_fill,omitempty" bson:"box_fill,omitempty"`
	BoxOutline   *style.Color `json:"box_outline,omitempty" bson:"box_outline,omitempty"`
	BoxPad       float64      `json:"box_pad,omitempty" bson:"box_pad,omitempty"`
	BoxLineWidth float64      `json:"box_line_width,omitempty" bson:"box_line_width,omitempty"`
}

// IsLine returns true for the stroke-only kinds.
func (p *Primitive) IsLine() bool {
	return p.Kind == KindSpine || p.Kind == KindTick || p.Kind == KindConnector
}

// IsText returns true for the text-drawing kinds.
func (p *Primitive) IsText() bool {
	switch p.Kind {
	case KindLabel, KindDateText, KindMonthLabel, KindYearLabel, KindTitle:
		return true
	}
	return false
}

// =============================================================================
// Scene - Laid-Out Frame
// =============================================================================

// Scene is the serialization format for a fully laid-out timeline frame.
// Width and Height are pixels; DPI records the raster density the pixel
// values were derived from. When Transparent is set the background color
// is not painted.
type Scene struct {
	Width       int         `json:"width" bson:"width"`
	Height      int         `json:"height" bson:"height"`
	DPI         int         `json:"dpi" bson:"dpi"`
	Background  style.Color `json:"background" bson:"background"`
	Transparent bool        `json:"transparent,omitempty" bson:"transparent,omitempty"`
	FontFamily  string      `json:"font_family,omitempty" bson:"font_family,omitempty"`
	Primitives  []Primitive `json:"primitives" bson:"primitives"`
}

// ByKind returns the primitives of one kind in scene order.
func (s *Scene) ByKind(kind string) []Primitive {
	var out []Primitive
	for _, p := range s.Primitives {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalScene deserializes JSON bytes into a Scene.
// Validates that the frame has positive dimensions and at least one
// primitive.
func UnmarshalScene(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("unmarshal scene: %w", err)
	}

	if s.Width <= 0 || s.Height <= 0 {
		return Scene{}, fmt.Errorf("scene must have positive dimensions (got %dx%d)", s.Width, s.Height)
	}
	if len(s.Primitives) == 0 {
		return Scene{}, fmt.Errorf("scene must contain primitives")
	}

	return s, nil
}

// WriteSceneFile writes a Scene to a JSON file.
func WriteSceneFile(s Scene, path string) error {
	data, err := MarshalScene(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSceneFile reads a Scene from a JSON file.
func ReadSceneFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalScene(data)
}
