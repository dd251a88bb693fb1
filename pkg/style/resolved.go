package style

import (
	"github.com/matzehuels/eventline/pkg/errors"
)

// =============================================================================
// Resolved Styles
// =============================================================================

// Resolved is a fully-populated style sheet: every field carries a concrete,
// validated value. Obtain one from Config.Resolve or Defaults.
type Resolved struct {
	Title      string
	Dimensions Dimensions
	Colors     Colors
	Fonts      Fonts
	Visual     Visual
}

// Dimensions describe the output canvas in inches plus raster density.
type Dimensions struct {
	Width        float64
	Height       float64
	DPI          int
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
}

// PixelWidth returns the canvas width in pixels.
func (d Dimensions) PixelWidth() int {
	return int(d.Width*float64(d.DPI) + 0.5)
}

// PixelHeight returns the canvas height in pixels.
func (d Dimensions) PixelHeight() int {
	return int(d.Height*float64(d.DPI) + 0.5)
}

// UsableWidth returns the horizontal span between the margins, in inches.
func (d Dimensions) UsableWidth() float64 {
	return d.Width - d.MarginLeft - d.MarginRight
}

// UsableHeight returns the vertical span between the margins, in inches.
func (d Dimensions) UsableHeight() float64 {
	return d.Height - d.MarginTop - d.MarginBottom
}

// Colors is the resolved palette.
type Colors struct {
	Background     Color
	TimelineLine   Color
	AboveItems     Color
	BelowItems     Color
	Text           Color
	DateText       Color
	MonthBoundary  Color
	MonthLabel     Color
	YearLabel      Color
	YearBoxFill    Color
	YearBoxOutline Color
	MarkerOutline  Color
}

// Fonts is the resolved typography. Sizes are points.
type Fonts struct {
	Family         string
	TitleSize      float64
	LabelSize      float64
	DateSize       float64
	MonthLabelSize float64
	YearLabelSize  float64
	LabelBold      bool
	LabelItalic    bool
	DateBold       bool
	DateItalic     bool
	MonthLabelBold bool
	YearLabelBold  bool
}

// Visual is the resolved geometry and decoration tuning.
type Visual struct {
	TimelineLineWidth  float64
	MarkerSize         float64
	ConnectorLineWidth float64
	ConnectorLineAlpha float64
	VerticalSpacing    float64
	DateFormatDisplay  string
	MonthBoundaryWidth float64
	MonthBoundaryAlpha float64
	MonthBoundaryStyle string
	MonthLabelOffset   float64
	MonthLabelAlpha    float64
	MonthTickHeight    float64
	ShowDates          bool
	YearBoxPadding     float64
	YearBoxLinewidth   float64
	MarkerOutlineWidth float64
	EventLabelOffset   float64
	EventDateOffset    float64
	LabelWrapWidth     float64
	Transparent        bool
	AdjustOverlaps     bool
}

// Boundary line styles accepted for visual.month_boundary_style.
const (
	LineStyleSolid   = "-"
	LineStyleDashed  = "--"
	LineStyleDotted  = ":"
	LineStyleDashDot = "-."
)

var validLineStyles = map[string]bool{
	LineStyleSolid:   true,
	LineStyleDashed:  true,
	LineStyleDotted:  true,
	LineStyleDashDot: true,
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks every resolved value against its allowed range. Field
// names in error messages use the config file notation so users can find
// the offending entry.
func (r Resolved) Validate() error {
	d := r.Dimensions
	if d.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidStyleValue, "dimensions.width must be positive (got %g)", d.Width)
	}
	if d.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidStyleValue, "dimensions.height must be positive (got %g)", d.Height)
	}
	if d.DPI < 1 {
		return errors.New(errors.ErrCodeInvalidStyleValue, "dimensions.dpi must be at least 1 (got %d)", d.DPI)
	}
	for field, m := range map[string]float64{
		"dimensions.margin_left":   d.MarginLeft,
		"dimensions.margin_right":  d.MarginRight,
		"dimensions.margin_top":    d.MarginTop,
		"dimensions.margin_bottom": d.MarginBottom,
	} {
		if m < 0 {
			return errors.New(errors.ErrCodeInvalidStyleValue, "%s cannot be negative (got %g)", field, m)
		}
	}
	if d.UsableWidth() <= 0 {
		return errors.New(errors.ErrCodeInvalidStyleValue,
			"horizontal margins (%g + %g) leave no usable width on a %g wide canvas",
			d.MarginLeft, d.MarginRight, d.Width)
	}
	if d.UsableHeight() <= 0 {
		return errors.New(errors.ErrCodeInvalidStyleValue,
			"vertical margins (%g + %g) leave no usable height on a %g tall canvas",
			d.MarginTop, d.MarginBottom, d.Height)
	}

	f := r.Fonts
	if f.Family == "" {
		return errors.New(errors.ErrCodeInvalidStyleValue, "fonts.family cannot be empty")
	}
	for field, size := range map[string]float64{
		"fonts.title_size":       f.TitleSize,
		"fonts.label_size":       f.LabelSize,
		"fonts.date_size":        f.DateSize,
		"fonts.month_label_size": f.MonthLabelSize,
		"fonts.year_label_size":  f.YearLabelSize,
	} {
		if size <= 0 {
			return errors.New(errors.ErrCodeInvalidStyleValue, "%s must be positive (got %g)", field, size)
		}
	}

	v := r.Visual
	for field, w := range map[string]float64{
		"visual.timeline_line_width":  v.TimelineLineWidth,
		"visual.marker_size":          v.MarkerSize,
		"visual.connector_line_width": v.ConnectorLineWidth,
		"visual.vertical_spacing":     v.VerticalSpacing,
		"visual.month_boundary_width": v.MonthBoundaryWidth,
		"visual.month_tick_height":    v.MonthTickHeight,
		"visual.year_box_padding":     v.YearBoxPadding,
		"visual.year_box_linewidth":   v.YearBoxLinewidth,
		"visual.marker_outline_width": v.MarkerOutlineWidth,
		"visual.label_wrap_width":     v.LabelWrapWidth,
	} {
		if w < 0 {
			return errors.New(errors.ErrCodeInvalidStyleValue, "%s cannot be negative (got %g)", field, w)
		}
	}
	for field, a := range map[string]float64{
		"visual.connector_line_alpha": v.ConnectorLineAlpha,
		"visual.month_boundary_alpha": v.MonthBoundaryAlpha,
		"visual.month_label_alpha":    v.MonthLabelAlpha,
	} {
		if a < 0 || a > 1 {
			return errors.New(errors.ErrCodeInvalidStyleValue, "%s must be between 0 and 1 (got %g)", field, a)
		}
	}
	if !validLineStyles[v.MonthBoundaryStyle] {
		return errors.New(errors.ErrCodeInvalidStyleValue,
			"visual.month_boundary_style %q is not one of %q, %q, %q, %q",
			v.MonthBoundaryStyle, LineStyleSolid, LineStyleDashed, LineStyleDotted, LineStyleDashDot)
	}
	if err := ValidateDateFormat(v.DateFormatDisplay); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyleValue, err, "visual.date_format_display")
	}

	return nil
}

// =============================================================================
// Back-Conversion
// =============================================================================

// Config converts the resolved styles back into a fully-populated partial.
// Used by the API to hand clients the effective configuration and by bundle
// export, where the complete config travels with the events.
func (r Resolved) Config() Config {
	return Config{
		Title: ptrNonEmpty(r.Title),
		Dimensions: &DimensionsConfig{
			Width:        ptr(r.Dimensions.Width),
			Height:       ptr(r.Dimensions.Height),
			DPI:          ptr(r.Dimensions.DPI),
			MarginLeft:   ptr(r.Dimensions.MarginLeft),
			MarginRight:  ptr(r.Dimensions.MarginRight),
			MarginTop:    ptr(r.Dimensions.MarginTop),
			MarginBottom: ptr(r.Dimensions.MarginBottom),
		},
		Colors: &ColorsConfig{
			Background:     ptr(r.Colors.Background.Hex()),
			TimelineLine:   ptr(r.Colors.TimelineLine.Hex()),
			AboveItems:     ptr(r.Colors.AboveItems.Hex()),
			BelowItems:     ptr(r.Colors.BelowItems.Hex()),
			Text:           ptr(r.Colors.Text.Hex()),
			DateText:       ptr(r.Colors.DateText.Hex()),
			MonthBoundary:  ptr(r.Colors.MonthBoundary.Hex()),
			MonthLabel:     ptr(r.Colors.MonthLabel.Hex()),
			YearLabel:      ptr(r.Colors.YearLabel.Hex()),
			YearBoxFill:    ptr(r.Colors.YearBoxFill.Hex()),
			YearBoxOutline: ptr(r.Colors.YearBoxOutline.Hex()),
			MarkerOutline:  ptr(r.Colors.MarkerOutline.Hex()),
		},
		Fonts: &FontsConfig{
			Family:         ptr(r.Fonts.Family),
			TitleSize:      ptr(r.Fonts.TitleSize),
			LabelSize:      ptr(r.Fonts.LabelSize),
			DateSize:       ptr(r.Fonts.DateSize),
			MonthLabelSize: ptr(r.Fonts.MonthLabelSize),
			YearLabelSize:  ptr(r.Fonts.YearLabelSize),
			LabelBold:      ptr(r.Fonts.LabelBold),
			LabelItalic:    ptr(r.Fonts.LabelItalic),
			DateBold:       ptr(r.Fonts.DateBold),
			DateItalic:     ptr(r.Fonts.DateItalic),
			MonthLabelBold: ptr(r.Fonts.MonthLabelBold),
			YearLabelBold:  ptr(r.Fonts.YearLabelBold),
		},
		Visual: &VisualConfig{
			TimelineLineWidth:  ptr(r.Visual.TimelineLineWidth),
			MarkerSize:         ptr(r.Visual.MarkerSize),
			ConnectorLineWidth: ptr(r.Visual.ConnectorLineWidth),
			ConnectorLineAlpha: ptr(r.Visual.ConnectorLineAlpha),
			VerticalSpacing:    ptr(r.Visual.VerticalSpacing),
			DateFormatDisplay:  ptr(r.Visual.DateFormatDisplay),
			MonthBoundaryWidth: ptr(r.Visual.MonthBoundaryWidth),
			MonthBoundaryAlpha: ptr(r.Visual.MonthBoundaryAlpha),
			MonthBoundaryStyle: ptr(r.Visual.MonthBoundaryStyle),
			MonthLabelOffset:   ptr(r.Visual.MonthLabelOffset),
			MonthLabelAlpha:    ptr(r.Visual.MonthLabelAlpha),
			MonthTickHeight:    ptr(r.Visual.MonthTickHeight),
			ShowDates:          ptr(r.Visual.ShowDates),
			YearBoxPadding:     ptr(r.Visual.YearBoxPadding),
			YearBoxLinewidth:   ptr(r.Visual.YearBoxLinewidth),
			MarkerOutlineWidth: ptr(r.Visual.MarkerOutlineWidth),
			EventLabelOffset:   ptr(r.Visual.EventLabelOffset),
			EventDateOffset:    ptr(r.Visual.EventDateOffset),
			LabelWrapWidth:     ptr(r.Visual.LabelWrapWidth),
			Transparent:        ptr(r.Visual.Transparent),
			AdjustOverlaps:     ptr(r.Visual.AdjustOverlaps),
		},
	}
}

func ptr[T any](v T) *T { return &v }

func ptrNonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
