package style

import (
	"github.com/matzehuels/eventline/pkg/errors"
)

// =============================================================================
// Partial Configuration - Wire Format
// =============================================================================

// Config is a partial style sheet as read from a file or an API payload.
// Every field is optional; nil fields inherit the documented default during
// Resolve. Pointer fields keep an explicit false or zero distinguishable
// from an omitted value, which matters for flags like visual.show_dates.
type Config struct {
	Title      *string           `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty" bson:"title,omitempty"`
	Dimensions *DimensionsConfig `json:"dimensions,omitempty" toml:"dimensions,omitempty" yaml:"dimensions,omitempty" bson:"dimensions,omitempty"`
	Colors     *ColorsConfig     `json:"colors,omitempty" toml:"colors,omitempty" yaml:"colors,omitempty" bson:"colors,omitempty"`
	Fonts      *FontsConfig      `json:"fonts,omitempty" toml:"fonts,omitempty" yaml:"fonts,omitempty" bson:"fonts,omitempty"`
	Visual     *VisualConfig     `json:"visual,omitempty" toml:"visual,omitempty" yaml:"visual,omitempty" bson:"visual,omitempty"`
}

// DimensionsConfig sizes the output canvas. Lengths are inches; DPI converts
// them to pixels.
type DimensionsConfig struct {
	Width        *float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty" bson:"width,omitempty"`
	Height       *float64 `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty" bson:"height,omitempty"`
	DPI          *int     `json:"dpi,omitempty" toml:"dpi,omitempty" yaml:"dpi,omitempty" bson:"dpi,omitempty"`
	MarginLeft   *float64 `json:"margin_left,omitempty" toml:"margin_left,omitempty" yaml:"margin_left,omitempty" bson:"margin_left,omitempty"`
	MarginRight  *float64 `json:"margin_right,omitempty" toml:"margin_right,omitempty" yaml:"margin_right,omitempty" bson:"margin_right,omitempty"`
	MarginTop    *float64 `json:"margin_top,omitempty" toml:"margin_top,omitempty" yaml:"margin_top,omitempty" bson:"margin_top,omitempty"`
	MarginBottom *float64 `json:"margin_bottom,omitempty" toml:"margin_bottom,omitempty" yaml:"margin_bottom,omitempty" bson:"margin_bottom,omitempty"`
}

// ColorsConfig holds color notation strings (#RGB, #RRGGBB, #RRGGBBAA, or a
// known name). Parsing happens during Resolve.
type ColorsConfig struct {
	Background     *string `json:"background,omitempty" toml:"background,omitempty" yaml:"background,omitempty" bson:"background,omitempty"`
	TimelineLine   *string `json:"timeline_line,omitempty" toml:"timeline_line,omitempty" yaml:"timeline_line,omitempty" bson:"timeline_line,omitempty"`
	AboveItems     *string `json:"above_items,omitempty" toml:"above_items,omitempty" yaml:"above_items,omitempty" bson:"above_items,omitempty"`
	BelowItems     *string `json:"below_items,omitempty" toml:"below_items,omitempty" yaml:"below_items,omitempty" bson:"below_items,omitempty"`
	Text           *string `json:"text,omitempty" toml:"text,omitempty" yaml:"text,omitempty" bson:"text,omitempty"`
	DateText       *string `json:"date_text,omitempty" toml:"date_text,omitempty" yaml:"date_text,omitempty" bson:"date_text,omitempty"`
	MonthBoundary  *string `json:"month_boundary,omitempty" toml:"month_boundary,omitempty" yaml:"month_boundary,omitempty" bson:"month_boundary,omitempty"`
	MonthLabel     *string `json:"month_label,omitempty" toml:"month_label,omitempty" yaml:"month_label,omitempty" bson:"month_label,omitempty"`
	YearLabel      *string `json:"year_label,omitempty" toml:"year_label,omitempty" yaml:"year_label,omitempty" bson:"year_label,omitempty"`
	YearBoxFill    *string `json:"year_box_fill,omitempty" toml:"year_box_fill,omitempty" yaml:"year_box_fill,omitempty" bson:"year_box_fill,omitempty"`
	YearBoxOutline *string `json:"year_box_outline,omitempty" toml:"year_box_outline,omitempty" yaml:"year_box_outline,omitempty" bson:"year_box_outline,omitempty"`
	MarkerOutline  *string `json:"marker_outline,omitempty" toml:"marker_outline,omitempty" yaml:"marker_outline,omitempty" bson:"marker_outline,omitempty"`
}

// FontsConfig selects the typeface and the size and weight of each text
// role. Sizes are points.
type FontsConfig struct {
	Family         *string  `json:"family,omitempty" toml:"family,omitempty" yaml:"family,omitempty" bson:"family,omitempty"`
	TitleSize      *float64 `json:"title_size,omitempty" toml:"title_size,omitempty" yaml:"title_size,omitempty" bson:"title_size,omitempty"`
	LabelSize      *float64 `json:"label_size,omitempty" toml:"label_size,omitempty" yaml:"label_size,omitempty" bson:"label_size,omitempty"`
	DateSize       *float64 `json:"date_size,omitempty" toml:"date_size,omitempty" yaml:"date_size,omitempty" bson:"date_size,omitempty"`
	MonthLabelSize *float64 `json:"month_label_size,omitempty" toml:"month_label_size,omitempty" yaml:"month_label_size,omitempty" bson:"month_label_size,omitempty"`
	YearLabelSize  *float64 `json:"year_label_size,omitempty" toml:"year_label_size,omitempty" yaml:"year_label_size,omitempty" bson:"year_label_size,omitempty"`
	LabelBold      *bool    `json:"label_bold,omitempty" toml:"label_bold,omitempty" yaml:"label_bold,omitempty" bson:"label_bold,omitempty"`
	LabelItalic    *bool    `json:"label_italic,omitempty" toml:"label_italic,omitempty" yaml:"label_italic,omitempty" bson:"label_italic,omitempty"`
	DateBold       *bool    `json:"date_bold,omitempty" toml:"date_bold,omitempty" yaml:"date_bold,omitempty" bson:"date_bold,omitempty"`
	DateItalic     *bool    `json:"date_italic,omitempty" toml:"date_italic,omitempty" yaml:"date_italic,omitempty" bson:"date_italic,omitempty"`
	MonthLabelBold *bool    `json:"month_label_bold,omitempty" toml:"month_label_bold,omitempty" yaml:"month_label_bold,omitempty" bson:"month_label_bold,omitempty"`
	YearLabelBold  *bool    `json:"year_label_bold,omitempty" toml:"year_label_bold,omitempty" yaml:"year_label_bold,omitempty" bson:"year_label_bold,omitempty"`
}

// VisualConfig tunes geometry and decoration. Vertical distances
// (vertical_spacing, offsets, tick height) are in spine units: the layout
// maps them onto the usable canvas height. Line widths and marker size are
// points.
type VisualConfig struct {
	TimelineLineWidth  *float64 `json:"timeline_line_width,omitempty" toml:"timeline_line_width,omitempty" yaml:"timeline_line_width,omitempty" bson:"timeline_line_width,omitempty"`
	MarkerSize         *float64 `json:"marker_size,omitempty" toml:"marker_size,omitempty" yaml:"marker_size,omitempty" bson:"marker_size,omitempty"`
	ConnectorLineWidth *float64 `json:"connector_line_width,omitempty" toml:"connector_line_width,omitempty" yaml:"connector_line_width,omitempty" bson:"connector_line_width,omitempty"`
	ConnectorLineAlpha *float64 `json:"connector_line_alpha,omitempty" toml:"connector_line_alpha,omitempty" yaml:"connector_line_alpha,omitempty" bson:"connector_line_alpha,omitempty"`
	VerticalSpacing    *float64 `json:"vertical_spacing,omitempty" toml:"vertical_spacing,omitempty" yaml:"vertical_spacing,omitempty" bson:"vertical_spacing,omitempty"`
	DateFormatDisplay  *string  `json:"date_format_display,omitempty" toml:"date_format_display,omitempty" yaml:"date_format_display,omitempty" bson:"date_format_display,omitempty"`
	MonthBoundaryWidth *float64 `json:"month_boundary_width,omitempty" toml:"month_boundary_width,omitempty" yaml:"month_boundary_width,omitempty" bson:"month_boundary_width,omitempty"`
	MonthBoundaryAlpha *float64 `json:"month_boundary_alpha,omitempty" toml:"month_boundary_alpha,omitempty" yaml:"month_boundary_alpha,omitempty" bson:"month_boundary_alpha,omitempty"`
	MonthBoundaryStyle *string  `json:"month_boundary_style,omitempty" toml:"month_boundary_style,omitempty" yaml:"month_boundary_style,omitempty" bson:"month_boundary_style,omitempty"`
	MonthLabelOffset   *float64 `json:"month_label_offset,omitempty" toml:"month_label_offset,omitempty" yaml:"month_label_offset,omitempty" bson:"month_label_offset,omitempty"`
	MonthLabelAlpha    *float64 `json:"month_label_alpha,omitempty" toml:"month_label_alpha,omitempty" yaml:"month_label_alpha,omitempty" bson:"month_label_alpha,omitempty"`
	MonthTickHeight    *float64 `json:"month_tick_height,omitempty" toml:"month_tick_height,omitempty" yaml:"month_tick_height,omitempty" bson:"month_tick_height,omitempty"`
	ShowDates          *bool    `json:"show_dates,omitempty" toml:"show_dates,omitempty" yaml:"show_dates,omitempty" bson:"show_dates,omitempty"`
	YearBoxPadding     *float64 `json:"year_box_padding,omitempty" toml:"year_box_padding,omitempty" yaml:"year_box_padding,omitempty" bson:"year_box_padding,omitempty"`
	YearBoxLinewidth   *float64 `json:"year_box_linewidth,omitempty" toml:"year_box_linewidth,omitempty" yaml:"year_box_linewidth,omitempty" bson:"year_box_linewidth,omitempty"`
	MarkerOutlineWidth *float64 `json:"marker_outline_width,omitempty" toml:"marker_outline_width,omitempty" yaml:"marker_outline_width,omitempty" bson:"marker_outline_width,omitempty"`
	EventLabelOffset   *float64 `json:"event_label_offset,omitempty" toml:"event_label_offset,omitempty" yaml:"event_label_offset,omitempty" bson:"event_label_offset,omitempty"`
	EventDateOffset    *float64 `json:"event_date_offset,omitempty" toml:"event_date_offset,omitempty" yaml:"event_date_offset,omitempty" bson:"event_date_offset,omitempty"`
	LabelWrapWidth     *float64 `json:"label_wrap_width,omitempty" toml:"label_wrap_width,omitempty" yaml:"label_wrap_width,omitempty" bson:"label_wrap_width,omitempty"`
	Transparent        *bool    `json:"transparent,omitempty" toml:"transparent,omitempty" yaml:"transparent,omitempty" bson:"transparent,omitempty"`
	AdjustOverlaps     *bool    `json:"adjust_overlaps,omitempty" toml:"adjust_overlaps,omitempty" yaml:"adjust_overlaps,omitempty" bson:"adjust_overlaps,omitempty"`
}

// =============================================================================
// Resolution
// =============================================================================

// Resolve overlays the partial config onto the defaults at every nesting
// level and validates the result. Absent fields never fail; present fields
// with invalid values fail eagerly with ErrCodeInvalidStyleValue, before
// any layout or drawing happens.
func (c Config) Resolve() (Resolved, error) {
	out := Defaults()

	if c.Title != nil {
		out.Title = *c.Title
	}

	if d := c.Dimensions; d != nil {
		overlayFloat(&out.Dimensions.Width, d.Width)
		overlayFloat(&out.Dimensions.Height, d.Height)
		overlayInt(&out.Dimensions.DPI, d.DPI)
		overlayFloat(&out.Dimensions.MarginLeft, d.MarginLeft)
		overlayFloat(&out.Dimensions.MarginRight, d.MarginRight)
		overlayFloat(&out.Dimensions.MarginTop, d.MarginTop)
		overlayFloat(&out.Dimensions.MarginBottom, d.MarginBottom)
	}

	if cc := c.Colors; cc != nil {
		colorFields := []struct {
			dst   *Color
			src   *string
			field string
		}{
			{&out.Colors.Background, cc.Background, "colors.background"},
			{&out.Colors.TimelineLine, cc.TimelineLine, "colors.timeline_line"},
			{&out.Colors.AboveItems, cc.AboveItems, "colors.above_items"},
			{&out.Colors.BelowItems, cc.BelowItems, "colors.below_items"},
			{&out.Colors.Text, cc.Text, "colors.text"},
			{&out.Colors.DateText, cc.DateText, "colors.date_text"},
			{&out.Colors.MonthBoundary, cc.MonthBoundary, "colors.month_boundary"},
			{&out.Colors.MonthLabel, cc.MonthLabel, "colors.month_label"},
			{&out.Colors.YearLabel, cc.YearLabel, "colors.year_label"},
			{&out.Colors.YearBoxFill, cc.YearBoxFill, "colors.year_box_fill"},
			{&out.Colors.YearBoxOutline, cc.YearBoxOutline, "colors.year_box_outline"},
			{&out.Colors.MarkerOutline, cc.MarkerOutline, "colors.marker_outline"},
		}
		for _, f := range colorFields {
			if err := overlayColor(f.dst, f.src, f.field); err != nil {
				return Resolved{}, err
			}
		}
	}

	if f := c.Fonts; f != nil {
		overlayString(&out.Fonts.Family, f.Family)
		overlayFloat(&out.Fonts.TitleSize, f.TitleSize)
		overlayFloat(&out.Fonts.LabelSize, f.LabelSize)
		overlayFloat(&out.Fonts.DateSize, f.DateSize)
		overlayFloat(&out.Fonts.MonthLabelSize, f.MonthLabelSize)
		overlayFloat(&out.Fonts.YearLabelSize, f.YearLabelSize)
		overlayBool(&out.Fonts.LabelBold, f.LabelBold)
		overlayBool(&out.Fonts.LabelItalic, f.LabelItalic)
		overlayBool(&out.Fonts.DateBold, f.DateBold)
		overlayBool(&out.Fonts.DateItalic, f.DateItalic)
		overlayBool(&out.Fonts.MonthLabelBold, f.MonthLabelBold)
		overlayBool(&out.Fonts.YearLabelBold, f.YearLabelBold)
	}

	if v := c.Visual; v != nil {
		overlayFloat(&out.Visual.TimelineLineWidth, v.TimelineLineWidth)
		overlayFloat(&out.Visual.MarkerSize, v.MarkerSize)
		overlayFloat(&out.Visual.ConnectorLineWidth, v.ConnectorLineWidth)
		overlayFloat(&out.Visual.ConnectorLineAlpha, v.ConnectorLineAlpha)
		overlayFloat(&out.Visual.VerticalSpacing, v.VerticalSpacing)
		overlayString(&out.Visual.DateFormatDisplay, v.DateFormatDisplay)
		overlayFloat(&out.Visual.MonthBoundaryWidth, v.MonthBoundaryWidth)
		overlayFloat(&out.Visual.MonthBoundaryAlpha, v.MonthBoundaryAlpha)
		overlayString(&out.Visual.MonthBoundaryStyle, v.MonthBoundaryStyle)
		overlayFloat(&out.Visual.MonthLabelOffset, v.MonthLabelOffset)
		overlayFloat(&out.Visual.MonthLabelAlpha, v.MonthLabelAlpha)
		overlayFloat(&out.Visual.MonthTickHeight, v.MonthTickHeight)
		overlayBool(&out.Visual.ShowDates, v.ShowDates)
		overlayFloat(&out.Visual.YearBoxPadding, v.YearBoxPadding)
		overlayFloat(&out.Visual.YearBoxLinewidth, v.YearBoxLinewidth)
		overlayFloat(&out.Visual.MarkerOutlineWidth, v.MarkerOutlineWidth)
		overlayFloat(&out.Visual.EventLabelOffset, v.EventLabelOffset)
		overlayFloat(&out.Visual.EventDateOffset, v.EventDateOffset)
		overlayFloat(&out.Visual.LabelWrapWidth, v.LabelWrapWidth)
		overlayBool(&out.Visual.Transparent, v.Transparent)
		overlayBool(&out.Visual.AdjustOverlaps, v.AdjustOverlaps)
	}

	if err := out.Validate(); err != nil {
		return Resolved{}, err
	}
	return out, nil
}

func overlayFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func overlayInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func overlayBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func overlayString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func overlayColor(dst *Color, src *string, field string) error {
	if src == nil {
		return nil
	}
	parsed, err := ParseColor(*src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyleValue, err, "%s: invalid color %q", field, *src)
	}
	*dst = parsed
	return nil
}
