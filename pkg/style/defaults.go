package style

// Defaults returns the complete default style sheet. Configs overlay onto
// this, so every field a file omits renders exactly as listed here.
func Defaults() Resolved {
	return Resolved{
		Dimensions: Dimensions{
			Width:        16,
			Height:       10,
			DPI:          300,
			MarginLeft:   1.0,
			MarginRight:  1.0,
			MarginTop:    1.5,
			MarginBottom: 1.5,
		},
		Colors: Colors{
			Background:     MustParseColor("#FFFFFF"),
			TimelineLine:   MustParseColor("#2C3E50"),
			AboveItems:     MustParseColor("#3498DB"),
			BelowItems:     MustParseColor("#E74C3C"),
			Text:           MustParseColor("#2C3E50"),
			DateText:       MustParseColor("#7F8C8D"),
			MonthBoundary:  MustParseColor("#2C3E50"),
			MonthLabel:     MustParseColor("#2C3E50"),
			YearLabel:      MustParseColor("#2C3E50"),
			YearBoxFill:    MustParseColor("#FFFFFF"),
			YearBoxOutline: MustParseColor("#2C3E50"),
			MarkerOutline:  MustParseColor("#FFFFFF"),
		},
		Fonts: Fonts{
			Family:         "sans-serif",
			TitleSize:      16,
			LabelSize:      10,
			DateSize:       8,
			MonthLabelSize: 8,
			YearLabelSize:  10,
			LabelBold:      false,
			LabelItalic:    false,
			DateBold:       false,
			DateItalic:     false,
			MonthLabelBold: false,
			YearLabelBold:  true,
		},
		Visual: Visual{
			TimelineLineWidth:  2,
			MarkerSize:         10,
			ConnectorLineWidth: 1,
			ConnectorLineAlpha: 0.6,
			VerticalSpacing:    0.8,
			DateFormatDisplay:  "%d.%m.%Y",
			MonthBoundaryWidth: 0.5,
			MonthBoundaryAlpha: 0.3,
			MonthBoundaryStyle: LineStyleDashed,
			MonthLabelOffset:   0.08,
			MonthLabelAlpha:    0.7,
			MonthTickHeight:    0.1,
			ShowDates:          true,
			YearBoxPadding:     0.3,
			YearBoxLinewidth:   1.5,
			MarkerOutlineWidth: 1,
			EventLabelOffset:   0.1,
			EventDateOffset:    0.15,
			LabelWrapWidth:     2.0,
			Transparent:        false,
			AdjustOverlaps:     false,
		},
	}
}
