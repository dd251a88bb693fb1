package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// =============================================================================
// Scene Assembly
// =============================================================================

// Build lays out a timeline as a flat primitive list. The scene starts
// with the spine across the usable width, then the month ticks, then one
// group of four primitives per event in input order (marker, connector,
// label, date text), then month and year labels, then the title when one
// is configured. Events with an unset placement are resolved to
// alternating sides first. Fails with ErrCodeEmptyEventSet when events is
// empty and ErrCodeInvalidStyleValue when styles do not validate.
func Build(events []timeline.Event, styles style.Resolved) (*Scene, error) {
	if err := styles.Validate(); err != nil {
		return nil, err
	}

	placed := timeline.ResolvePlacements(events)
	mapper, err := NewMapper(placed, styles.Dimensions)
	if err != nil {
		return nil, err
	}

	b := &builder{
		styles: styles,
		mapper: mapper,
		dpi:    float64(styles.Dimensions.DPI),
	}
	return b.scene(placed), nil
}

// builder carries the shared scale state while primitives are assembled.
// Vertical positions are computed in spine units first, a coordinate
// system where the spine sits at zero and the canvas spans [-maxY, maxY],
// then converted to pixel rows.
type builder struct {
	styles style.Resolved
	mapper *Mapper
	dpi    float64

	maxY float64
	unit float64
}

// eventLayout is the per-event intermediate: wrapped label text, the
// pixel column, the side color, and the stacking geometry. The side
// fields keep the placement the event was laid out with even when the
// overlap pass later moves the label across the spine.
type eventLayout struct {
	event timeline.Event
	x     float64
	lines []string
	color style.Color
	above bool
	stack *stackLabel
}

func (b *builder) scene(events []timeline.Event) *Scene {
	items := b.prepare(events)

	stacks := make([]*stackLabel, len(items))
	for i, it := range items {
		stacks[i] = it.stack
	}

	v := b.styles.Visual
	if v.AdjustOverlaps {
		b.maxY = resolveStacking(stacks, v.VerticalSpacing, v.EventLabelOffset)
	} else {
		b.maxY = verticalExtent(stacks, v.VerticalSpacing)
	}
	b.unit = b.styles.Dimensions.UsableHeight() * b.dpi / (2 * b.maxY)

	ticks, months, years := b.calendar()

	prims := make([]Primitive, 0, 2+len(ticks)+4*len(items)+len(months)+len(years))
	prims = append(prims, b.spine())
	prims = append(prims, ticks...)
	for _, it := range items {
		prims = append(prims, b.eventGroup(it)...)
	}
	prims = append(prims, months...)
	prims = append(prims, years...)
	if title := b.title(); title != nil {
		prims = append(prims, *title)
	}

	d := b.styles.Dimensions
	return &Scene{
		Width:       d.PixelWidth(),
		Height:      d.PixelHeight(),
		DPI:         d.DPI,
		Background:  b.styles.Colors.Background,
		Transparent: v.Transparent,
		FontFamily:  b.styles.Fonts.Family,
		Primitives:  prims,
	}
}

// prepare wraps every label and records its initial anchor. Stacking
// extents are estimated against the base canvas scale, before any
// overlap growth is known.
func (b *builder) prepare(events []timeline.Event) []*eventLayout {
	v := b.styles.Visual
	labelPx := b.ptToPx(b.styles.Fonts.LabelSize)
	wrapPx := v.LabelWrapWidth * b.dpi
	pxPerDay := b.mapper.XAt(1) - b.mapper.XAt(0)
	baseExtent := math.Abs(v.VerticalSpacing) + extentHeadroom
	baseUnit := b.styles.Dimensions.UsableHeight() * b.dpi / (2 * baseExtent)

	items := make([]*eventLayout, len(events))
	for i, e := range events {
		above := e.Placement == timeline.PlacementAbove
		y := v.VerticalSpacing + v.EventLabelOffset
		color := b.styles.Colors.AboveItems
		if !above {
			y = -y
			color = b.styles.Colors.BelowItems
		}

		lines := WrapText(e.Name, labelPx, wrapPx)
		w, h := MeasureText(lines, labelPx)

		items[i] = &eventLayout{
			event: e,
			x:     b.mapper.X(e.Date),
			lines: lines,
			color: color,
			above: above,
			stack: &stackLabel{
				Day:          float64(e.Date.DayNumber()),
				Y:            y,
				Above:        above,
				AnchorBottom: above,
				WidthDays:    w / pxPerDay,
				HeightUnits:  h / baseUnit,
			},
		}
	}
	return items
}

// ptToPx converts point sizes (fonts, stroke widths, marker diameters)
// to pixels at the canvas density.
func (b *builder) ptToPx(pt float64) float64 {
	return pt * b.dpi / 72
}

// yPx converts a spine-unit y to a pixel row. Positive spine units are
// above the spine; pixel rows grow downward.
func (b *builder) yPx(y float64) float64 {
	return b.styles.Dimensions.MarginTop*b.dpi + (b.maxY-y)*b.unit
}

// =============================================================================
// Primitives
// =============================================================================

func (b *builder) spine() Primitive {
	y := b.yPx(0)
	return Primitive{
		Kind:      KindSpine,
		Z:         ZSpine,
		X:         b.mapper.LeftPx(),
		Y:         y,
		X2:        b.mapper.RightPx(),
		Y2:        y,
		Color:     b.styles.Colors.TimelineLine,
		LineWidth: b.ptToPx(b.styles.Visual.TimelineLineWidth),
		LineStyle: style.LineStyleSolid,
	}
}

// eventGroup emits the four primitives of one event. The marker sits one
// label offset inside the label anchor, so a label moved by the overlap
// pass drags its marker and connector along. Label color and the date
// text side stay with the placement the event was laid out with.
func (b *builder) eventGroup(it *eventLayout) []Primitive {
	v := b.styles.Visual
	f := b.styles.Fonts
	c := b.styles.Colors

	labelY := it.stack.Y
	markerY := labelY - v.EventLabelOffset
	if labelY <= 0 {
		markerY = labelY + v.EventLabelOffset
	}

	group := make([]Primitive, 0, 4)

	outline := c.MarkerOutline
	group = append(group, Primitive{
		Kind:         KindMarker,
		Z:            ZMarker,
		X:            it.x,
		Y:            b.yPx(markerY),
		Color:        it.color,
		Size:         b.ptToPx(v.MarkerSize),
		Outline:      &outline,
		OutlineWidth: b.ptToPx(v.MarkerOutlineWidth),
	})

	group = append(group, Primitive{
		Kind:      KindConnector,
		Z:         ZConnector,
		X:         it.x,
		Y:         b.yPx(0),
		X2:        it.x,
		Y2:        b.yPx(markerY),
		Color:     it.color.WithAlpha(v.ConnectorLineAlpha),
		LineWidth: b.ptToPx(v.ConnectorLineWidth),
		LineStyle: style.LineStyleSolid,
	})

	labelVA := VAlignBottom
	if !it.above {
		labelVA = VAlignTop
	}
	group = append(group, Primitive{
		Kind:     KindLabel,
		Z:        ZText,
		X:        it.x,
		Y:        b.yPx(labelY),
		Color:    c.Text,
		Text:     strings.Join(it.lines, "\n"),
		FontSize: b.ptToPx(f.LabelSize),
		Bold:     f.LabelBold,
		Italic:   f.LabelItalic,
		Align:    AlignCenter,
		VAlign:   labelVA,
	})

	if v.ShowDates {
		dateY := -v.EventDateOffset
		dateVA := VAlignTop
		if !it.above {
			dateY = v.EventDateOffset
			dateVA = VAlignBottom
		}
		group = append(group, Primitive{
			Kind:     KindDateText,
			Z:        ZText,
			X:        it.x,
			Y:        b.yPx(dateY),
			Color:    c.DateText,
			Text:     style.MustFormatDate(it.event.Date.Time(), v.DateFormatDisplay),
			FontSize: b.ptToPx(f.DateSize),
			Bold:     f.DateBold,
			Italic:   f.DateItalic,
			Align:    AlignCenter,
			VAlign:   dateVA,
		})
	}

	return group
}

// calendar walks month starts from the first event's month through the
// last event's date. Every month start inside the padded range gets a
// tick; the first visible month of each year gets the year badge; a
// month label lands at the month midpoint when that midpoint is still in
// range.
func (b *builder) calendar() (ticks, months, years []Primitive) {
	v := b.styles.Visual
	f := b.styles.Fonts
	c := b.styles.Colors

	current := b.mapper.MinDate().MonthStart()
	maxDate := b.mapper.MaxDate()
	haveYear := false
	lastYear := 0

	for current.Compare(maxDate) <= 0 {
		next := current.AddMonths(1)
		startDay := float64(current.DayNumber())

		if b.mapper.InPaddedRange(startDay) {
			x := b.mapper.XAt(startDay)

			ticks = append(ticks, Primitive{
				Kind:      KindTick,
				Z:         ZTick,
				X:         x,
				Y:         b.yPx(v.MonthTickHeight),
				X2:        x,
				Y2:        b.yPx(-v.MonthTickHeight),
				Color:     c.MonthBoundary.WithAlpha(v.MonthBoundaryAlpha),
				LineWidth: b.ptToPx(v.MonthBoundaryWidth),
				LineStyle: style.LineStyleSolid,
			})

			if !haveYear || current.Year != lastYear {
				fill := c.YearBoxFill
				boxOutline := c.YearBoxOutline
				years = append(years, Primitive{
					Kind:         KindYearLabel,
					Z:            ZDecoration,
					X:            x,
					Y:            b.yPx(0),
					Color:        c.YearLabel,
					Text:         fmt.Sprintf(" %d ", current.Year),
					FontSize:     b.ptToPx(f.YearLabelSize),
					Bold:         f.YearLabelBold,
					Align:        AlignLeft,
					VAlign:       VAlignCenter,
					BoxFill:      &fill,
					BoxOutline:   &boxOutline,
					BoxPad:       v.YearBoxPadding * b.ptToPx(f.YearLabelSize),
					BoxLineWidth: b.ptToPx(v.YearBoxLinewidth),
				})
				haveYear = true
				lastYear = current.Year
			}

			center := (startDay + float64(next.DayNumber())) / 2
			if b.mapper.InPaddedRange(center) {
				months = append(months, Primitive{
					Kind:     KindMonthLabel,
					Z:        ZDecoration,
					X:        b.mapper.XAt(center),
					Y:        b.yPx(v.MonthLabelOffset),
					Color:    c.MonthLabel.WithAlpha(v.MonthLabelAlpha),
					Text:     style.MustFormatDate(current.Time(), "%b"),
					FontSize: b.ptToPx(f.MonthLabelSize),
					Bold:     f.MonthLabelBold,
					Align:    AlignCenter,
					VAlign:   VAlignBottom,
				})
			}
		}

		current = next
	}
	return ticks, months, years
}

func (b *builder) title() *Primitive {
	if b.styles.Title == "" {
		return nil
	}
	p := Primitive{
		Kind:     KindTitle,
		Z:        ZTitle,
		X:        (b.mapper.LeftPx() + b.mapper.RightPx()) / 2,
		Y:        b.styles.Dimensions.MarginTop * b.dpi / 2,
		Color:    b.styles.Colors.Text,
		Text:     b.styles.Title,
		FontSize: b.ptToPx(b.styles.Fonts.TitleSize),
		Bold:     true,
		Align:    AlignCenter,
		VAlign:   VAlignCenter,
	}
	return &p
}
