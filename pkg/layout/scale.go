package layout

import (
	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

// Horizontal padding applied on each side of the date range: 5% of the
// span, with a one-day floor so a single-date timeline still has width.
const (
	paddingFraction = 0.05
	minPaddingDays  = 1.0
)

// Mapper converts calendar days to horizontal pixel positions.
//
// The mapping is linear over the padded date range: equal dates always land
// on equal x positions and later dates strictly to the right of earlier
// ones. The padded span is at least two days, so the mapping is defined
// even when every event shares one date.
type Mapper struct {
	minDate   timeline.Date
	maxDate   timeline.Date
	padDays   float64
	paddedMin float64
	paddedMax float64
	leftPx    float64
	usablePx  float64
}

// NewMapper computes the date range of events and prepares the pixel
// mapping for the given canvas. Fails with ErrCodeEmptyEventSet when there
// are no events to span a range with.
func NewMapper(events []timeline.Event, dims style.Dimensions) (*Mapper, error) {
	if len(events) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyEventSet, "no events to lay out")
	}

	minDate, maxDate := events[0].Date, events[0].Date
	for _, e := range events[1:] {
		if e.Date.Before(minDate) {
			minDate = e.Date
		}
		if e.Date.After(maxDate) {
			maxDate = e.Date
		}
	}

	span := float64(maxDate.Sub(minDate))
	pad := span * paddingFraction
	if pad < minPaddingDays {
		pad = minPaddingDays
	}

	dpi := float64(dims.DPI)
	return &Mapper{
		minDate:   minDate,
		maxDate:   maxDate,
		padDays:   pad,
		paddedMin: float64(minDate.DayNumber()) - pad,
		paddedMax: float64(maxDate.DayNumber()) + pad,
		leftPx:    dims.MarginLeft * dpi,
		usablePx:  dims.UsableWidth() * dpi,
	}, nil
}

// X maps a date to its pixel position.
func (m *Mapper) X(d timeline.Date) float64 {
	return m.XAt(float64(d.DayNumber()))
}

// XAt maps a fractional day number to its pixel position. Used for points
// between calendar days, such as month midpoints.
func (m *Mapper) XAt(day float64) float64 {
	return m.leftPx + (day-m.paddedMin)/(m.paddedMax-m.paddedMin)*m.usablePx
}

// MinDate returns the earliest event date.
func (m *Mapper) MinDate() timeline.Date { return m.minDate }

// MaxDate returns the latest event date.
func (m *Mapper) MaxDate() timeline.Date { return m.maxDate }

// PadDays returns the padding applied on each side of the range, in days.
func (m *Mapper) PadDays() float64 { return m.padDays }

// InPaddedRange reports whether a fractional day number falls inside the
// padded range, bounds included.
func (m *Mapper) InPaddedRange(day float64) bool {
	return day >= m.paddedMin && day <= m.paddedMax
}

// LeftPx returns the pixel position of the left edge of the usable area.
func (m *Mapper) LeftPx() float64 { return m.leftPx }

// RightPx returns the pixel position of the right edge of the usable area.
func (m *Mapper) RightPx() float64 { return m.leftPx + m.usablePx }
