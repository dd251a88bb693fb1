package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/style"
	"github.com/matzehuels/eventline/pkg/timeline"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func testEvent(t *testing.T, name, date string, p timeline.Placement) timeline.Event {
	t.Helper()
	return timeline.Event{Name: name, Date: timeline.MustParseDate(date), Placement: p}
}

func TestNewMapperEmptyEvents(t *testing.T) {
	_, err := NewMapper(nil, style.Defaults().Dimensions)
	if err == nil {
		t.Fatal("expected error for empty event set")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeEmptyEventSet {
		t.Errorf("expected code %s, got %s", errors.ErrCodeEmptyEventSet, code)
	}
}

func TestNewMapperPadding(t *testing.T) {
	tests := []struct {
		name    string
		dates   []string
		wantPad float64
	}{
		{"short range uses one day floor", []string{"10.03.2024", "20.03.2024"}, 1},
		{"long range uses five percent", []string{"01.01.2024", "10.04.2024"}, 5},
		{"single date", []string{"15.06.2024"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make([]timeline.Event, len(tt.dates))
			for i, d := range tt.dates {
				events[i] = testEvent(t, "e", d, timeline.PlacementAbove)
			}
			m, err := NewMapper(events, style.Defaults().Dimensions)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(m.PadDays(), tt.wantPad) {
				t.Errorf("expected padding %g days, got %g", tt.wantPad, m.PadDays())
			}
		})
	}
}

func TestMapperPixelPositions(t *testing.T) {
	// Default canvas: 16in wide at 300 DPI with 1in margins on both
	// sides, so the usable area runs from pixel 300 to pixel 4500.
	events := []timeline.Event{
		testEvent(t, "start", "10.03.2024", timeline.PlacementAbove),
		testEvent(t, "end", "20.03.2024", timeline.PlacementBelow),
	}
	m, err := NewMapper(events, style.Defaults().Dimensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !approx(m.LeftPx(), 300) {
		t.Errorf("expected left edge at 300px, got %g", m.LeftPx())
	}
	if !approx(m.RightPx(), 4500) {
		t.Errorf("expected right edge at 4500px, got %g", m.RightPx())
	}

	// Ten day span pads to twelve days, one day on each side.
	x1 := m.X(timeline.MustParseDate("10.03.2024"))
	x2 := m.X(timeline.MustParseDate("20.03.2024"))
	if !approx(x1, 300+4200.0/12) {
		t.Errorf("expected first event at %g, got %g", 300+4200.0/12, x1)
	}
	if !approx(x2, 300+4200.0*11/12) {
		t.Errorf("expected last event at %g, got %g", 300+4200.0*11/12, x2)
	}
}

func TestMapperSingleDateCentered(t *testing.T) {
	events := []timeline.Event{testEvent(t, "only", "15.06.2024", timeline.PlacementAbove)}
	m, err := NewMapper(events, style.Defaults().Dimensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x := m.X(events[0].Date); !approx(x, 2400) {
		t.Errorf("expected single date centered at 2400px, got %g", x)
	}
	if m.MinDate() != m.MaxDate() {
		t.Errorf("expected min and max to agree for one event")
	}
}

func TestMapperMonotonic(t *testing.T) {
	dates := []string{"01.01.2023", "15.03.2023", "15.03.2023", "02.11.2023", "31.12.2023"}
	events := make([]timeline.Event, len(dates))
	for i, d := range dates {
		events[i] = testEvent(t, "e", d, timeline.PlacementAbove)
	}
	m, err := NewMapper(events, style.Defaults().Dimensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := math.Inf(-1)
	for i, e := range events {
		x := m.X(e.Date)
		if x < prev {
			t.Errorf("position decreased at index %d: %g < %g", i, x, prev)
		}
		if i > 0 && e.Date != events[i-1].Date && x <= m.X(events[i-1].Date) {
			t.Errorf("distinct dates must map to strictly increasing positions, got %g after %g", x, m.X(events[i-1].Date))
		}
		prev = x
	}

	if m.X(events[1].Date) != m.X(events[2].Date) {
		t.Errorf("equal dates must map to equal positions")
	}
}

func TestMapperInPaddedRange(t *testing.T) {
	events := []timeline.Event{
		testEvent(t, "a", "10.03.2024", timeline.PlacementAbove),
		testEvent(t, "b", "20.03.2024", timeline.PlacementBelow),
	}
	m, err := NewMapper(events, style.Defaults().Dimensions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	minDay := float64(timeline.MustParseDate("10.03.2024").DayNumber())
	tests := []struct {
		name string
		day  float64
		want bool
	}{
		{"inside", minDay + 5, true},
		{"lower bound", minDay - 1, true},
		{"upper bound", minDay + 11, true},
		{"below range", minDay - 1.5, false},
		{"above range", minDay + 11.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.InPaddedRange(tt.day); got != tt.want {
				t.Errorf("InPaddedRange(%g) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}
