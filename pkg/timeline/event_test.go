package timeline

import (
	"strings"
	"testing"

	"github.com/matzehuels/eventline/pkg/errors"
)

func TestParseRecords(t *testing.T) {
	records := []Record{
		{Name: "Kickoff", Date: "15.01.2024", Position: "above"},
		{Name: "Beta release", Date: "02.03.2024", Position: ""},
		{Name: "Launch", Date: "29.02.2024", Position: "Below"},
	}

	events, err := ParseRecords(records)
	if err != nil {
		t.Fatalf("ParseRecords() error = %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}

	if events[0].Placement != PlacementAbove {
		t.Errorf("events[0].Placement = %v, want above", events[0].Placement)
	}
	if events[1].Placement != PlacementUnset {
		t.Errorf("events[1].Placement = %v, want unset", events[1].Placement)
	}
	if events[2].Placement != PlacementBelow {
		t.Errorf("events[2].Placement = %v, want below", events[2].Placement)
	}

	want := Date{2024, 2, 29}
	if events[2].Date != want {
		t.Errorf("events[2].Date = %v, want %v", events[2].Date, want)
	}
}

func TestParseRecordsSkipsBlankRows(t *testing.T) {
	records := []Record{
		{Name: "Kickoff", Date: "15.01.2024"},
		{Name: "", Date: ""},
		{Name: "  ", Date: " "},
		{Name: "Launch", Date: "01.06.2024"},
	}

	events, err := ParseRecords(records)
	if err != nil {
		t.Fatalf("ParseRecords() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[1].Name != "Launch" {
		t.Errorf("events[1].Name = %q, want %q", events[1].Name, "Launch")
	}
}

func TestParseRecordsReportsRow(t *testing.T) {
	records := []Record{
		{Name: "ok", Date: "01.01.2024"},
		{Name: "bad", Date: "2024-03-15"},
	}

	_, err := ParseRecords(records)
	if err == nil {
		t.Fatal("ParseRecords() = nil error, want date format error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidDateFormat) {
		t.Errorf("error code = %v, want %s", errors.GetCode(err), errors.ErrCodeInvalidDateFormat)
	}
	if msg := errors.UserMessage(err); !strings.Contains(msg, "row 2") {
		t.Errorf("error message %q does not name row 2", msg)
	}
}

func TestParseRecordsPreservesValueErrorCode(t *testing.T) {
	records := []Record{
		{Name: "bad", Date: "32.01.2024"},
	}

	_, err := ParseRecords(records)
	if !errors.Is(err, errors.ErrCodeInvalidDateValue) {
		t.Errorf("error code = %v, want %s", errors.GetCode(err), errors.ErrCodeInvalidDateValue)
	}
}

func TestParseRecordsInvalidPosition(t *testing.T) {
	records := []Record{
		{Name: "bad", Date: "01.01.2024", Position: "sideways"},
	}

	_, err := ParseRecords(records)
	if !errors.Is(err, errors.ErrCodeInvalidPlacement) {
		t.Errorf("error code = %v, want %s", errors.GetCode(err), errors.ErrCodeInvalidPlacement)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	records := []Record{
		{Name: "Kickoff", Date: "15.01.2024", Position: "above"},
		{Name: "Beta", Date: "02.03.2024", Position: "below"},
		{Name: "Launch", Date: "01.06.2024", Position: ""},
	}

	events, err := ParseRecords(records)
	if err != nil {
		t.Fatalf("ParseRecords() error = %v", err)
	}

	back := RecordsFromEvents(events)
	if len(back) != len(records) {
		t.Fatalf("len(back) = %d, want %d", len(back), len(records))
	}
	for i := range records {
		if back[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, back[i], records[i])
		}
	}
}
