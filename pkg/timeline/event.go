package timeline

import (
	"strings"

	"github.com/matzehuels/eventline/pkg/errors"
)

// =============================================================================
// Record - Wire Format
// =============================================================================

// Record is the canonical serialization format for a single timeline row.
// Used for API payloads, CSV interchange, storage, and caching.
//
// The format is human-readable and designed for round-trip fidelity:
// import → normalize → export → re-import preserves every triple.
type Record struct {
	Name     string `json:"name" bson:"name"`
	Date     string `json:"date" bson:"date"`
	Position string `json:"position,omitempty" bson:"position,omitempty"`
}

// IsBlank reports whether the record carries neither a name nor a date.
// Blank records come from trailing rows in hand-edited files and are
// skipped during parsing.
func (r Record) IsBlank() bool {
	return strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Date) == ""
}

// =============================================================================
// Event - Validated Domain Type
// =============================================================================

// Event is a validated timeline entry. Date is a real calendar day and
// Placement is one of above, below, or unset.
type Event struct {
	Name      string
	Date      Date
	Placement Placement
}

// Record converts the event back to its wire representation.
func (e Event) Record() Record {
	return Record{
		Name:     e.Name,
		Date:     e.Date.String(),
		Position: e.Placement.Position(),
	}
}

// ParseRecords validates raw records into events, preserving input order.
// Blank records are skipped; everything else must parse. Error messages
// carry the 1-based row number of the offending record so CSV users can
// find it (row 1 is the first data row, not the header).
func ParseRecords(records []Record) ([]Event, error) {
	events := make([]Event, 0, len(records))
	for i, rec := range records {
		if rec.IsBlank() {
			continue
		}
		row := i + 1

		date, err := ParseDate(strings.TrimSpace(rec.Date))
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "row %d: invalid date %q", row, rec.Date)
		}

		placement, err := ParsePlacement(rec.Position)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "row %d: invalid position %q", row, rec.Position)
		}

		events = append(events, Event{
			Name:      strings.TrimSpace(rec.Name),
			Date:      date,
			Placement: placement,
		})
	}
	return events, nil
}

// RecordsFromEvents converts events back to wire records in order.
func RecordsFromEvents(events []Event) []Record {
	records := make([]Record, len(events))
	for i, e := range events {
		records[i] = e.Record()
	}
	return records
}
