// Package timeline defines the core domain model: calendar dates, timeline
// events, and placement resolution.
//
// Dates use the DD.MM.YYYY wire format exclusively and are validated in two
// stages: shape first (two-digit day, two-digit month, four-digit year,
// dot-separated), then calendar range in the proleptic Gregorian calendar.
// The stages fail with distinct error codes so callers can tell a malformed
// string from an impossible date.
//
// Events enter the system as Records (raw strings, round-trip safe) and are
// validated into Events. ResolvePlacements assigns a side of the spine to
// every event that does not carry one explicitly.
package timeline
