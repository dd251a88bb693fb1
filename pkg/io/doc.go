// Package io provides CSV and JSON interchange for timeline data.
//
// # Overview
//
// This package moves timeline rows and configuration between files, HTTP
// payloads, and the in-memory types without interpreting them. The format
// is designed for:
//
//   - Hand-edited spreadsheets exported as CSV
//   - Integration with external tools that produce or consume event lists
//   - Full-fidelity backups that bundle events together with styling
//   - Round-trip preservation: import, edit, export, and re-import identically
//
// # CSV Format
//
// The CSV format is a header row followed by one row per event:
//
//	name,date,position
//	Kickoff,01.02.2024,above
//	Beta,15.03.2024,
//	Launch,01.06.2024,below
//
// Header names are matched case-insensitively and may appear in any order;
// unknown columns are ignored. The name and date columns are required, the
// position column is optional. Dates use DD.MM.YYYY. An empty or missing
// position leaves the side choice to the layout engine. Blank rows are
// preserved on read and skipped during validation, so editing a file with
// trailing empty lines never shifts row numbers in error messages.
//
// Reading only checks the header; cell values are validated separately by
// [timeline.ParseRecords], which reports the 1-based data row of the first
// bad value.
//
// # JSON Bundle Format
//
// A bundle is a single JSON document carrying events and optional styling:
//
//	{
//	  "config": {"colors": {"background": "#FFFFFF"}},
//	  "events": [
//	    {"name": "Kickoff", "date": "01.02.2024", "position": "above"}
//	  ]
//	}
//
// The config object is a partial [style.Config]; omitted keys fall back to
// defaults when the bundle is rendered. A bundle with no config renders
// with the default style.
//
// # Import and Export
//
// Use [ReadCSV] / [WriteCSV] with any reader or writer, or [ImportCSV] /
// [ExportCSV] for file paths:
//
//	records, err := io.ImportCSV("events.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// [ReadBundle], [WriteBundle], [ImportBundle], and [ExportBundle] follow
// the same pattern for the JSON document.
//
// [timeline.ParseRecords]: github.com/matzehuels/eventline/pkg/timeline.ParseRecords
// [style.Config]: github.com/matzehuels/eventline/pkg/style.Config
package io
