// Package style loads, merges, and validates timeline styling.
//
// Configuration files are partial: any field may be omitted and inherits the
// documented default. Partiality is modeled with pointer fields so that an
// explicit false or zero survives the merge. Resolve overlays a partial
// Config onto the defaults at every nesting level and validates the result
// eagerly, so a bad color or a negative width fails before any layout or
// drawing happens.
//
// Files load by extension: .json, .toml, and .yaml/.yml are supported.
package style
