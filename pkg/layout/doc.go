// Package layout turns validated events plus resolved styles into a Scene:
// an ordered list of drawing primitives with pixel coordinates.
//
// The scene format is renderer-agnostic and serializable, so laying out and
// rasterizing can run as separate pipeline stages. Scene order is
// structural: the spine comes first, followed by month ticks, then one
// consecutive group of four primitives per event in input order, then the
// calendar decorations. Paint order is carried separately in each
// primitive's Z layer.
//
// Vertical geometry works in spine units before the final pixel mapping:
// an event marker sits vertical_spacing units from the spine, its label
// event_label_offset further out, and the usable canvas height spans
// [-extent, +extent] where extent is vertical_spacing plus fixed headroom,
// grown as needed when overlap adjustment stacks labels higher.
package layout
