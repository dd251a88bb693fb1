package timeline

import (
	"slices"
	"strings"

	"github.com/matzehuels/eventline/pkg/errors"
)

// Wire values for event positions.
const (
	PositionAbove = "above"
	PositionBelow = "below"
)

// Placement is the side of the spine an event occupies.
type Placement int

// Placement states. The zero value is unset so that records without a
// position column naturally parse as unset.
const (
	PlacementUnset Placement = iota
	PlacementAbove
	PlacementBelow
)

// String returns a human-readable placement name.
func (p Placement) String() string {
	switch p {
	case PlacementAbove:
		return PositionAbove
	case PlacementBelow:
		return PositionBelow
	default:
		return "unset"
	}
}

// Position returns the wire value: "above", "below", or "" for unset.
func (p Placement) Position() string {
	switch p {
	case PlacementAbove:
		return PositionAbove
	case PlacementBelow:
		return PositionBelow
	default:
		return ""
	}
}

// Opposite returns the other side of the spine. Unset stays unset.
func (p Placement) Opposite() Placement {
	switch p {
	case PlacementAbove:
		return PlacementBelow
	case PlacementBelow:
		return PlacementAbove
	default:
		return PlacementUnset
	}
}

// ParsePlacement reads a wire position value. Empty and whitespace-only
// strings mean unset; above and below match case-insensitively.
func ParsePlacement(s string) (Placement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PlacementUnset, nil
	case PositionAbove:
		return PlacementAbove, nil
	case PositionBelow:
		return PlacementBelow, nil
	default:
		return PlacementUnset, errors.New(errors.ErrCodeInvalidPlacement,
			"position %q is not %q, %q, or empty", s, PositionAbove, PositionBelow)
	}
}

// ResolvePlacements assigns a side to every event that does not carry one.
//
// A cursor starts above the spine and flips each time it assigns, so unset
// events alternate above/below in input order. Events with explicit
// placements keep them and do not advance the cursor: in a list of
// [unset, above, unset] the first event lands above, the second keeps its
// explicit above, and the third lands below because the cursor flipped
// exactly once. The input slice is not modified.
func ResolvePlacements(events []Event) []Event {
	out := slices.Clone(events)
	next := PlacementAbove
	for i := range out {
		if out[i].Placement != PlacementUnset {
			continue
		}
		out[i].Placement = next
		next = next.Opposite()
	}
	return out
}
