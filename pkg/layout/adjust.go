package layout

import (
	"math"
	"sort"
)

// Stacking parameters for the overlap pass, in spine units (y) and days
// (x). The extent values size the vertical half-range of the canvas: the
// headroom above the spacing is always reserved, and every moved label
// keeps a margin between its anchor and the edge.
const (
	stackIncrement   = 0.2
	collisionPadding = 0.05
	maxStackAttempts = 10
	extentHeadroom   = 0.8
	extentMargin     = 0.3
)

// stackLabel is the geometry the overlap pass works on. Y is the label
// anchor in spine units and is updated in place. AnchorBottom records
// which way the text extends from the anchor; it follows the placement
// the label started on and does not change when the pass swaps sides.
type stackLabel struct {
	Day          float64
	Y            float64
	Above        bool
	AnchorBottom bool
	WidthDays    float64
	HeightUnits  float64

	box stackBox
}

type stackBox struct {
	x0, x1, y0, y1 float64
}

func (l *stackLabel) boxAt(y float64) stackBox {
	half := l.WidthDays / 2
	b := stackBox{x0: l.Day - half, x1: l.Day + half}
	if l.AnchorBottom {
		b.y0, b.y1 = y, y+l.HeightUnits
	} else {
		b.y0, b.y1 = y-l.HeightUnits, y
	}
	return b
}

func boxesOverlap(a, b stackBox, pad float64) bool {
	return !(a.x1+pad < b.x0 ||
		a.x0 > b.x1+pad ||
		a.y1+pad < b.y0 ||
		a.y0 > b.y1+pad)
}

// middleOut returns label indices sorted by day. Equal days keep input
// order. The median entry anchors the pass: it is never moved and never
// counts toward the extent.
func middleOut(labels []*stackLabel) (order []int, middle int) {
	order = make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return labels[order[a]].Day < labels[order[b]].Day
	})
	return order, len(order) / 2
}

// resolveStacking moves label anchors vertically until no two labels
// overlap, working outward from the median label. Each label climbs away
// from the spine in fixed increments on its own side; after three failed
// attempts it restarts on the opposite side. A label that still collides
// after ten attempts keeps its last position. Returns the vertical
// half-extent the canvas needs, in spine units.
func resolveStacking(labels []*stackLabel, spacing, labelOffset float64) float64 {
	maxY := math.Abs(spacing) + extentHeadroom
	if len(labels) == 0 {
		return maxY
	}

	order, middle := middleOut(labels)
	for _, idx := range order {
		l := labels[idx]
		l.box = l.boxAt(l.Y)
	}

	placed := []*stackLabel{labels[order[middle]]}
	place := func(l *stackLabel) {
		l.Y, l.Above = findStackPosition(l, placed, spacing, labelOffset)
		placed = append(placed, l)
		if ext := math.Abs(l.Y) + extentMargin; ext > maxY {
			maxY = ext
		}
	}
	for i := middle - 1; i >= 0; i-- {
		place(labels[order[i]])
	}
	for i := middle + 1; i < len(order); i++ {
		place(labels[order[i]])
	}
	return maxY
}

func findStackPosition(l *stackLabel, placed []*stackLabel, spacing, labelOffset float64) (float64, bool) {
	y := l.Y
	above := l.Above
	var tested stackBox

	for attempt := 0; attempt < maxStackAttempts; attempt++ {
		tested = l.boxAt(y)
		if !overlapsAny(tested, l, placed) {
			l.box = tested
			return y, above
		}

		if above {
			y += stackIncrement
		} else {
			y -= stackIncrement
		}
		if attempt == 3 {
			above = !above
			y = spacing + labelOffset
			if !above {
				y = -y
			}
		}
	}

	// Give up at the last position tried. The stored box lags the anchor
	// by one increment, which mirrors how later labels see this one.
	l.box = tested
	return y, above
}

func overlapsAny(b stackBox, self *stackLabel, placed []*stackLabel) bool {
	for _, other := range placed {
		if other == self {
			continue
		}
		if boxesOverlap(b, other.box, collisionPadding) {
			return true
		}
	}
	return false
}

// verticalExtent sizes the canvas half-range without moving any labels,
// for layouts that keep overlapping labels as placed.
func verticalExtent(labels []*stackLabel, spacing float64) float64 {
	maxY := math.Abs(spacing) + extentHeadroom
	if len(labels) == 0 {
		return maxY
	}
	order, middle := middleOut(labels)
	for i, idx := range order {
		if i == middle {
			continue
		}
		if ext := math.Abs(labels[idx].Y) + extentMargin; ext > maxY {
			maxY = ext
		}
	}
	return maxY
}
