package layout

import "strings"

// LineSpacing is the vertical advance between wrapped lines as a
// multiple of the font size. Renderers paint with the same spacing so
// drawn text fills the boxes layout estimated.
const LineSpacing = 1.2

// Width estimation uses an average character width. Rendering measures
// real glyphs; layout only needs box sizes good enough for wrapping and
// overlap checks.
const charWidthRatio = 0.55

// WrapText breaks text into lines no wider than maxWidthPx at the given
// font size, splitting on spaces. Words longer than the limit get a line
// of their own rather than being broken mid-word. A non-positive limit
// disables wrapping.
func WrapText(text string, fontSizePx, maxWidthPx float64) []string {
	if maxWidthPx <= 0 {
		return strings.Split(text, "\n")
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if lineWidth(candidate, fontSizePx) > maxWidthPx {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// MeasureText estimates the pixel extents of already-wrapped lines.
func MeasureText(lines []string, fontSizePx float64) (w, h float64) {
	for _, line := range lines {
		if lw := lineWidth(line, fontSizePx); lw > w {
			w = lw
		}
	}
	h = float64(len(lines)) * fontSizePx * LineSpacing
	return w, h
}

func lineWidth(line string, fontSizePx float64) float64 {
	return float64(len([]rune(line))) * fontSizePx * charWidthRatio
}
