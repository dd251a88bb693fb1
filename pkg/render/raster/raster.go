// Package raster renders scenes to PNG with the gg 2D graphics library.
//
// Primitives are painted in layer order (scene order breaks ties), each
// drawn from its pixel coordinates and embedded paint attributes. Fonts
// resolve through the system font directories and fall back to the
// embedded Go faces, so rendering works on headless machines.
package raster

import (
	"bytes"
	"sort"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/style"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithoutSystemFonts skips the system font lookup and always uses the
// embedded faces. Keeps output deterministic in tests and on servers
// with unpredictable font installations.
func WithoutSystemFonts() Option {
	return func(r *Renderer) { r.noSystemFonts = true }
}

// Renderer draws scenes and encodes them as PNG. Safe for concurrent
// use; the only shared state is the font face cache.
type Renderer struct {
	noSystemFonts bool
	fonts         *faceCache
}

// New builds a PNG renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	r.fonts = newFaceCache(r.noSystemFonts)
	return r
}

// Render paints the scene and returns the encoded PNG bytes.
func (r *Renderer) Render(scene *layout.Scene) ([]byte, error) {
	if scene == nil || len(scene.Primitives) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene has no primitives to render")
	}
	if scene.Width <= 0 || scene.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"scene dimensions must be positive (got %dx%d)", scene.Width, scene.Height)
	}

	dc := gg.NewContext(scene.Width, scene.Height)
	if !scene.Transparent {
		setColor(dc, scene.Background)
		dc.Clear()
	}

	for _, p := range paintOrder(scene.Primitives) {
		switch {
		case p.IsLine():
			r.drawLine(dc, p)
		case p.Kind == layout.KindMarker:
			r.drawMarker(dc, p)
		case p.IsText():
			r.drawText(dc, scene.FontFamily, p)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unknown primitive kind %q", p.Kind)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode PNG")
	}
	return buf.Bytes(), nil
}

// paintOrder sorts primitives by paint layer. The sort is stable so
// scene order decides within a layer and later events cover earlier
// ones.
func paintOrder(prims []layout.Primitive) []layout.Primitive {
	out := make([]layout.Primitive, len(prims))
	copy(out, prims)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

func setColor(dc *gg.Context, c style.Color) {
	dc.SetRGBA(c.RGBA01())
}

func (r *Renderer) drawLine(dc *gg.Context, p layout.Primitive) {
	if p.LineWidth <= 0 {
		return
	}
	setColor(dc, p.Color)
	dc.SetLineWidth(p.LineWidth)
	setDash(dc, p.LineStyle, p.LineWidth)
	dc.DrawLine(p.X, p.Y, p.X2, p.Y2)
	dc.Stroke()
	dc.SetDash()
}

// setDash applies a matplotlib-style dash pattern, scaled by the line
// width so heavier lines keep proportional gaps.
func setDash(dc *gg.Context, lineStyle string, w float64) {
	switch lineStyle {
	case style.LineStyleDashed:
		dc.SetDash(4*w, 2*w)
	case style.LineStyleDotted:
		dc.SetDash(w, 2*w)
	case style.LineStyleDashDot:
		dc.SetDash(4*w, 2*w, w, 2*w)
	default:
		dc.SetDash()
	}
}

func (r *Renderer) drawMarker(dc *gg.Context, p layout.Primitive) {
	radius := p.Size / 2
	if radius <= 0 {
		return
	}
	dc.DrawCircle(p.X, p.Y, radius)
	setColor(dc, p.Color)
	if p.Outline != nil && p.OutlineWidth > 0 {
		dc.FillPreserve()
		setColor(dc, *p.Outline)
		dc.SetLineWidth(p.OutlineWidth)
		dc.Stroke()
	} else {
		dc.Fill()
	}
}

func (r *Renderer) drawText(dc *gg.Context, family string, p layout.Primitive) {
	if p.Text == "" || p.FontSize <= 0 {
		return
	}
	dc.SetFontFace(r.fonts.Face(family, p.FontSize, p.Bold, p.Italic))

	lines := strings.Split(p.Text, "\n")
	lineH := p.FontSize * layout.LineSpacing
	blockH := float64(len(lines)) * lineH

	var top float64
	switch p.VAlign {
	case layout.VAlignTop:
		top = p.Y
	case layout.VAlignBottom:
		top = p.Y - blockH
	default:
		top = p.Y - blockH/2
	}

	ax := 0.5
	switch p.Align {
	case layout.AlignLeft:
		ax = 0
	case layout.AlignRight:
		ax = 1
	}

	if p.BoxFill != nil || (p.BoxOutline != nil && p.BoxLineWidth > 0) {
		r.drawTextBox(dc, p, lines, ax, top, lineH)
	}

	setColor(dc, p.Color)
	for i, line := range lines {
		dc.DrawStringAnchored(line, p.X, top+(float64(i)+0.5)*lineH, ax, 0.5)
	}
}

// drawTextBox paints the rounded background box behind badge text, sized
// from the real glyph extents plus the configured padding.
func (r *Renderer) drawTextBox(dc *gg.Context, p layout.Primitive, lines []string, ax, top, lineH float64) {
	var w float64
	for _, line := range lines {
		if lw, _ := dc.MeasureString(line); lw > w {
			w = lw
		}
	}
	h := float64(len(lines)) * lineH

	pad := p.BoxPad
	if pad < 0 {
		pad = 0
	}
	x0 := p.X - ax*w - pad
	y0 := top - pad
	if pad > 0 {
		dc.DrawRoundedRectangle(x0, y0, w+2*pad, h+2*pad, pad)
	} else {
		dc.DrawRectangle(x0, y0, w, h)
	}

	hasFill := p.BoxFill != nil
	hasStroke := p.BoxOutline != nil && p.BoxLineWidth > 0
	switch {
	case hasFill && hasStroke:
		setColor(dc, *p.BoxFill)
		dc.FillPreserve()
		setColor(dc, *p.BoxOutline)
		dc.SetLineWidth(p.BoxLineWidth)
		dc.Stroke()
	case hasFill:
		setColor(dc, *p.BoxFill)
		dc.Fill()
	default:
		setColor(dc, *p.BoxOutline)
		dc.SetLineWidth(p.BoxLineWidth)
		dc.Stroke()
	}
}
