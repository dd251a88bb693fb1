package pipeline

import (
	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/layout"
	"github.com/matzehuels/eventline/pkg/render"
	"github.com/matzehuels/eventline/pkg/render/raster"
)

// defaultRenderer draws PNG artifacts. Built once; the raster renderer
// caches font faces across renders.
var defaultRenderer render.Renderer = raster.New()

// Render generates output artifacts in the requested formats.
func Render(scene *layout.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG:
			data, err = renderPNG(scene, opts)
		case FormatJSON:
			data, err = layout.MarshalScene(*scene)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderPNG rasterizes the scene, downscaling when a width cap is set.
func renderPNG(scene *layout.Scene, opts Options) ([]byte, error) {
	data, err := defaultRenderer.Render(scene)
	if err != nil {
		return nil, err
	}
	if opts.MaxWidth > 0 {
		return raster.Thumbnail(data, opts.MaxWidth)
	}
	return data, nil
}
