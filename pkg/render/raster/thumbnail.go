package raster

import (
	"bytes"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/eventline/pkg/errors"
)

// Thumbnail downscales PNG bytes so the image fits within maxWidth,
// preserving aspect ratio. Images already narrow enough come back
// unchanged, as does any call with a non-positive maxWidth.
func Thumbnail(pngBytes []byte, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		return pngBytes, nil
	}

	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to decode PNG")
	}
	if img.Bounds().Dx() <= maxWidth {
		return pngBytes, nil
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode thumbnail")
	}
	return buf.Bytes(), nil
}
