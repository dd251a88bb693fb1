// Package render declares the rasterization capability consumed by the
// timeline pipeline.
//
// The layout engine produces a [layout.Scene]; anything that can draw
// lines, circles, and text at pixel positions can render it. The raster
// subpackage provides the PNG implementation; the pipeline and CLI only
// depend on the Renderer interface so backends stay swappable.
package render

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/eventline/pkg/errors"
	"github.com/matzehuels/eventline/pkg/layout"
)

// Renderer turns a laid-out scene into encoded image bytes.
type Renderer interface {
	Render(scene *layout.Scene) ([]byte, error)
}

// WriteFile renders the scene and writes the image to path. The bytes
// land in a temporary file first and are renamed into place, so a failed
// render or interrupted write never leaves a partial image behind.
func WriteFile(r Renderer, scene *layout.Scene, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	data, err := r.Render(scene)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// WriteBytes writes already-rendered artifact bytes to path with the
// same atomic rename as WriteFile.
func WriteBytes(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".eventline-*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to create temporary file in %s", dir)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write image data")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to finalize image file")
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to set image file mode")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to move image to %s", path)
	}
	return nil
}
