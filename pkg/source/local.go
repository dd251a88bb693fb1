package source

import (
	"os"

	"github.com/matzehuels/eventline/pkg/errors"
)

// readLocal reads a local file reference.
func readLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read %s", path)
	}
	return data, nil
}
