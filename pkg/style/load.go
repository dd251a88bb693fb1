package style

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/eventline/pkg/errors"
)

// Supported config file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatForPath picks the config format from a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported config extension %q (expected .json, .toml, .yaml, or .yml)", filepath.Ext(path))
	}
}

// Decode parses a partial config from raw bytes in the given format.
func Decode(data []byte, format string) (Config, error) {
	var cfg Config
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON config")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid TOML config")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid YAML config")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown config format %q", format)
	}
	return cfg, nil
}

// Load reads a partial config file, picking the format from its extension.
func Load(path string) (Config, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read config file %s", path)
	}
	return Decode(data, format)
}

// LoadResolved reads a config file and resolves it against the defaults.
// An empty path yields the defaults unchanged.
func LoadResolved(path string) (Resolved, error) {
	if path == "" {
		return Defaults(), nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Resolved{}, err
	}
	return cfg.Resolve()
}
