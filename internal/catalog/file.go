package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/zenedit/internal/log"
)

// ErrUnsupportedFormat is returned for catalog files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parse decodes and normalizes a catalog.
func Parse(data []byte, format Format) (Catalog, error) {
	var c Catalog
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Catalog{}, fmt.Errorf("parsing yaml catalog: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return Catalog{}, fmt.Errorf("parsing toml catalog: %w", err)
		}
	default:
		return Catalog{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return c.Normalize(), nil
}

// Load reads a catalog file. The format follows the file extension.
func Load(path string) (Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Catalog{}, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog: %w", err)
	}

	c, err := Parse(data, format)
	if err != nil {
		log.ErrorErr(log.CatCatalog, "Failed to parse catalog", err, "path", path)
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}

	log.Info(log.CatCatalog, "Loaded catalog", "path", path, "candidates", c.Len())
	return c, nil
}
