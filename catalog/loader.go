package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed data/setclasses.json
var defaultCatalog []byte

// Format is a catalog file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension %q", filepath.Ext(path))
	}
}

// Decode reads records in the given format and builds a validated table.
func Decode(r io.Reader, format Format) (*Table, error) {
	var records []Record
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	return Build(records)
}

// Build constructs and validates a table from decoded records.
func Build(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	t, err := NewTable(records)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("catalog failed validation: %w", err)
	}
	return t, nil
}

// LoadFile reads a catalog file from fs.
func LoadFile(fs afero.Fs, path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

// Default returns the catalog embedded in the binary.
func Default() (*Table, error) {
	return Decode(bytes.NewReader(defaultCatalog), FormatJSON)
}

// Load reads path from fs, or the embedded catalog when path is empty.
func Load(fs afero.Fs, path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(fs, path)
}
