package registry

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/education.json
var defaultData []byte

// Format selects the encoding of a reference data file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor infers the Format from a file extension. Unknown extensions
// are read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a reference Document without validating it.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, eris.Wrap(err, "registry: unmarshal yaml")
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, eris.Wrap(err, "registry: unmarshal json")
		}
	}
	return doc, nil
}

// Encode writes doc in the given format.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		return out, eris.Wrap(err, "registry: marshal yaml")
	default:
		out, err := json.MarshalIndent(doc, "", "  ")
		return out, eris.Wrap(err, "registry: marshal json")
	}
}

// DefaultDocument returns the embedded reference Document.
func DefaultDocument() (Document, error) {
	return Decode(defaultData, FormatJSON)
}

// LoadDefault builds a Dataset from the embedded reference data.
func LoadDefault() (*Dataset, error) {
	doc, err := DefaultDocument()
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// LoadFromFile reads a reference data file (JSON or YAML by extension) and
// builds a validated Dataset.
func LoadFromFile(path string) (*Dataset, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	ds, err := New(doc)
	if err != nil {
		return nil, eris.Wrapf(err, "registry: load %s", path)
	}
	zap.L().Debug("registry: loaded reference data",
		zap.String("path", path),
		zap.Int("paths", len(ds.paths)),
		zap.Int("locations", len(ds.locations)),
	)
	return ds, nil
}

// ReadDocument reads a reference data file without validating it.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, eris.Wrap(err, "registry: read reference data")
	}
	return Decode(data, FormatFor(path))
}

// Load builds a Dataset from path, or from the embedded data when path is
// empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFromFile(path)
}
