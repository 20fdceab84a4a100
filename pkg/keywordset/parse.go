package keywordset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization format of a taxonomy document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Join(ErrUnsupportedFormat, fmt.Errorf("extension %q", filepath.Ext(path)))
	}
}

// Parse decodes a taxonomy document. The document is either a list of sets
// or an API page of the form {"data": [...]}.
func Parse(data []byte, format Format) (Taxonomy, error) {
	var page struct {
		Data Taxonomy `json:"data" yaml:"data"`
	}
	var list Taxonomy

	var err error
	switch format {
	case FormatJSON:
		if err = json.Unmarshal(data, &list); err != nil {
			err = json.Unmarshal(data, &page)
		}
	case FormatYAML:
		if err = yaml.Unmarshal(data, &list); err != nil {
			err = yaml.Unmarshal(data, &page)
		}
	default:
		return nil, errors.Join(ErrUnsupportedFormat, fmt.Errorf("format %q", format))
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToParse, err)
	}

	if len(list) == 0 {
		list = page.Data
	}
	if len(list) == 0 {
		return nil, ErrEmptyTaxonomy
	}
	return list, nil
}

// LoadFile reads and parses a JSON or YAML taxonomy file.
func LoadFile(path string) (Taxonomy, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(data, format)
}
