// Package datafile loads template data from JSON, YAML or CSV files.
package datafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrUnsupportedExtension is returned by ForFile for unknown extensions.
var ErrUnsupportedExtension = errors.New("unsupported data file extension")

// Decoder converts raw file bytes into template data.
type Decoder interface {
	Decode(r io.Reader, filename string) (map[string]any, error)
}

// SupportedExtensions lists file extensions Load can handle.
var SupportedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".csv":  true,
}

// ForFile returns the decoder for a filename.
func ForFile(filename string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSONDecoder{}, nil
	case ".yaml", ".yml":
		return YAMLDecoder{}, nil
	case ".csv":
		return CSVDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

// Load reads path with the decoder matching its extension.
func Load(path string) (map[string]any, error) {
	dec, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return dec.Decode(f, filepath.Base(path))
}

// JSONDecoder reads a JSON object.
type JSONDecoder struct{}

func (JSONDecoder) Decode(r io.Reader, filename string) (map[string]any, error) {
	var data map[string]any
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse json %s: %w", filename, err)
	}
	return orEmpty(data), nil
}

// YAMLDecoder reads a YAML mapping.
type YAMLDecoder struct{}

func (YAMLDecoder) Decode(r io.Reader, filename string) (map[string]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml %s: %w", filename, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse yaml %s: %w", filename, err)
	}
	return orEmpty(data), nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
