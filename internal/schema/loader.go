package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/document"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a schema document from a .json, .yaml or .yml file.
// Files with any other extension are decoded as JSON.
func LoadFile(fs afero.Fs, path string) (any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	raw, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return raw, nil
}

// Decode parses schema bytes. ext selects YAML (".yaml", ".yml") or JSON.
func Decode(data []byte, ext string) (any, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		v, err := document.FromYAML(raw)
		if err != nil {
			return nil, err
		}
		return document.Raw(v), nil
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()

		var raw any
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}
		if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected data after schema document")
		}
		return raw, nil
	}
}
