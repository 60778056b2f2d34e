package tree

import (
	"bytes"
	"errors"
	"io"

	"github.com/simonhull/firebird-suite/nest/internal/document"
	"gopkg.in/yaml.v3"
)

var errMultipleDocuments = errors.New("file contains more than one YAML document")

// ParseYAML decodes a single YAML document into a document.Value.
// Empty input, and any document whose value is falsy (null, false, 0, "",
// [] or {}), yields an empty Object so schemas can rely on a mapping.
func ParseYAML(data []byte) (document.Value, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return document.Object{}, nil
		}
		return nil, err
	}

	var extra any
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errMultipleDocuments
	}

	v, err := document.FromYAML(raw)
	if err != nil {
		return nil, err
	}
	if !document.Truthy(v) {
		return document.Object{}, nil
	}
	return v, nil
}
