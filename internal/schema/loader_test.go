package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/schemas/tree.json", []byte(`{"type": "object", "maxProperties": 3}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/schemas/tree.yaml", []byte("type: object\nmaxProperties: 3\n"), 0o644))

	fromJSON, err := LoadFile(fs, "/schemas/tree.json")
	require.NoError(t, err)
	fromYAML, err := LoadFile(fs, "/schemas/tree.yaml")
	require.NoError(t, err)

	want := map[string]any{"type": "object", "maxProperties": json.Number("3")}
	assert.Equal(t, want, fromJSON)
	assert.Equal(t, want, fromYAML)
}

func TestLoadFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte(`{"type": `), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/trailing.json", []byte(`{} {}`), 0o644))

	for _, path := range []string{"/missing.json", "/bad.json", "/trailing.json"} {
		_, err := LoadFile(fs, path)

		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr), path)
		assert.Equal(t, path, loadErr.Path)
	}
}
