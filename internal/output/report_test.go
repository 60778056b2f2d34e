package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/firebird-suite/nest/internal/schema"
	"github.com/simonhull/firebird-suite/nest/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violations() *schema.Result {
	validator := "required"
	expected := `["b"]`
	return &schema.Result{Errors: schema.ValidationErrors{
		{Location: "root", Message: "missing properties: 'b'", Validator: &validator, Expected: &expected},
		{Location: "a.yaml", Message: "false schema"},
	}}
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, FormatJSON, ResolveFormat("json", &buf))
	assert.Equal(t, FormatText, ResolveFormat("TEXT", &buf))
	assert.Equal(t, FormatJSON, ResolveFormat("auto", &buf))
}

func TestResultJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatJSON, false)

	require.NoError(t, r.Result(&schema.Result{}))
	assert.JSONEq(t, `{"valid": true}`, buf.String())

	buf.Reset()
	require.NoError(t, r.Result(violations()))
	assert.JSONEq(t, `{
		"valid": false,
		"errors": [
			{"location": "root", "message": "missing properties: 'b'", "validator": "required", "expected": "[\"b\"]"},
			{"location": "a.yaml", "message": "false schema", "validator": null, "expected": null}
		]
	}`, buf.String())
}

func TestResultText(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText, false)

	require.NoError(t, r.Result(&schema.Result{}))
	assert.Contains(t, buf.String(), "Valid structure")

	buf.Reset()
	require.NoError(t, r.Result(violations()))
	out := buf.String()
	assert.Contains(t, out, "Invalid structure: 2 error(s)")
	assert.Contains(t, out, "Location: root")
	assert.Contains(t, out, "Validator: required")
	assert.Contains(t, out, `Expected: ["b"]`)
	assert.Contains(t, out, "Location: a.yaml")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Validator:")))
}

func TestFailure(t *testing.T) {
	err := &tree.ParseError{Path: "/t/c.yaml", Err: errors.New("yaml: line 1: did not find expected node content")}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, FormatJSON, false).Failure(err))
	assert.JSONEq(t, `{
		"valid": false,
		"error": {
			"kind": "parse",
			"message": "parsing YAML file /t/c.yaml: yaml: line 1: did not find expected node content",
			"path": "/t/c.yaml"
		}
	}`, buf.String())

	buf.Reset()
	require.NoError(t, NewReporter(&buf, FormatText, false).Failure(err))
	assert.Contains(t, buf.String(), "parse error: parsing YAML file /t/c.yaml")
	assert.Contains(t, buf.String(), "Path: /t/c.yaml")
}

func TestReporterInfoAndVerbose(t *testing.T) {
	var buf bytes.Buffer

	jsonReporter := NewReporter(&buf, FormatJSON, true)
	jsonReporter.Info("Watching")
	jsonReporter.Verbose("Schema: s.json")
	assert.Empty(t, buf.String())

	NewReporter(&buf, FormatText, false).Verbose("hidden")
	assert.Empty(t, buf.String())

	textReporter := NewReporter(&buf, FormatText, true)
	textReporter.Info("Watching ./deploy")
	textReporter.Verbose("Schema: s.json")
	assert.Contains(t, buf.String(), "Watching ./deploy")
	assert.Contains(t, buf.String(), "Schema: s.json")
}

func TestPrinterVerbose(t *testing.T) {
	var buf bytes.Buffer

	NewPrinter(&buf, false).Verbose("hidden")
	assert.Empty(t, buf.String())

	NewPrinter(&buf, true).Verbose("shown")
	assert.Contains(t, buf.String(), "shown")
}
