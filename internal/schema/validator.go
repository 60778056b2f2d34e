package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/simonhull/firebird-suite/nest/internal/document"
)

// schemaURL names the in-memory schema resource handed to the compiler.
const schemaURL = "file:///nest/schema.json"

// reportedOnce are keywords whose failure is reported as a single violation
// instead of the failures of their subschemas.
var reportedOnce = map[string]bool{
	"anyOf":    true,
	"oneOf":    true,
	"contains": true,
}

// Validator checks documents against one compiled schema.
// It holds no per-run state and may be reused.
type Validator struct {
	compiled  *jsonschema.Schema
	raw       any
	resources resources
	declared  string
}

// Compile checks raw against the draft-7 meta-schema and prepares it for
// validation. A root $schema naming another draft is ignored. format,
// contentEncoding and contentMediaType are annotations only.
func Compile(raw any) (*Validator, error) {
	declared, stripped := stripSchemaURI(raw)

	data, err := json.Marshal(stripped)
	if err != nil {
		return nil, &DefinitionError{Err: err}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	annotationsOnly(compiler)

	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, &DefinitionError{Err: err}
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, &DefinitionError{Err: err}
	}

	res := resources{}
	res.index(schemaURL, raw)

	return &Validator{
		compiled:  compiled,
		raw:       raw,
		resources: res,
		declared:  declared,
	}, nil
}

// IgnoredDraft returns the root $schema URI when it names something other
// than draft-7, which Compile did not honour.
func (v *Validator) IgnoredDraft() (string, bool) {
	if v.declared == "" || isDraft7(v.declared) {
		return "", false
	}
	return v.declared, true
}

// stripSchemaURI removes a root $schema so the compiler always uses draft-7.
func stripSchemaURI(raw any) (string, any) {
	m, ok := raw.(map[string]any)
	if !ok {
		return "", raw
	}
	uri, ok := m["$schema"]
	if !ok {
		return "", raw
	}

	out := make(map[string]any, len(m)-1)
	for k, val := range m {
		if k != "$schema" {
			out[k] = val
		}
	}
	declared, _ := uri.(string)
	return declared, out
}

func isDraft7(uri string) bool {
	uri = strings.TrimSuffix(strings.TrimSuffix(uri, "#"), "/")
	uri = strings.TrimPrefix(strings.TrimPrefix(uri, "https://"), "http://")
	return uri == "json-schema.org/draft-07/schema"
}

// annotationsOnly replaces the engine's format and content checks with
// pass-throughs; draft-7 treats those keywords as annotations by default.
func annotationsOnly(c *jsonschema.Compiler) {
	for name := range jsonschema.Formats {
		c.Formats[name] = func(any) bool { return true }
	}
	for name := range jsonschema.Decoders {
		c.Decoders[name] = func(s string) ([]byte, error) { return []byte(s), nil }
	}
	for name := range jsonschema.MediaTypes {
		c.MediaTypes[name] = func([]byte) error { return nil }
	}
}

// Validate collects every violation of doc, ordered by document path.
func (v *Validator) Validate(doc document.Value) (*Result, error) {
	err := v.compiled.Validate(document.Raw(doc))
	if err == nil {
		return &Result{}, nil
	}

	var root *jsonschema.ValidationError
	if !errors.As(err, &root) {
		return nil, fmt.Errorf("validating document: %w", err)
	}

	rootBase, _ := splitLocation(root.AbsoluteKeywordLocation)

	var leaves []*jsonschema.ValidationError
	collect(root, &leaves)

	records := make(ValidationErrors, 0, len(leaves))
	for _, leaf := range leaves {
		records = append(records, v.record(doc, leaf, rootBase))
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if c := a.path.Compare(b.path); c != 0 {
			return c < 0
		}
		if a.keyword != b.keyword {
			return a.keyword < b.keyword
		}
		return a.Message < b.Message
	})

	return &Result{Errors: records}, nil
}

// collect flattens the engine's error tree down to the keywords that failed.
func collect(ve *jsonschema.ValidationError, out *[]*jsonschema.ValidationError) {
	_, tokens := pointerTokens(ve.KeywordLocation)
	keyword, _, _ := keywordOf(tokens)

	if len(ve.Causes) == 0 || reportedOnce[keyword] {
		*out = append(*out, ve)
		return
	}
	for _, cause := range ve.Causes {
		collect(cause, out)
	}
}

func (v *Validator) record(doc document.Value, ve *jsonschema.ValidationError, rootBase string) ValidationError {
	path := instancePath(doc, ve.InstanceLocation)

	rec := ValidationError{
		Location: path.Location(),
		Message:  ve.Message,
		path:     path,
		keyword:  ve.KeywordLocation,
	}

	_, tokens := pointerTokens(ve.KeywordLocation)
	keyword, trailing, ok := keywordOf(tokens)
	if !ok {
		return rec
	}
	rec.Validator = &keyword

	if value, ok := v.keywordValue(ve.AbsoluteKeywordLocation, trailing, rootBase); ok && truthy(value) {
		expected := stringify(value)
		rec.Expected = &expected
	}

	return rec
}

// keywordValue returns the schema value of the keyword at an absolute keyword
// location, after dropping the trailing tokens that point inside that value.
func (v *Validator) keywordValue(location string, trailing int, rootBase string) (any, bool) {
	base, fragment := splitLocation(location)
	fragment = trimPointer(fragment, trailing)

	resource := v.resources[base]
	if base == rootBase {
		resource = v.raw
	}
	if resource == nil {
		return nil, false
	}
	return lookup(resource, fragment)
}
