// Package document defines the value model produced when a directory tree is
// materialized for validation.
//
// # Overview
//
// A document is a closed set of JSON-compatible values:
//
//   - Object: a directory, or a YAML mapping
//   - Array: a YAML sequence
//   - String, Number, Bool: YAML scalars
//   - Null: a non-YAML file, or a YAML null
//
// The set is sealed so a type switch over Value is exhaustive.
//
// # Usage
//
// Convert a decoded YAML value and hand it to a JSON Schema engine:
//
//	var raw any
//	_ = yaml.Unmarshal(data, &raw)
//	v, err := document.FromYAML(raw)
//	if err != nil {
//	    return err
//	}
//	engineInput := document.Raw(v)
package document
