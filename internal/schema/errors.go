package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError is a single schema violation
type ValidationError struct {
	Location  string  `json:"location"`  // Path segments joined by " -> ", or "root"
	Message   string  `json:"message"`   // Engine message
	Validator *string `json:"validator"` // Failing keyword (e.g. "required"), if known
	Expected  *string `json:"expected"`  // Keyword value, only when non-empty

	path    Path
	keyword string
}

// Error returns a formatted error message
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error at %s: %s", e.Location, e.Message)
	if e.Validator != nil {
		msg += fmt.Sprintf(" (validator: %s", *e.Validator)
		if e.Expected != nil {
			msg += fmt.Sprintf(", expected: %s", *e.Expected)
		}
		msg += ")"
	}
	return msg
}

// Printable renders the record one field per line, omitting absent fields.
func (e *ValidationError) Printable() string {
	parts := []string{
		"Location: " + e.Location,
		"Message: " + e.Message,
	}
	if e.Validator != nil && *e.Validator != "" {
		parts = append(parts, "Validator: "+*e.Validator)
	}
	if e.Expected != nil && *e.Expected != "" {
		parts = append(parts, "Expected: "+*e.Expected)
	}
	return strings.Join(parts, "\n")
}

// Path returns the structural path of the violation.
func (e *ValidationError) Path() Path {
	return e.path
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("found %d validation errors:\n", len(e)))
	for i, err := range e {
		buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return buf.String()
}

// Result is the outcome of validating one document.
// A nil or empty Result means the document is valid.
type Result struct {
	Errors ValidationErrors
}

// Valid reports whether no violations were found
func (r *Result) Valid() bool {
	return r == nil || len(r.Errors) == 0
}

// Err returns the violations as an error, or nil when valid.
// Callers that treat violations as fatal return this directly.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// MarshalJSON writes {"valid": true} or {"valid": false, "errors": [...]}.
func (r *Result) MarshalJSON() ([]byte, error) {
	payload := struct {
		Valid  bool             `json:"valid"`
		Errors ValidationErrors `json:"errors,omitempty"`
	}{Valid: r.Valid()}
	if r != nil {
		payload.Errors = r.Errors
	}
	return json.Marshal(payload)
}

// DefinitionError reports a schema that is itself malformed
type DefinitionError struct {
	Err error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid schema: %v", e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// LoadError reports a schema file that could not be read or decoded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading schema %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
