// Package schema validates materialized documents against JSON Schema
// (draft-7 unless the schema declares its own $schema).
//
// Every violation is collected, ordered by its location in the document and
// returned as a ValidationError record. A malformed schema is reported as a
// DefinitionError when it is compiled, before any document is checked.
package schema
