package structure

import (
	"errors"
	"io/fs"

	"github.com/simonhull/firebird-suite/nest/internal/schema"
	"github.com/simonhull/firebird-suite/nest/internal/settings"
	"github.com/simonhull/firebird-suite/nest/internal/tree"
)

// Failure kinds
const (
	KindConfiguration    = "configuration"
	KindIO               = "io"
	KindParse            = "parse"
	KindInvalidFile      = "invalid_file"
	KindSchemaDefinition = "schema_definition"
	KindSchemaViolation  = "schema_violation"
)

// Failure is the machine-readable description of a run error
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Classify returns the failure kind of err. Anything unrecognised is an I/O failure.
func Classify(err error) string {
	return Describe(err).Kind
}

// Describe converts a run error into a Failure
func Describe(err error) Failure {
	f := Failure{Kind: KindIO, Message: err.Error()}

	var (
		cfgErr     *settings.ConfigError
		loadErr    *schema.LoadError
		defErr     *schema.DefinitionError
		violations schema.ValidationErrors
		parseErr   *tree.ParseError
		invalidErr *tree.InvalidFileError
		pathErr    *fs.PathError
	)

	switch {
	case errors.As(err, &cfgErr):
		f.Kind = KindConfiguration
	case errors.As(err, &loadErr):
		f.Kind = KindConfiguration
		f.Path = loadErr.Path
	case errors.As(err, &defErr):
		f.Kind = KindSchemaDefinition
	case errors.As(err, &violations):
		f.Kind = KindSchemaViolation
	case errors.As(err, &parseErr):
		f.Kind = KindParse
		f.Path = parseErr.Path
	case errors.As(err, &invalidErr):
		f.Kind = KindInvalidFile
		f.Path = invalidErr.Path
	case errors.As(err, &pathErr):
		f.Path = pathErr.Path
	}

	return f
}
