// Package structure ties the tree materializer and the schema validator into
// a single validation run.
package structure

import (
	"context"
	"time"

	"github.com/simonhull/firebird-suite/nest/internal/document"
	"github.com/simonhull/firebird-suite/nest/internal/logger"
	"github.com/simonhull/firebird-suite/nest/internal/schema"
	"github.com/simonhull/firebird-suite/nest/internal/tree"
	"github.com/spf13/afero"
)

// Structure validates one folder against one schema.
// The folder is read from disk again on every Validate call.
type Structure struct {
	Folder string

	fs        afero.Fs
	validator *schema.Validator
	opts      tree.Options
	log       logger.Logger
}

// New creates a Structure from an already compiled schema
func New(fs afero.Fs, folder string, validator *schema.Validator, opts tree.Options, log logger.Logger) *Structure {
	if log == nil {
		log = logger.Default()
	}
	return &Structure{
		Folder:    folder,
		fs:        fs,
		validator: validator,
		opts:      opts,
		log:       log.WithFields(logger.F("folder", folder)),
	}
}

// Load reads and compiles the schema at schemaPath and returns a Structure for folder
func Load(fs afero.Fs, folder, schemaPath string, opts tree.Options, log logger.Logger) (*Structure, error) {
	raw, err := schema.LoadFile(fs, schemaPath)
	if err != nil {
		return nil, err
	}

	validator, err := schema.Compile(raw)
	if err != nil {
		return nil, err
	}

	st := New(fs, folder, validator, opts, log)
	if uri, ignored := validator.IgnoredDraft(); ignored {
		st.log.Warn("schema declares another draft; validating as draft-7",
			logger.F("schema", schemaPath),
			logger.F("$schema", uri),
		)
	}
	return st, nil
}

// Build materializes the folder
func (s *Structure) Build(ctx context.Context) (document.Object, error) {
	start := time.Now()

	doc, err := tree.Build(ctx, s.fs, s.Folder, s.opts)
	if err != nil {
		s.log.Debug("materialization failed", logger.F("error", err.Error()))
		return nil, err
	}

	s.log.Debug("materialized folder",
		logger.F("entries", len(doc)),
		logger.F("duration", time.Since(start)),
	)
	return doc, nil
}

// Validate materializes the folder and checks it against the schema.
// Fatal problems (I/O, YAML, schema) are returned as errors; violations are
// returned in the Result.
func (s *Structure) Validate(ctx context.Context) (*schema.Result, error) {
	doc, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.validator.Validate(doc)
	if err != nil {
		return nil, err
	}

	if result.Valid() {
		s.log.Info("structure is valid")
	} else {
		s.log.Info("structure is invalid", logger.F("violations", len(result.Errors)))
	}
	return result, nil
}
