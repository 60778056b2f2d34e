package tree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotDirectory is returned when the root path is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrSymlinkLoop is returned when a symlink points back to one of its ancestors.
	ErrSymlinkLoop = errors.New("symlink loop detected")

	// ErrUnsupportedFile is returned for sockets, devices and named pipes.
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// ParseError reports a YAML file whose content could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing YAML file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFileError reports a file that strict mode does not allow.
type InvalidFileError struct {
	Path    string
	Allowed []string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid file %s: only directories, %s files are allowed",
		e.Path, strings.Join(e.Allowed, ", "))
}
