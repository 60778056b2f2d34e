// Package tree materializes a directory into a document.Object.
//
// Directories become objects keyed by entry name, YAML files become their
// parsed content and every other regular file becomes null.
package tree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/simonhull/firebird-suite/nest/internal/document"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// GitKeep is the placeholder file name accepted in strict mode.
const GitKeep = ".gitkeep"

// DefaultYAMLExtensions are the suffixes parsed as YAML when none are configured.
var DefaultYAMLExtensions = []string{".yaml"}

// Options configures materialization
type Options struct {
	YAMLExtensions []string // File suffixes parsed as YAML (default: DefaultYAMLExtensions)
	Strict         bool     // Reject files that are neither YAML nor .gitkeep
	Concurrency    int      // Extra goroutines for subdirectories (0 = sequential)
}

type builder struct {
	fs   afero.Fs
	opts Options
	sem  *semaphore.Weighted
}

// Build reads root from fs and returns its document.
// Any I/O or parse failure aborts the whole build; no partial document is returned.
func Build(ctx context.Context, fs afero.Fs, root string, opts Options) (document.Object, error) {
	if len(opts.YAMLExtensions) == 0 {
		opts.YAMLExtensions = DefaultYAMLExtensions
	}

	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	b := &builder{fs: fs, opts: opts}
	if opts.Concurrency > 0 {
		b.sem = semaphore.NewWeighted(int64(opts.Concurrency))
	}

	return b.walkDir(ctx, root, []os.FileInfo{info})
}

// walkDir materializes dir. Subdirectories run on their own goroutine when a
// semaphore slot is free and inline otherwise, so nested walks never block
// waiting for a slot held by an ancestor.
func (b *builder) walkDir(ctx context.Context, dir string, ancestors []os.FileInfo) (document.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	result := make(document.Object, len(entries))
	var mu sync.Mutex
	set := func(name string, v document.Value) {
		mu.Lock()
		result[name] = v
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if err := b.visit(gctx, g, path, entry, ancestors, func(v document.Value) { set(name, v) }); err != nil {
			if werr := g.Wait(); werr != nil {
				return nil, werr
			}
			return nil, err
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (b *builder) visit(ctx context.Context, g *errgroup.Group, path string, entry os.FileInfo, ancestors []os.FileInfo, set func(document.Value)) error {
	info, err := b.resolve(path, entry)
	if err != nil {
		return err
	}

	switch {
	case info.IsDir():
		for _, ancestor := range ancestors {
			if os.SameFile(ancestor, info) {
				return fmt.Errorf("%s: %w", path, ErrSymlinkLoop)
			}
		}
		chain := append(ancestors[:len(ancestors):len(ancestors)], info)

		walk := func() error {
			sub, err := b.walkDir(ctx, path, chain)
			if err != nil {
				return err
			}
			set(sub)
			return nil
		}

		if b.sem != nil && b.sem.TryAcquire(1) {
			g.Go(func() error {
				defer b.sem.Release(1)
				return walk()
			})
			return nil
		}
		return walk()

	case info.Mode().IsRegular():
		v, err := b.readFile(path, entry.Name())
		if err != nil {
			return err
		}
		set(v)
		return nil

	default:
		return fmt.Errorf("%s (%s): %w", path, info.Mode().Type(), ErrUnsupportedFile)
	}
}

// resolve follows symlinks. Dangling links surface as I/O errors.
func (b *builder) resolve(path string, entry os.FileInfo) (os.FileInfo, error) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry, nil
	}

	info, err := b.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resolving symlink %s: %w", path, err)
	}
	return info, nil
}

func (b *builder) readFile(path, name string) (document.Value, error) {
	if !b.isYAML(name) {
		if b.opts.Strict && name != GitKeep {
			return nil, &InvalidFileError{
				Path:    path,
				Allowed: append([]string{GitKeep}, b.opts.YAMLExtensions...),
			}
		}
		return document.Null{}, nil
	}

	data, err := afero.ReadFile(b.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	v, err := ParseYAML(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return v, nil
}

func (b *builder) isYAML(name string) bool {
	for _, ext := range b.opts.YAMLExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
