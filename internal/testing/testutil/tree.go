package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestTree is a temporary directory tree for tests
type TestTree struct {
	Root string
	t    *testing.T
}

// NewTestTree creates an empty temporary tree
func NewTestTree(t *testing.T) *TestTree {
	t.Helper()

	return &TestTree{
		Root: t.TempDir(),
		t:    t,
	}
}

// Path returns the absolute path of rel inside the tree
func (tr *TestTree) Path(rel string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(rel))
}

// WriteFile writes content to rel, creating parent directories
func (tr *TestTree) WriteFile(rel, content string) {
	tr.t.Helper()

	path := tr.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tr.t.Fatalf("creating parent of %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tr.t.Fatalf("writing %s: %v", rel, err)
	}
}

// Mkdir creates the directory rel and its parents
func (tr *TestTree) Mkdir(rel string) {
	tr.t.Helper()

	if err := os.MkdirAll(tr.Path(rel), 0o755); err != nil {
		tr.t.Fatalf("creating directory %s: %v", rel, err)
	}
}

// Symlink creates a link at rel pointing to target.
// The test is skipped when the platform refuses to create links.
func (tr *TestTree) Symlink(target, rel string) {
	tr.t.Helper()

	path := tr.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tr.t.Fatalf("creating parent of %s: %v", rel, err)
	}
	if err := os.Symlink(target, path); err != nil {
		tr.t.Skipf("symlinks unavailable: %v", err)
	}
}

// WriteSchema writes a JSON schema document next to the tree and returns its path
func (tr *TestTree) WriteSchema(content string) string {
	tr.t.Helper()

	path := filepath.Join(tr.t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tr.t.Fatalf("writing schema: %v", err)
	}
	return path
}
