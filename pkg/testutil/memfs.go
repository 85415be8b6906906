package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/wrapperize/pkg/filesystem"
)

// NewMemoryFS returns an empty in-memory filesystem.
func NewMemoryFS() filesystem.FS {
	return filesystem.NewMemory()
}

// WriteMemFile writes content to path in fs, creating parent directories.
func WriteMemFile(t *testing.T, fs filesystem.FS, path, content string, perm os.FileMode) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := fs.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadMemFile reads path from fs and fails the test if it cannot.
func ReadMemFile(t *testing.T, fs filesystem.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
