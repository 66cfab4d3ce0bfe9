//go:build unit || !integration

package validate

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(path string) error {
	return os.WriteFile(path, []byte{}, 0o644)
}

func TestIsDirectory(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		if err := IsDirectory(t.TempDir(), "expected a directory"); err != nil {
			t.Errorf("IsDirectory failed: unexpected error for a directory: %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing")
		if err := IsDirectory(missing, "%q is not a directory", missing); err == nil {
			t.Errorf("IsDirectory failed: expected error for a missing path")
		}
	})

	t.Run("File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := touch(file); err != nil {
			t.Fatal(err)
		}
		if err := IsDirectory(file, "%q is not a directory", file); err == nil {
			t.Errorf("IsDirectory failed: expected error for a regular file")
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := touch(file); err != nil {
			t.Fatal(err)
		}
		if err := FileExists(file, "expected file to exist"); err != nil {
			t.Errorf("FileExists failed: unexpected error for an existing file: %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if err := FileExists(filepath.Join(t.TempDir(), "missing"), "expected file to exist"); err == nil {
			t.Errorf("FileExists failed: expected error for a missing file")
		}
	})
}
