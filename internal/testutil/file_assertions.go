package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions checks the state of an output directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions returns assertions rooted at baseDir.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

func (fa *FileAssertions) path(rel string) string {
	return filepath.Join(fa.baseDir, filepath.FromSlash(rel))
}

// Read returns the content of rel, failing the test if it cannot be read.
func (fa *FileAssertions) Read(rel string) string {
	fa.t.Helper()
	data, err := os.ReadFile(fa.path(rel))
	if err != nil {
		fa.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// AssertFileExists validates that a file exists.
func (fa *FileAssertions) AssertFileExists(rel string) *FileAssertions {
	fa.t.Helper()
	if _, err := os.Stat(fa.path(rel)); err != nil {
		fa.t.Errorf("Expected file to exist: %s", fa.path(rel))
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist.
func (fa *FileAssertions) AssertFileNotExists(rel string) *FileAssertions {
	fa.t.Helper()
	if _, err := os.Stat(fa.path(rel)); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fa.path(rel))
	}
	return fa
}

// AssertFileContains validates that a file contains expected.
func (fa *FileAssertions) AssertFileContains(rel, expected string) *FileAssertions {
	fa.t.Helper()
	if content := fa.Read(rel); !strings.Contains(content, expected) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", rel, expected, content)
	}
	return fa
}

// AssertFileEmpty validates that a file exists and has no content.
func (fa *FileAssertions) AssertFileEmpty(rel string) *FileAssertions {
	fa.t.Helper()
	if content := fa.Read(rel); content != "" {
		fa.t.Errorf("Expected file %s to be empty, got %d bytes", rel, len(content))
	}
	return fa
}
