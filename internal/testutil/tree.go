// Package testutil holds fixtures shared by package tests: content trees on
// disk and assertions over generated output.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o600
)

// WriteTree creates files under root. Keys are slash-separated paths
// relative to root; parent directories are created as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// Descriptor renders a page descriptor in TOML. Extra lines such as
// `subpages = ["A"]` are appended verbatim.
func Descriptor(title, pageType, url string, extra ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "title = %q\npage_type = %q\nurl = %q\n", title, pageType, url)
	for _, line := range extra {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
