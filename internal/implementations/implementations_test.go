package implementations

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/algowiki/internal/classify"
)

func writeDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func pyCpp() *classify.Classifier {
	return classify.New(map[string]string{"py": "Python", "cpp": "C++"})
}

func TestCollectKnownExtensionsOnly(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"sort.py":  "def sort(a): pass\n",
		"sort.cpp": "void sort() {}\n",
		"sort.txt": "notes\n",
		"Makefile": "all:\n",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.py"), 0o755))

	set, err := Collect(dir, pyCpp(), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C++", "Python"}, set.Labels())
	assert.Equal(t, map[string]string{
		"Python": "def sort(a): pass\n",
		"C++":    "void sort() {}\n",
	}, set.Sources())
	assert.Equal(t, filepath.Join(dir, "sort.py"), set["Python"].Path)
}

func TestCollectExcludesDescriptorAndBody(t *testing.T) {
	// Descriptor and markdown body are excluded even when their extensions
	// are classified.
	c := classify.New(map[string]string{"toml": "TOML", "md": "Markdown", "rs": "Rust"})
	dir := writeDir(t, map[string]string{
		"insertion_sort.toml": "title = \"x\"\n",
		"insertion_sort.md":   "# x\n",
		"insertion_sort.rs":   "fn x() {}\n",
		"extra.md":            "# other\n",
	})

	set, err := Collect(dir, c, Options{Exclude: []string{
		filepath.Join(dir, "insertion_sort.toml"),
		filepath.Join(dir, "./insertion_sort.md"),
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Markdown", "Rust"}, set.Labels())
	assert.Equal(t, filepath.Join(dir, "extra.md"), set["Markdown"].Path)
	for _, l := range set {
		assert.NotEqual(t, filepath.Join(dir, "insertion_sort.toml"), l.Path)
		assert.NotEqual(t, filepath.Join(dir, "insertion_sort.md"), l.Path)
	}
}

func TestCollectSameLabelYieldsOneEntry(t *testing.T) {
	dir := writeDir(t, map[string]string{
		"a.py": "A\n",
		"b.py": "B\n",
	})

	set, err := Collect(dir, pyCpp(), Options{})
	require.NoError(t, err)
	require.Len(t, set, 1)
	src := set["Python"].Source
	// Exactly one of the files, never both.
	assert.Contains(t, []string{"A\n", "B\n"}, src)
	// Current tie-break: name order, last wins.
	assert.Equal(t, "B\n", src)
}

func TestCollectConflictError(t *testing.T) {
	dir := writeDir(t, map[string]string{"a.py": "A", "b.py": "B"})

	_, err := Collect(dir, pyCpp(), Options{Policy: ConflictError})
	require.Error(t, err)
	var dle *DuplicateLabelError
	require.True(t, stderrors.As(err, &dle))
	assert.Equal(t, "Python", dle.Label)
	assert.Equal(t, []string{filepath.Join(dir, "a.py"), filepath.Join(dir, "b.py")}, dle.Paths)
}

func TestCollectEmptyAndMissingDir(t *testing.T) {
	set, err := Collect(t.TempDir(), pyCpp(), Options{})
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Empty(t, set.Labels())

	_, err = Collect(filepath.Join(t.TempDir(), "missing"), pyCpp(), Options{})
	assert.Error(t, err)
}
