package links

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEveryTarget(t *testing.T) {
	targets := []Target{
		{Title: "Insertion Sort", URL: "sorting/insertion_sort"},
		{Title: "Merge Sort", URL: "sorting/merge_sort"},
		{Title: "Sorting", URL: "sorting"},
		{Title: "Graphs", URL: "graphs/index"},
	}
	table, err := Build(targets)
	require.NoError(t, err)
	assert.Equal(t, len(targets), table.Len())

	for _, tg := range targets {
		got, err := table.Resolve(tg.Title)
		require.NoError(t, err)
		assert.Equal(t, tg.URL, got)
	}
}

func TestResolveUnknown(t *testing.T) {
	table, err := Build([]Target{{Title: "A", URL: "a"}})
	require.NoError(t, err)

	_, err = table.Resolve("B")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedReference))
	var ure *UnresolvedReferenceError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, "B", ure.Title)
	assert.Empty(t, ure.Referrer)
}

func TestResolveAll(t *testing.T) {
	table, err := Build([]Target{
		{Title: "Sorting", URL: "sorting"},
		{Title: "Merge Sort", URL: "sorting/merge_sort"},
	})
	require.NoError(t, err)

	got, err := table.ResolveAll("Insertion Sort", []string{"Merge Sort", "Sorting"})
	require.NoError(t, err)
	assert.Equal(t, []Link{
		{Title: "Merge Sort", Href: "/sorting/merge_sort.html"},
		{Title: "Sorting", Href: "/sorting.html"},
	}, got)

	empty, err := table.ResolveAll("Insertion Sort", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = table.ResolveAll("Insertion Sort", []string{"Sorting", "Bogo Sort"})
	require.ErrorIs(t, err, ErrUnresolvedReference)
	assert.Contains(t, err.Error(), `"Insertion Sort"`)
	assert.Contains(t, err.Error(), `"Bogo Sort"`)
}

func TestBuildDuplicateTitle(t *testing.T) {
	_, err := Build([]Target{
		{Title: "A", URL: "a"},
		{Title: "A", URL: "b"},
	})
	assert.ErrorIs(t, err, ErrDuplicateTitle)
}

func TestBuildOutputCollision(t *testing.T) {
	_, err := Build([]Target{
		{Title: "A", URL: "sorting/a"},
		{Title: "B", URL: "sorting/./a"},
	})
	require.ErrorIs(t, err, ErrOutputCollision)
	assert.Contains(t, err.Error(), "sorting/a.html")

	// Case differences are distinct outputs.
	_, err = Build([]Target{
		{Title: "A", URL: "sorting/a"},
		{Title: "B", URL: "sorting/A"},
	})
	assert.NoError(t, err)
}

func TestHrefsAndHasURL(t *testing.T) {
	table, err := Build([]Target{
		{Title: "Sorting", URL: "sorting"},
		{Title: "Insertion Sort", URL: "sorting/insertion_sort"},
	})
	require.NoError(t, err)

	assert.True(t, table.HasURL("sorting"))
	assert.False(t, table.HasURL("graphs"))
	assert.Equal(t, []string{"/sorting.html", "/sorting/insertion_sort.html"}, table.Hrefs())

	href, err := table.Href("Insertion Sort")
	require.NoError(t, err)
	assert.Equal(t, "/sorting/insertion_sort.html", href)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("sorting", "insertion_sort.html"), OutputPath("sorting/insertion_sort"))
	assert.Equal(t, "index.html", OutputPath("index"))
}
