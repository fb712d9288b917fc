// Package discovery finds and parses page descriptors under a content root.
package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/page"
)

const (
	// DescriptorSuffix identifies descriptor files.
	DescriptorSuffix = ".toml"
	// MarkdownExt is the extension of a page's markdown body.
	MarkdownExt = ".md"
)

// Entry is a loaded descriptor together with the file it came from.
type Entry struct {
	Descriptor page.Descriptor
	SourcePath string
}

// Dir returns the page directory, where the markdown body and implementation
// listings live.
func (e Entry) Dir() string { return filepath.Dir(e.SourcePath) }

// MarkdownPath returns the sibling markdown body path: the descriptor path
// with its extension replaced.
func (e Entry) MarkdownPath() string {
	return strings.TrimSuffix(e.SourcePath, filepath.Ext(e.SourcePath)) + MarkdownExt
}

// Index holds every descriptor of one compile, keyed by title.
type Index struct {
	byTitle map[string]Entry
}

// Get returns the entry for title.
func (ix *Index) Get(title string) (Entry, bool) {
	e, ok := ix.byTitle[title]
	return e, ok
}

// Len returns the number of loaded descriptors.
func (ix *Index) Len() int { return len(ix.byTitle) }

// Titles returns all titles, sorted.
func (ix *Index) Titles() []string {
	titles := make([]string, 0, len(ix.byTitle))
	for t := range ix.byTitle {
		titles = append(titles, t)
	}
	slices.Sort(titles)
	return titles
}

// Entries returns all entries sorted by title.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, 0, len(ix.byTitle))
	for _, t := range ix.Titles() {
		out = append(out, ix.byTitle[t])
	}
	return out
}

// Options tune LoadAll.
type Options struct {
	// RejectGeneric fails the load when a Generic descriptor is found.
	RejectGeneric bool
}

// LoadAll walks root recursively in lexical order and loads every descriptor.
// Any unreadable or invalid descriptor aborts the load.
func LoadAll(root string, opts Options) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.WrapError(fmt.Errorf("%w: %s", ErrRootNotFound, root), errors.CategoryDiscovery, "cannot scan content root").
			WithContext("path", root).
			Build()
	}

	ix := &Index{byTitle: make(map[string]Entry)}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), DescriptorSuffix) {
			return nil
		}
		entry, err := loadEntry(path)
		if err != nil {
			return err
		}
		if opts.RejectGeneric && entry.Descriptor.Type == page.Generic {
			return errors.WrapError(ErrGenericRejected, errors.CategoryDiscovery, "generic page found").
				WithContext("path", path).
				WithContext("title", entry.Descriptor.Title).
				Build()
		}
		return ix.add(entry)
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryDiscovery, "content walk failed").WithContext("path", root).Build()
	}

	slog.Debug("Descriptors loaded", logfields.Path(root), logfields.Count(ix.Len()))
	return ix, nil
}

func loadEntry(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, errors.WrapError(err, errors.CategoryDiscovery, "failed to read descriptor").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	d, err := page.Decode(f)
	if err != nil {
		return Entry{}, errors.WrapError(err, errors.CategoryDiscovery, "invalid descriptor").
			WithContext("path", path).
			Build()
	}
	slog.Debug("Discovered page", logfields.Path(path), logfields.Title(d.Title), logfields.PageType(d.Type.String()))
	return Entry{Descriptor: d, SourcePath: path}, nil
}

func (ix *Index) add(e Entry) error {
	title := e.Descriptor.Title
	if prev, exists := ix.byTitle[title]; exists {
		return errors.WrapError(fmt.Errorf("%w: %q", ErrDuplicateTitle, title), errors.CategoryDiscovery, "duplicate page title").
			WithContext("path", e.SourcePath).
			WithContext("first_path", prev.SourcePath).
			WithContext("title", title).
			Build()
	}
	ix.byTitle[title] = e
	return nil
}
