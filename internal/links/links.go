// Package links maps page titles to the site urls they are published at.
//
// A Table is built once, after every descriptor has been loaded, and is only
// read afterwards. Renderers share it without locking.
package links

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
)

// HTMLExt is appended to a page url to form its output file name.
const HTMLExt = ".html"

var (
	// ErrDuplicateTitle is returned when two targets share a title.
	ErrDuplicateTitle = errors.New("duplicate page title")

	// ErrOutputCollision is returned when two urls would be written to the
	// same output file.
	ErrOutputCollision = errors.New("output path collision")

	// ErrUnresolvedReference matches every *UnresolvedReferenceError.
	ErrUnresolvedReference = errors.New("unresolved page reference")
)

// UnresolvedReferenceError names a title that has no page. Referrer is empty
// when the lookup was not made on behalf of a page.
type UnresolvedReferenceError struct {
	Referrer string
	Title    string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("unresolved page reference %q", e.Title)
	}
	return fmt.Sprintf("page %q references unknown page %q", e.Referrer, e.Title)
}

func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// Target is a page as seen by the link table.
type Target struct {
	Title string
	URL   string
}

// Link is a resolved reference ready for rendering.
type Link struct {
	Title string
	Href  string
}

// Table is the immutable title → url mapping for one compile.
type Table struct {
	urls map[string]string
	// cleaned url → title, for collision detection and breadcrumbs
	pages map[string]string
}

// Build constructs the table in a single pass.
func Build(targets []Target) (*Table, error) {
	t := &Table{
		urls:  make(map[string]string, len(targets)),
		pages: make(map[string]string, len(targets)),
	}
	for _, tg := range targets {
		if _, dup := t.urls[tg.Title]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, tg.Title)
		}
		key := path.Clean(tg.URL)
		if other, clash := t.pages[key]; clash {
			return nil, fmt.Errorf("%w: %q and %q both write %s", ErrOutputCollision, other, tg.Title, key+HTMLExt)
		}
		t.urls[tg.Title] = tg.URL
		t.pages[key] = tg.Title
	}
	return t, nil
}

// Len returns the number of pages in the table.
func (t *Table) Len() int { return len(t.urls) }

// Resolve returns the url of the page with the given title.
func (t *Table) Resolve(title string) (string, error) {
	u, ok := t.urls[title]
	if !ok {
		return "", &UnresolvedReferenceError{Title: title}
	}
	return u, nil
}

// Href returns the site-absolute link to the page with the given title.
func (t *Table) Href(title string) (string, error) {
	u, err := t.Resolve(title)
	if err != nil {
		return "", err
	}
	return HrefFor(u), nil
}

// ResolveAll turns a list of titles into links, preserving order. The first
// unknown title fails the whole list and the error names the referrer.
func (t *Table) ResolveAll(referrer string, titles []string) ([]Link, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	out := make([]Link, 0, len(titles))
	for _, title := range titles {
		u, ok := t.urls[title]
		if !ok {
			return nil, &UnresolvedReferenceError{Referrer: referrer, Title: title}
		}
		out = append(out, Link{Title: title, Href: HrefFor(u)})
	}
	return out, nil
}

// HasURL reports whether some page is published at url.
func (t *Table) HasURL(url string) bool {
	_, ok := t.pages[path.Clean(url)]
	return ok
}

// Hrefs returns the href of every page, sorted.
func (t *Table) Hrefs() []string {
	out := make([]string, 0, len(t.pages))
	for u := range t.pages {
		out = append(out, HrefFor(u))
	}
	slices.Sort(out)
	return out
}

// HrefFor formats a page url as a site-absolute link.
func HrefFor(url string) string {
	return "/" + url + HTMLExt
}

// OutputPath returns the file a page url is written to, relative to the
// output directory.
func OutputPath(url string) string {
	return filepath.FromSlash(path.Clean(url) + HTMLExt)
}
