// Package implementations collects the source-code listings that sit next to
// an algorithm page's descriptor.
package implementations

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/algowiki/internal/classify"
	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/util/sets"
)

// ConflictPolicy decides what happens when two files map to the same label.
type ConflictPolicy int

const (
	// ConflictLastWins keeps the file whose name sorts last. Directory entries are
	// read in name order, so the outcome does not depend on the filesystem.
	ConflictLastWins ConflictPolicy = iota
	// ConflictError returns a *DuplicateLabelError.
	ConflictError
)

// DuplicateLabelError reports two listings that share a label.
type DuplicateLabelError struct {
	Label string
	Paths []string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate implementation label %q: %v", e.Label, e.Paths)
}

// Listing is one implementation file.
type Listing struct {
	Label  string
	Path   string
	Source string
}

// Set maps a label to its listing.
type Set map[string]Listing

// Labels returns the labels in the set, sorted.
func (s Set) Labels() []string {
	labels := make([]string, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// Sources returns the label → source text view of the set.
func (s Set) Sources() map[string]string {
	out := make(map[string]string, len(s))
	for l, listing := range s {
		out[l] = listing.Source
	}
	return out
}

// Options tune Collect.
type Options struct {
	// Exclude lists paths that are never treated as listings, typically the
	// descriptor and the markdown body.
	Exclude []string
	Policy  ConflictPolicy
}

// Collect reads the immediate regular files of dir whose extension the
// classifier recognizes. Unknown extensions and files without an extension
// are skipped silently.
func Collect(dir string, c *classify.Classifier, opts Options) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list page directory").
			WithContext("path", dir).
			Build()
	}

	excluded := sets.New[string]()
	for _, p := range opts.Exclude {
		excluded.Add(filepath.Clean(p))
	}

	set := make(Set)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if excluded.Has(path) {
			continue
		}
		label, ok := c.LabelForFile(entry.Name())
		if !ok {
			slog.Debug("Skipping unclassified file", logfields.Path(path))
			continue
		}

		if prev, dup := set[label]; dup {
			if opts.Policy == ConflictError {
				return nil, errors.WrapError(&DuplicateLabelError{Label: label, Paths: []string{prev.Path, path}},
					errors.CategoryRender, "conflicting implementation listings").
					WithContext("path", dir).
					WithContext("label", label).
					Build()
			}
			slog.Warn("Implementation listing replaced by later file",
				logfields.Label(label),
				slog.String("replaced", prev.Path),
				logfields.Path(path))
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read implementation").
				WithContext("path", path).
				Build()
		}
		set[label] = Listing{Label: label, Path: path, Source: string(data)}
	}
	return set, nil
}
