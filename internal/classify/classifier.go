// Package classify maps file extensions to human-readable language labels.
//
// The same label is used to group implementation listings on a page and to
// select the highlighting grammar, so labels must be grammar names the
// highlighter understands ("Python", "C++", "Rust").
package classify

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/util/sets"
)

// FormatError reports a malformed line in a classifier table.
type FormatError struct {
	Source string
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Source, e.Line, e.Reason, e.Text)
}

// Classifier is an immutable extension → label table.
type Classifier struct {
	labels map[string]string
}

// New builds a classifier from an in-memory mapping. Extensions may be given
// with or without a leading dot.
func New(mapping map[string]string) *Classifier {
	labels := make(map[string]string, len(mapping))
	for ext, label := range mapping {
		labels[strings.TrimPrefix(ext, ".")] = label
	}
	return &Classifier{labels: labels}
}

// LoadFile reads a classifier table from path.
func LoadFile(path string) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryClassifier, "failed to open classifier table").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()
	return Load(f, path)
}

// Load parses a two-column "extension,label" table. Each line is split at its
// first comma and both halves are trimmed. Whitespace-only lines are skipped;
// any other malformed line aborts the load.
func Load(r io.Reader, source string) (*Classifier, error) {
	labels := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ext, label, found := strings.Cut(line, ",")
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		label = strings.TrimSpace(label)

		var reason string
		switch {
		case !found:
			reason = "missing comma"
		case ext == "":
			reason = "empty extension"
		case label == "":
			reason = "empty label"
		}
		if reason == "" {
			if _, dup := labels[ext]; dup {
				reason = "duplicate extension " + ext
			}
		}
		if reason != "" {
			return nil, formatError(&FormatError{Source: source, Line: lineNo, Text: line, Reason: reason})
		}
		labels[ext] = label
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryClassifier, "failed to read classifier table").
			WithContext("path", source).
			Build()
	}
	return &Classifier{labels: labels}, nil
}

func formatError(fe *FormatError) error {
	return errors.WrapError(fe, errors.CategoryClassifier, "malformed classifier table").
		WithContext("path", fe.Source).
		WithContext("line", fe.Line).
		Build()
}

// LabelFor returns the label registered for ext (without dot).
func (c *Classifier) LabelFor(ext string) (string, bool) {
	label, ok := c.labels[ext]
	return label, ok
}

// LabelForFile classifies a file name by its extension. Names without a dot
// are unrecognized.
func (c *Classifier) LabelForFile(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return "", false
	}
	return c.LabelFor(name[i+1:])
}

// Labels returns the distinct labels, sorted.
func (c *Classifier) Labels() []string {
	distinct := sets.New[string]()
	for _, label := range c.labels {
		distinct.Add(label)
	}
	return sets.Sorted(distinct)
}

// Len returns the number of registered extensions.
func (c *Classifier) Len() int { return len(c.labels) }
