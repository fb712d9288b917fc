// Package page defines the page descriptor model and its TOML codec.
package page

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

// Descriptor is the per-page metadata document. Title is the site-wide key
// used for cross references; URL is the site-relative output path without
// extension.
type Descriptor struct {
	Title      string   `toml:"title"`
	Type       Type     `toml:"page_type"`
	URL        string   `toml:"url"`
	Related    []string `toml:"related,omitempty"`
	Categories []string `toml:"categories,omitempty"`
	Subpages   []string `toml:"subpages,omitempty"`
}

// Decode parses a descriptor document and validates it.
func Decode(r io.Reader) (Descriptor, error) {
	var d Descriptor
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return Descriptor{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", "))
	}
	if !md.IsDefined("page_type") {
		return Descriptor{}, fmt.Errorf("%w: page_type", ErrMissingField)
	}
	d.normalize()
	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Encode writes d in the on-disk descriptor format.
func Encode(w io.Writer, d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(d)
}

// normalize maps empty optional lists to nil so that decoding what Encode
// wrote yields an identical value.
func (d *Descriptor) normalize() {
	for _, list := range []*[]string{&d.Related, &d.Categories, &d.Subpages} {
		if len(*list) == 0 {
			*list = nil
		}
	}
}

// Validate checks the descriptor shape independent of any other page.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if !d.Type.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownPageType, d.Type)
	}
	if err := ValidateURL(d.URL); err != nil {
		return err
	}
	switch d.Type {
	case Algorithm:
		if len(d.Subpages) > 0 {
			return fmt.Errorf("%w: subpages on %s page %q", ErrFieldNotApplicable, d.Type, d.Title)
		}
	case Category:
		if len(d.Categories) > 0 {
			return fmt.Errorf("%w: categories on %s page %q", ErrFieldNotApplicable, d.Type, d.Title)
		}
	case Generic:
	}
	return nil
}

// ValidateURL checks that u is a clean, relative, slash-separated path that
// stays inside the output root.
func ValidateURL(u string) error {
	switch {
	case u == "":
		return fmt.Errorf("%w: url", ErrMissingField)
	case strings.HasPrefix(u, "/"):
		return fmt.Errorf("%w: %q must be relative", ErrInvalidURL, u)
	case strings.Contains(u, `\`):
		return fmt.Errorf("%w: %q must use forward slashes", ErrInvalidURL, u)
	case path.Clean(u) != u || u == ".":
		return fmt.Errorf("%w: %q is not a clean path", ErrInvalidURL, u)
	case u == ".." || strings.HasPrefix(u, "../"):
		return fmt.Errorf("%w: %q escapes the output directory", ErrInvalidURL, u)
	case strings.ContainsAny(u, "#?"):
		return fmt.Errorf("%w: %q must not contain a fragment or query", ErrInvalidURL, u)
	case strings.HasSuffix(u, ".html"):
		return fmt.Errorf("%w: %q must not carry the .html extension", ErrInvalidURL, u)
	}
	return nil
}
