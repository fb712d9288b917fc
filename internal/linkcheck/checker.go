package linkcheck

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/algowiki/internal/util/sets"
)

// BrokenLink is an internal page link with no generated target.
type BrokenLink struct {
	Page   string // url of the document containing the link
	Target string // resolved site path
	Link   Link
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s: %s %q -> %s", b.Page, b.Link.Tag, b.Link.URL, b.Target)
}

// Checker knows the complete set of generated pages.
type Checker struct {
	known sets.Set[string]
}

// NewChecker builds a checker from site-absolute hrefs such as
// "/sorting/insertion_sort.html".
func NewChecker(hrefs []string) *Checker {
	known := sets.New[string]()
	for _, h := range hrefs {
		known.Add(path.Clean(h))
	}
	return &Checker{known: known}
}

// Check extracts the links of the document generated for pageURL and returns
// the internal .html links that target no known page. Assets, fragments and
// external links are ignored.
func (c *Checker) Check(pageURL string, doc []byte) ([]BrokenLink, error) {
	found, err := ExtractLinks(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}

	base := &url.URL{Path: "/" + pageURL + ".html"}
	var broken []BrokenLink
	for _, l := range found {
		if !l.Internal {
			continue
		}
		ref, err := url.Parse(l.URL)
		if err != nil || ref.Path == "" {
			continue
		}
		target := path.Clean(base.ResolveReference(ref).Path)
		if !strings.HasSuffix(target, ".html") {
			continue
		}
		if !c.known.Has(target) {
			broken = append(broken, BrokenLink{Page: pageURL, Target: target, Link: l})
		}
	}
	return broken, nil
}
