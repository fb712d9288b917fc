package render

import (
	"bytes"
	"embed"
	stderrors "errors"
	"html/template"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/algowiki/internal/config"
	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/highlight"
	"git.home.luguber.info/inful/algowiki/internal/links"
)

//go:embed templates/*.html
var templateFS embed.FS

// Crumb is one breadcrumb segment. Href is empty when no page is published
// at that level.
type Crumb struct {
	Name string
	Href string
}

// Block is one highlighted implementation listing.
type Block struct {
	Label string
	Code  template.HTML
}

type document struct {
	Site            config.SiteConfig
	Title           string
	Breadcrumbs     []Crumb
	Related         []links.Link
	Categories      []links.Link
	Information     template.HTML
	Implementations []Block
	Subpages        []links.Link
}

// Renderer renders pages against one link table. It is safe for concurrent
// use once constructed.
type Renderer struct {
	table       *links.Table
	highlighter *highlight.Highlighter
	site        config.SiteConfig
	algorithm   *template.Template
	category    *template.Template
}

// NewRenderer parses the embedded layouts.
func NewRenderer(table *links.Table, hl *highlight.Highlighter, site config.SiteConfig) (*Renderer, error) {
	algorithm, err := parseLayout("algorithm")
	if err != nil {
		return nil, err
	}
	category, err := parseLayout("category")
	if err != nil {
		return nil, err
	}
	return &Renderer{
		table:       table,
		highlighter: hl,
		site:        site,
		algorithm:   algorithm,
		category:    category,
	}, nil
}

func parseLayout(name string) (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to parse layout").
			WithContext("layout", name).
			Build()
	}
	return t, nil
}

// Render produces the HTML document for p. A nil page renders as empty
// output.
func (r *Renderer) Render(p Page) ([]byte, error) {
	switch p := p.(type) {
	case nil:
		return nil, nil
	case *AlgorithmPage:
		return r.renderAlgorithm(p)
	case *CategoryPage:
		return r.renderCategory(p)
	default:
		return nil, errors.InternalError("unknown page variant").Build()
	}
}

func (r *Renderer) renderAlgorithm(p *AlgorithmPage) ([]byte, error) {
	related, err := r.resolve(p.Title, p.Related)
	if err != nil {
		return nil, err
	}
	categories, err := r.resolve(p.Title, p.Categories)
	if err != nil {
		return nil, err
	}

	labels := p.Implementations.Labels()
	blocks := make([]Block, 0, len(labels))
	for _, label := range labels {
		code, err := r.highlighter.Highlight(p.Implementations[label].Source, label)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to highlight implementation").
				WithContext("title", p.Title).
				WithContext("label", label).
				WithContext("path", p.Implementations[label].Path).
				Build()
		}
		blocks = append(blocks, Block{Label: label, Code: code})
	}

	return r.execute(r.algorithm, p.Title, document{
		Site:            r.site,
		Title:           p.Title,
		Breadcrumbs:     r.breadcrumbs(p.URL, p.Title),
		Related:         related,
		Categories:      categories,
		Information:     p.Information,
		Implementations: blocks,
	})
}

func (r *Renderer) renderCategory(p *CategoryPage) ([]byte, error) {
	related, err := r.resolve(p.Title, p.Related)
	if err != nil {
		return nil, err
	}
	subpages, err := r.resolve(p.Title, p.Subpages)
	if err != nil {
		return nil, err
	}

	return r.execute(r.category, p.Title, document{
		Site:        r.site,
		Title:       p.Title,
		Breadcrumbs: r.breadcrumbs(p.URL, p.Title),
		Related:     related,
		Information: p.Information,
		Subpages:    subpages,
	})
}

func (r *Renderer) resolve(referrer string, titles []string) ([]links.Link, error) {
	out, err := r.table.ResolveAll(referrer, titles)
	if err != nil {
		b := errors.WrapError(err, errors.CategoryResolution, "unresolved page reference").
			WithContext("title", referrer)
		var ure *links.UnresolvedReferenceError
		if stderrors.As(err, &ure) {
			b = b.WithContext("reference", ure.Title)
		}
		return nil, b.Build()
	}
	return out, nil
}

func (r *Renderer) execute(t *template.Template, title string, doc document) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to execute layout").
			WithContext("title", title).
			Build()
	}
	return buf.Bytes(), nil
}

var segmentReplacer = strings.NewReplacer("_", " ", "-", " ")

// breadcrumbs derives navigation from the url path. Intermediate segments
// link only when a page is published at that level; the final segment is the
// page itself and carries its title.
func (r *Renderer) breadcrumbs(url, title string) []Crumb {
	segments := strings.Split(path.Clean(url), "/")
	caser := cases.Title(language.English)
	crumbs := make([]Crumb, 0, len(segments))
	for i, seg := range segments {
		if i == len(segments)-1 {
			crumbs = append(crumbs, Crumb{Name: title})
			break
		}
		c := Crumb{Name: caser.String(segmentReplacer.Replace(seg))}
		if prefix := strings.Join(segments[:i+1], "/"); r.table.HasURL(prefix) {
			c.Href = links.HrefFor(prefix)
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}
