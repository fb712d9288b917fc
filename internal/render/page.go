package render

import (
	"html/template"

	"git.home.luguber.info/inful/algowiki/internal/classify"
	"git.home.luguber.info/inful/algowiki/internal/discovery"
	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/implementations"
	"git.home.luguber.info/inful/algowiki/internal/markdown"
	"git.home.luguber.info/inful/algowiki/internal/page"
)

// Page is a descriptor with its sibling content loaded. The set of variants
// is closed: *AlgorithmPage and *CategoryPage. Generic descriptors resolve
// to a nil Page.
type Page interface {
	isPage()
}

// AlgorithmPage is an algorithm description with its implementations.
type AlgorithmPage struct {
	Title           string
	URL             string
	Related         []string
	Categories      []string
	Information     template.HTML
	Implementations implementations.Set
}

// CategoryPage lists the pages that belong to a category.
type CategoryPage struct {
	Title       string
	URL         string
	Related     []string
	Information template.HTML
	Subpages    []string
}

func (*AlgorithmPage) isPage() {}
func (*CategoryPage) isPage()  {}

// Deps are the shared, read-only collaborators used by Resolve.
type Deps struct {
	Classifier *classify.Classifier
	Markdown   *markdown.Renderer
	Conflicts  implementations.ConflictPolicy
}

// Resolve loads the markdown body and, for algorithm pages, the
// implementation listings that sit next to entry's descriptor.
func Resolve(entry discovery.Entry, deps Deps) (Page, error) {
	d := entry.Descriptor
	switch d.Type {
	case page.Algorithm:
		info, err := loadInformation(entry, deps.Markdown)
		if err != nil {
			return nil, err
		}
		set, err := implementations.Collect(entry.Dir(), deps.Classifier, implementations.Options{
			Exclude: []string{entry.SourcePath, entry.MarkdownPath()},
			Policy:  deps.Conflicts,
		})
		if err != nil {
			return nil, err
		}
		return &AlgorithmPage{
			Title:           d.Title,
			URL:             d.URL,
			Related:         d.Related,
			Categories:      d.Categories,
			Information:     info,
			Implementations: set,
		}, nil
	case page.Category:
		info, err := loadInformation(entry, deps.Markdown)
		if err != nil {
			return nil, err
		}
		return &CategoryPage{
			Title:       d.Title,
			URL:         d.URL,
			Related:     d.Related,
			Information: info,
			Subpages:    d.Subpages,
		}, nil
	case page.Generic:
		return nil, nil
	default:
		return nil, errors.InternalError("unhandled page type").
			WithContext("title", d.Title).
			WithContext("page_type", d.Type.String()).
			Build()
	}
}

func loadInformation(entry discovery.Entry, md *markdown.Renderer) (template.HTML, error) {
	info, err := md.RenderFile(entry.MarkdownPath())
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to render markdown body").
			WithContext("title", entry.Descriptor.Title).
			WithContext("path", entry.MarkdownPath()).
			Build()
	}
	return info, nil
}
