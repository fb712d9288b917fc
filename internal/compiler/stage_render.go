package compiler

import (
	"context"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/algowiki/internal/config"
	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/highlight"
	"git.home.luguber.info/inful/algowiki/internal/implementations"
	"git.home.luguber.info/inful/algowiki/internal/links"
	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/markdown"
	"git.home.luguber.info/inful/algowiki/internal/observability"
	"git.home.luguber.info/inful/algowiki/internal/render"
)

func conflictPolicy(p config.DuplicatePolicy) implementations.ConflictPolicy {
	if p == config.DuplicateError {
		return implementations.ConflictError
	}
	return implementations.ConflictLastWins
}

// renderWorkers bounds the render pool. errgroup treats a zero limit as
// "no goroutines", so unset values fall back to GOMAXPROCS.
func renderWorkers(configured int) int {
	if configured <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return configured
}

func stageRenderPages(ctx context.Context, bs *buildState) error {
	hl, err := highlight.New(bs.cfg.Build.Theme)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid highlighting theme").
			WithContext("theme", bs.cfg.Build.Theme).
			Build()
	}
	renderer, err := render.NewRenderer(bs.table, hl, bs.cfg.Site)
	if err != nil {
		return err
	}
	deps := render.Deps{
		Classifier: bs.classifier,
		Markdown:   markdown.NewRenderer(bs.cfg.Build.Theme),
		Conflicts:  conflictPolicy(bs.cfg.Build.DuplicateLabels),
	}

	entries := bs.index.Entries()
	results := make([]output, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkers(bs.cfg.Build.Workers))
	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := render.Resolve(entry, deps)
			if err != nil {
				return err
			}
			data, err := renderer.Render(p)
			if err != nil {
				return err
			}
			out := output{
				URL:  entry.Descriptor.URL,
				Path: links.OutputPath(entry.Descriptor.URL),
				Type: entry.Descriptor.Type,
				Data: data,
			}
			if ap, ok := p.(*render.AlgorithmPage); ok {
				out.Implementations = len(ap.Implementations)
			}
			results[i] = out
			observability.DebugContext(gctx, "Page rendered",
				logfields.Title(entry.Descriptor.Title),
				logfields.URL(entry.Descriptor.URL),
				logfields.PageType(entry.Descriptor.Type.String()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slices.SortFunc(results, func(a, b output) int { return strings.Compare(a.Path, b.Path) })
	for _, o := range results {
		bs.report.RenderedPages[o.Type.String()]++
		bs.report.Implementations += o.Implementations
		bs.recorder.IncPagesRendered(o.Type.String())
	}
	bs.recorder.AddImplementations(bs.report.Implementations)
	bs.outputs = results

	observability.InfoContext(ctx, "Pages rendered", logfields.Count(len(results)))
	return nil
}
