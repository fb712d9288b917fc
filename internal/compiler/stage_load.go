package compiler

import (
	"context"

	"git.home.luguber.info/inful/algowiki/internal/classify"
	"git.home.luguber.info/inful/algowiki/internal/config"
	"git.home.luguber.info/inful/algowiki/internal/discovery"
	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/links"
	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/observability"
)

func stageLoadClassifier(ctx context.Context, bs *buildState) error {
	c, err := classify.LoadFile(bs.cfg.ClassifierFile)
	if err != nil {
		return err
	}
	bs.classifier = c
	observability.InfoContext(ctx, "Classifier loaded",
		logfields.Path(bs.cfg.ClassifierFile),
		logfields.Count(c.Len()))
	return nil
}

func stageDiscoverPages(ctx context.Context, bs *buildState) error {
	ix, err := discovery.LoadAll(bs.root, discovery.Options{
		RejectGeneric: bs.cfg.Build.GenericPages == config.GenericReject,
	})
	if err != nil {
		return err
	}
	bs.index = ix
	bs.report.Pages = ix.Len()
	observability.InfoContext(ctx, "Pages discovered", logfields.Count(ix.Len()))
	return nil
}

func stageBuildLinks(ctx context.Context, bs *buildState) error {
	entries := bs.index.Entries()
	targets := make([]links.Target, 0, len(entries))
	for _, e := range entries {
		targets = append(targets, links.Target{Title: e.Descriptor.Title, URL: e.Descriptor.URL})
	}
	table, err := links.Build(targets)
	if err != nil {
		return errors.WrapError(err, errors.CategoryResolution, "failed to build link table").Build()
	}
	bs.table = table
	observability.DebugContext(ctx, "Link table built", logfields.Count(table.Len()))
	return nil
}
