package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/algowiki/internal/foundation/errors"
	"git.home.luguber.info/inful/algowiki/internal/linkcheck"
	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/observability"
)

func stageVerifyLinks(ctx context.Context, bs *buildState) error {
	checker := linkcheck.NewChecker(bs.table.Hrefs())
	var broken []linkcheck.BrokenLink
	for _, o := range bs.outputs {
		if len(o.Data) == 0 {
			continue
		}
		found, err := checker.Check(o.URL, o.Data)
		if err != nil {
			return errors.WrapError(err, errors.CategoryBuild, "failed to scan rendered page").
				WithContext("url", o.URL).
				Build()
		}
		broken = append(broken, found...)
	}
	if len(broken) == 0 {
		return nil
	}

	bs.report.BrokenLinks = broken
	bs.recorder.IncBrokenLinks(len(broken))
	for _, b := range broken {
		observability.WarnContext(ctx, "Broken internal link",
			logfields.URL(b.Page),
			logfields.Reference(b.Link.URL))
	}

	b := errors.NewError(errors.CategoryBuild, fmt.Sprintf("%d broken internal link(s)", len(broken))).
		WithContext("first", broken[0].String())
	if bs.cfg.Build.StrictLinks {
		return b.Build()
	}
	return newWarnStageError(StageVerifyLinks, b.Warning().Build())
}

func stageWriteOutput(ctx context.Context, bs *buildState) error {
	outDir := bs.cfg.Output.Directory
	for _, o := range bs.outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := filepath.Join(outDir, o.Path)
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", filepath.Dir(dst)).
				Build()
		}
		if err := os.WriteFile(dst, o.Data, 0o600); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
				WithContext("path", dst).
				Build()
		}
		bs.report.FilesWritten++
	}
	observability.InfoContext(ctx, "Output written",
		logfields.Path(outDir),
		logfields.Count(bs.report.FilesWritten))
	return nil
}

func stageCopyStatic(ctx context.Context, bs *buildState) error {
	src := bs.cfg.Output.StaticDir
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		observability.WarnContext(ctx, "Static directory not found, skipping", logfields.Path(src))
		return nil
	}
	dst := filepath.Join(bs.cfg.Output.Directory, filepath.Base(filepath.Clean(src)))
	if err := copyDir(src, dst); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to copy static assets").
			WithContext("path", src).
			Build()
	}
	observability.InfoContext(ctx, "Static assets copied", logfields.Path(dst))
	return nil
}
