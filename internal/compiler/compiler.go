package compiler

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/algowiki/internal/classify"
	"git.home.luguber.info/inful/algowiki/internal/config"
	"git.home.luguber.info/inful/algowiki/internal/discovery"
	"git.home.luguber.info/inful/algowiki/internal/links"
	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/metrics"
	"git.home.luguber.info/inful/algowiki/internal/observability"
	"git.home.luguber.info/inful/algowiki/internal/page"
)

// Compiler turns content trees into static sites.
type Compiler struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRecorder sets the metrics recorder. The default discards metrics.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Compiler) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New returns a compiler for cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	c := &Compiler{cfg: cfg, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// output is one rendered document awaiting write.
type output struct {
	URL             string
	Path            string // relative to the output directory
	Type            page.Type
	Data            []byte
	Implementations int
}

// buildState carries everything produced by earlier stages.
type buildState struct {
	cfg      *config.Config
	root     string
	report   *Report
	recorder metrics.Recorder

	classifier *classify.Classifier
	index      *discovery.Index
	table      *links.Table
	outputs    []output
}

// Run compiles the content tree at root. The report is returned even when
// the compile fails.
func (c *Compiler) Run(ctx context.Context, root string) (*Report, error) {
	report := newReport(root, c.cfg.Output.Directory)
	ctx = observability.WithBuildID(ctx, report.BuildID)

	bs := &buildState{
		cfg:      c.cfg,
		root:     root,
		report:   report,
		recorder: c.recorder,
	}

	observability.InfoContext(ctx, "Compile started",
		logfields.Path(root),
		slog.String("output", c.cfg.Output.Directory))

	err := runStages(ctx, bs, c.stages())

	report.Finish()
	report.DeriveOutcome()
	c.recorder.ObserveBuildDuration(report.Duration())
	c.recorder.IncBuildOutcome(string(report.Outcome))

	if err != nil {
		observability.ErrorContext(ctx, "Compile failed", logfields.Error(err))
		return report, err
	}
	observability.InfoContext(ctx, "Compile finished", slog.String("summary", report.Summary()))
	return report, nil
}

func (c *Compiler) stages() []StageDef {
	return newPipeline().
		add(StageLoadClassifier, stageLoadClassifier).
		add(StageDiscoverPages, stageDiscoverPages).
		add(StageBuildLinks, stageBuildLinks).
		add(StageRenderPages, stageRenderPages).
		add(StageVerifyLinks, stageVerifyLinks).
		add(StageWriteOutput, stageWriteOutput).
		addIf(c.cfg.Output.StaticDir != "", StageCopyStatic, stageCopyStatic).
		build()
}
