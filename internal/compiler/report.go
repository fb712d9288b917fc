package compiler

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/algowiki/internal/linkcheck"
	"git.home.luguber.info/inful/algowiki/internal/metrics"
)

// Outcome is the overall result of a compile.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report summarizes one compile.
type Report struct {
	BuildID   string
	Root      string
	OutputDir string
	Start     time.Time
	End       time.Time

	Errors   []error // fatal errors causing abortion (at most one)
	Warnings []error

	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult

	Pages           int            // descriptors discovered
	RenderedPages   map[string]int // page type -> documents produced
	Implementations int            // listings across all algorithm pages
	FilesWritten    int
	BrokenLinks     []linkcheck.BrokenLink

	Outcome Outcome
}

func newReport(root, outputDir string) *Report {
	return &Report{
		BuildID:        uuid.NewString(),
		Root:           root,
		OutputDir:      outputDir,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
		RenderedPages:  make(map[string]int),
	}
}

// Finish sets the end time of the report.
func (r *Report) Finish() { r.End = time.Now() }

// Duration is the wall time between start and finish.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

func (r *Report) recordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	r.StageResults[stage] = res
	switch res {
	case StageResultSuccess:
		recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	case StageResultWarning:
		recorder.IncStageResult(string(stage), metrics.ResultWarning)
	case StageResultFatal, StageResultCanceled:
		recorder.IncStageResult(string(stage), metrics.ResultFatal)
	}
}

// DeriveOutcome sets Outcome from the recorded errors and warnings.
func (r *Report) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// TotalRendered is the number of documents produced across page types.
func (r *Report) TotalRendered() int {
	n := 0
	for _, c := range r.RenderedPages {
		n += c
	}
	return n
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("pages=%d rendered=%d implementations=%d written=%d broken_links=%d warnings=%d errors=%d duration=%s outcome=%s",
		r.Pages, r.TotalRendered(), r.Implementations, r.FilesWritten, len(r.BrokenLinks),
		len(r.Warnings), len(r.Errors), r.Duration().Truncate(time.Millisecond), r.Outcome)
}
