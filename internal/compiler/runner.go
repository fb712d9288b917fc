package compiler

import (
	"context"
	"errors"
	"time"

	"git.home.luguber.info/inful/algowiki/internal/logfields"
	"git.home.luguber.info/inful/algowiki/internal/observability"
)

// runStages executes stages in order, recording timing and stopping on the
// first fatal error. No stage starts before the previous one has returned.
func runStages(ctx context.Context, bs *buildState, stages []StageDef) error {
	for _, st := range stages {
		stageCtx := observability.WithStage(ctx, string(st.Name))

		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			bs.report.Errors = append(bs.report.Errors, se)
			bs.report.recordStageResult(st.Name, StageResultCanceled, bs.recorder)
			return se
		}

		observability.DebugContext(stageCtx, "Stage started")
		t0 := time.Now()
		err := st.Fn(stageCtx, bs)
		dur := time.Since(t0)

		bs.report.StageDurations[st.Name] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)

		se, result := classifyStageResult(st.Name, err)
		bs.report.recordStageResult(st.Name, result, bs.recorder)

		switch result {
		case StageResultSuccess:
			observability.DebugContext(stageCtx, "Stage finished", logfields.DurationMS(float64(dur.Microseconds())/1000))
		case StageResultWarning:
			bs.report.Warnings = append(bs.report.Warnings, se)
			observability.WarnContext(stageCtx, "Stage finished with warnings", logfields.Error(se.Err))
		case StageResultFatal, StageResultCanceled:
			bs.report.Errors = append(bs.report.Errors, se)
			return se
		}
	}
	return nil
}

func classifyStageResult(name StageName, err error) (*StageError, StageResult) {
	if err == nil {
		return nil, StageResultSuccess
	}
	var se *StageError
	if !errors.As(err, &se) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			se = newCanceledStageError(name, err)
		} else {
			se = newFatalStageError(name, err)
		}
	}
	switch se.Kind {
	case StageErrorWarning:
		return se, StageResultWarning
	case StageErrorCanceled:
		return se, StageResultCanceled
	default:
		return se, StageResultFatal
	}
}
