package compiler

import (
	"context"
	"fmt"
)

// Stage is a discrete unit of work in one compile.
type Stage func(ctx context.Context, bs *buildState) error

// StageName is a strongly-typed identifier for a compile stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageLoadClassifier StageName = "load_classifier"
	StageDiscoverPages  StageName = "discover_pages"
	StageBuildLinks     StageName = "build_links"
	StageRenderPages    StageName = "render_pages"
	StageVerifyLinks    StageName = "verify_links"
	StageWriteOutput    StageName = "write_output"
	StageCopyStatic     StageName = "copy_static"
)

// StageErrorKind classifies the outcome of a failed stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Compile must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Recorded; compile continues.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError ties a failure to the stage that produced it.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageResult captures the high-level outcome of a stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

type pipeline struct{ defs []StageDef }

func newPipeline() *pipeline { return &pipeline{defs: make([]StageDef, 0, 8)} }

func (p *pipeline) add(name StageName, fn Stage) *pipeline {
	p.defs = append(p.defs, StageDef{Name: name, Fn: fn})
	return p
}

func (p *pipeline) addIf(cond bool, name StageName, fn Stage) *pipeline {
	if cond {
		p.add(name, fn)
	}
	return p
}

func (p *pipeline) build() []StageDef {
	out := make([]StageDef, len(p.defs))
	copy(out, p.defs)
	return out
}
