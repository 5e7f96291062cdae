package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel enumerates final run outcomes.
type BuildOutcomeLabel string

const (
	OutcomeSuccess   BuildOutcomeLabel = "success"
	OutcomeUnchanged BuildOutcomeLabel = "unchanged"
	OutcomeFailed    BuildOutcomeLabel = "failed"
	OutcomeCanceled  BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for merge runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	AddFilesMerged(mode string, n int)
	AddLinksRewritten(kind string, n int)
	SetUnanchoredFiles(n int)
	SetOutputBytes(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) AddFilesMerged(string, int)                 {}
func (NoopRecorder) AddLinksRewritten(string, int)              {}
func (NoopRecorder) SetUnanchoredFiles(int)                     {}
func (NoopRecorder) SetOutputBytes(int)                         {}
