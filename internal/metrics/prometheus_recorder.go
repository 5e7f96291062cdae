package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docmerge"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	stageDuration   *prom.HistogramVec
	stageResults    *prom.CounterVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	filesMerged     *prom.CounterVec
	linksRewritten  *prom.CounterVec
	unanchoredFiles prom.Gauge
	outputBytes     prom.Gauge
	lastRun         prom.Gauge
}

// NewPrometheusRecorder constructs metrics and registers them on reg. A nil
// reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual merge stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Runs by final status",
		}, []string{"outcome"}),
		filesMerged: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_merged_total",
			Help:      "Markdown files merged by mode",
		}, []string{"mode"}),
		linksRewritten: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_total",
			Help:      "Inline links seen by the rewriter by kind",
		}, []string{"kind"}),
		unanchoredFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "unanchored_files",
			Help:      "Files of the last run merged without an anchor heading",
		}),
		outputBytes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "output_bytes",
			Help:      "Size of the last written document",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished run",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.buildDuration, pr.buildOutcome,
		pr.filesMerged, pr.linksRewritten, pr.unanchoredFiles, pr.outputBytes, pr.lastRun)
	return pr
}

// Registry returns the registry the metrics live in.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes all metrics in text exposition format. The file is
// replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) AddFilesMerged(mode string, n int) {
	if p == nil {
		return
	}
	p.filesMerged.WithLabelValues(mode).Add(float64(n))
}

func (p *PrometheusRecorder) AddLinksRewritten(kind string, n int) {
	if p == nil {
		return
	}
	p.linksRewritten.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) SetUnanchoredFiles(n int) {
	if p == nil {
		return
	}
	p.unanchoredFiles.Set(float64(n))
}

func (p *PrometheusRecorder) SetOutputBytes(n int) {
	if p == nil {
		return
	}
	p.outputBytes.Set(float64(n))
}
