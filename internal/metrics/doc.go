// Package metrics records merge run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so nothing needs
// nil checks. The CLI swaps in a PrometheusRecorder when --metrics-file is set
// and writes the registry in text exposition format after each run, ready for
// the node_exporter textfile collector:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	runner := pipeline.New(opts, pipeline.WithRecorder(rec))
//	...
//	err := rec.WriteTextfile("/var/lib/node_exporter/docmerge.prom")
package metrics
