// Package metrics collects compile metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check. The CLI swaps in a
// PrometheusRecorder when --metrics-file is given and writes the gathered
// families in the node-exporter textfile format after the compile:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... compile with rec ...
//	err := metrics.WriteTextfile(path, reg)
package metrics
