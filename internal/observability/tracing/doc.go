// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware opens a server span per request; the aggregation pipeline,
// the provider adapters and the classifier open child spans with StartSpan.
// No exporter is configured here: the process uses whatever global
// TracerProvider the binary installs (a no-op provider by default).
package tracing
