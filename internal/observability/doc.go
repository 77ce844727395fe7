// Package observability groups the logging, metrics and tracing helpers shared
// by the API server, the mood worker and the fetch CLI.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for providers, pipeline, classifier and mood
//   - tracing: OpenTelemetry HTTP middleware and span helpers
package observability
