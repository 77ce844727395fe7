// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the business metrics of the mood service:
//   - Provider metrics (articles returned, records dropped, errors, latency)
//   - Aggregation pipeline metrics (stage sizes, run duration)
//   - Classifier metrics (labels, request status, latency)
//   - Response cache and market mood gauges
//
// HTTP request metrics live next to the HTTP middleware that records them.
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	articles, err := provider.Fetch(ctx, criteria)
//	if err != nil {
//	    metrics.RecordProviderError(provider.Name(), "unavailable")
//	    return
//	}
//	metrics.RecordProviderFetch(provider.Name(), time.Since(start), len(articles))
package metrics
