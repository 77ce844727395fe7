// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for the logging patterns used by the API server, the worker and the fetch CLI.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (s *Service) Aggregate(ctx context.Context, q Query) []entity.Article {
//	    logger := logging.WithRequestID(ctx, s.logger)
//	    logger.Info("aggregating news")
//	}
package logging
