// Package cryptodata serves the aggregated crypto news endpoint.
package cryptodata

import (
	"log/slog"
	"net/http"
)

// Path is the public news endpoint.
const Path = "/api/crypto-data"

// Register mounts the endpoint on mux. Middleware is applied in order, so
// the first entry is the outermost.
func Register(mux *http.ServeMux, svc Reporter, logger *slog.Logger, mw ...func(http.Handler) http.Handler) {
	var h http.Handler = GetHandler{Svc: svc, Logger: logger}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	mux.Handle(Path, h)
}
