package cryptodata

import (
	"context"
	"log/slog"
	"net/http"

	"crypto-mood/internal/handler/http/requestid"
	"crypto-mood/internal/handler/http/respond"
	"crypto-mood/internal/usecase/aggregate"
	"crypto-mood/internal/usecase/mood"
)

// Reporter builds a mood report for a query.
type Reporter interface {
	Report(ctx context.Context, q aggregate.Query) mood.Report
}

type GetHandler struct {
	Svc    Reporter
	Logger *slog.Logger
}

// ServeHTTP returns the aggregated news with sentiment tags.
// @Summary      Crypto news with market mood
// @Description  Aggregates crypto headlines from all configured providers, tags each with a sentiment and summarizes the market mood
// @Tags         crypto-data
// @Produce      json
// @Param        from query string false "Start date, inclusive (YYYY-MM-DD)"
// @Param        to   query string false "End date, inclusive (YYYY-MM-DD)"
// @Success      200 {object} Response
// @Failure      405 {string} string "Method not allowed"
// @Router       /api/crypto-data [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.MethodNotAllowed(w, http.MethodGet)
		return
	}

	params := r.URL.Query()
	q := aggregate.Query{
		From: params.Get("from"),
		To:   params.Get("to"),
	}

	report := h.Svc.Report(r.Context(), q)

	if h.Logger != nil {
		h.Logger.Debug("crypto data served",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.Int("articles", len(report.News)))
	}
	respond.JSON(w, http.StatusOK, fromReport(report))
}
