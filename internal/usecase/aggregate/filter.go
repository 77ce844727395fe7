package aggregate

import (
	"log/slog"
	"time"

	"crypto-mood/internal/domain/entity"
)

// window is an inclusive date range. A nil bound is open.
type window struct {
	from *time.Time
	to   *time.Time
}

// ParseBounds converts the from/to query strings into an inclusive window:
// from is midnight UTC, to is the last microsecond of its day. A malformed
// bound is reported through onInvalid and left open.
func ParseBounds(from, to string, onInvalid func(field, value string, err error)) (start, end *time.Time) {
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, time.UTC)
		if err != nil {
			onInvalid("from", from, err)
		} else {
			start = &t
		}
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, time.UTC)
		if err != nil {
			onInvalid("to", to, err)
		} else {
			t = t.Add(24*time.Hour - time.Microsecond)
			end = &t
		}
	}
	return start, end
}

func (s *Service) parseWindow(q Query) window {
	from, to := ParseBounds(q.From, q.To, func(field, value string, err error) {
		s.logger.Warn("ignoring malformed date bound",
			slog.String("field", field),
			slog.String("value", value),
			slog.Any("error", err))
	})
	return window{from: from, to: to}
}

// FilterByDate keeps articles published within [from, to]. Nil bounds are
// open; with both nil the input is returned unchanged.
func FilterByDate(articles []entity.Article, from, to *time.Time) []entity.Article {
	return window{from: from, to: to}.apply(articles)
}

func (w window) apply(articles []entity.Article) []entity.Article {
	if w.from == nil && w.to == nil {
		return articles
	}
	out := make([]entity.Article, 0, len(articles))
	for _, a := range articles {
		if w.from != nil && a.PublishedAt.Before(*w.from) {
			continue
		}
		if w.to != nil && a.PublishedAt.After(*w.to) {
			continue
		}
		out = append(out, a)
	}
	return out
}
