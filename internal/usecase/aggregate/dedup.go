package aggregate

import (
	"sort"

	"crypto-mood/internal/domain/entity"
)

// Deduplicate keeps one article per URL. The first occurrence wins unless a
// later duplicate carries an image and the kept one does not; the later
// article then replaces it in the first occurrence's position.
// Articles whose URL is not absolute http(s) are passed to onInvalid and dropped.
func Deduplicate(articles []entity.Article, onInvalid func(entity.Article, error)) []entity.Article {
	out := make([]entity.Article, 0, len(articles))
	index := make(map[string]int, len(articles))

	for _, a := range articles {
		if err := entity.ValidateArticleURL(a.URL); err != nil {
			if onInvalid != nil {
				onInvalid(a, err)
			}
			continue
		}
		pos, seen := index[a.URL]
		if !seen {
			index[a.URL] = len(out)
			out = append(out, a)
			continue
		}
		if !out[pos].HasImage() && a.HasImage() {
			out[pos] = a
		}
	}
	return out
}

// SortNewestFirst orders articles by PublishedAt descending. Equal timestamps
// keep their relative order.
func SortNewestFirst(articles []entity.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
