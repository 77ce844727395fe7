package main

import (
	"encoding/json"
	"fmt"
	"io"

	"crypto-mood/internal/domain/entity"
)

func writeText(w io.Writer, articles []entity.Article, total int) error {
	withImage := 0
	for _, a := range articles {
		if a.HasImage() {
			withImage++
		}
	}

	if _, err := fmt.Fprintf(w, "Fetched %d unique articles (showing %d, %d with image)\n\n", total, len(articles), withImage); err != nil {
		return err
	}
	for i, a := range articles {
		image := "no"
		if a.HasImage() {
			image = "yes"
		}
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s | %s | image: %s\n   %s\n",
			i+1, a.Title, a.Source, a.PublishedAtString(), image, a.URL); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, articles []entity.Article) error {
	if articles == nil {
		articles = []entity.Article{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}
