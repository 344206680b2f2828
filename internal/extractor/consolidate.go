package extractor

import "justel_spider/internal/models"

// Consolidate merges duplicate article records sharing a reference, an
// artifact of extraction on malformed pages. The longer (whitespace
// normalized) content wins; a missing title on the winner is backfilled from
// the loser. First-seen order of distinct references is preserved. Nothing
// is ever dropped outright, only merged.
func Consolidate(articles []models.Article) []models.Article {
	byRef := make(map[string]int, len(articles))
	out := make([]models.Article, 0, len(articles))

	for _, a := range articles {
		idx, seen := byRef[a.Ref]
		if !seen {
			byRef[a.Ref] = len(out)
			out = append(out, a)
			continue
		}

		kept := &out[idx]
		if len(normalizeSpace(a.Content)) > len(normalizeSpace(kept.Content)) {
			if a.Title == "" {
				a.Title = kept.Title
			}
			if a.Chapter == "" {
				a.Chapter = kept.Chapter
			}
			*kept = a
		} else if kept.Title == "" {
			kept.Title = a.Title
		}
	}
	return out
}
