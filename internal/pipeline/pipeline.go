package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"justel_spider/internal/config"
	"justel_spider/internal/extractor"
	"justel_spider/internal/fetcher"
	"justel_spider/internal/models"
	"justel_spider/internal/store"
)

type Stage string

const (
	StageAll      Stage = "all"
	StageDiscover Stage = "discover"
	StageContent  Stage = "content"
)

type Options struct {
	StartYear int
	EndYear   int
	Limit     int
	Languages []models.Language
	Stage     Stage
}

// Stats counts per-stage outcomes. Skipped covers expected absences: laws
// without extractable articles and laws never translated into Dutch.
type Stats struct {
	Processed int
	Failed    int
	Skipped   int
}

func (s Stats) String() string {
	return fmt.Sprintf("processed=%d failed=%d skipped=%d", s.Processed, s.Failed, s.Skipped)
}

// Pipeline drives a run: discovery over a year range, then content fetching
// per law per language. Everything is strictly sequential behind the shared
// rate limiter; that is the politeness contract with the portal, not a
// performance accident.
type Pipeline struct {
	cfg   *config.Config
	fetch *fetcher.Fetcher
	store store.Store
}

func New(cfg *config.Config, f *fetcher.Fetcher, s store.Store) *Pipeline {
	return &Pipeline{cfg: cfg, fetch: f, store: s}
}

// Discover walks the yearly listings for the primary language and persists
// the accumulated (possibly capped) index artifact. A bad year is logged and
// never aborts the remaining years.
func (p *Pipeline) Discover(ctx context.Context, startYear, endYear, limit int) ([]models.IndexEntry, error) {
	var entries []models.IndexEntry

	for year := startYear; year <= endYear; year++ {
		url := models.ComposeIndexURL(p.cfg.Portal.BaseURL, models.LangFR, year)
		body, err := p.fetch.Fetch(ctx, url)
		if err != nil {
			log.Printf("discovery %d: %v", year, err)
			continue
		}
		yearly, err := extractor.ExtractIndex(body, models.LangFR, p.cfg.Locale, p.cfg.Portal.BaseURL)
		if err != nil {
			log.Printf("discovery %d: %v", year, err)
			continue
		}
		log.Printf("discovery %d: %d laws", year, len(yearly))
		entries = append(entries, yearly...)

		if limit > 0 && len(entries) >= limit {
			entries = entries[:limit]
			break
		}
	}

	// Reassign seq across years so the artifact is 1..N overall.
	for i := range entries {
		entries[i].Seq = i + 1
	}

	if err := p.store.SaveIndex(entries); err != nil {
		return nil, fmt.Errorf("persisting index artifact: %w", err)
	}
	log.Printf("discovery done: %d entries", len(entries))
	return entries, nil
}

// FetchContent fetches and extracts every indexed law in one language. For
// Dutch, a not-found URL means the translation simply does not exist and is
// counted as skipped rather than failed.
func (p *Pipeline) FetchContent(ctx context.Context, entries []models.IndexEntry, lang models.Language) Stats {
	var stats Stats

	for _, entry := range entries {
		url := models.ComposeDocURL(p.cfg.Portal.BaseURL, lang, entry.Year, entry.Month, entry.Day, entry.Numac)

		body, err := p.fetch.Fetch(ctx, url)
		if err != nil {
			if lang == models.LangNL && errors.Is(err, fetcher.ErrNotFound) {
				log.Printf("content %s [%s]: no translation", entry.Numac, lang)
				stats.Skipped++
			} else {
				log.Printf("content %s [%s]: %v", entry.Numac, lang, err)
				stats.Failed++
			}
			continue
		}

		doc, err := extractor.ExtractDocument(body, entry.Numac, p.cfg.Locale)
		if err != nil {
			log.Printf("content %s [%s]: %v", entry.Numac, lang, err)
			stats.Failed++
			continue
		}
		if len(doc.Articles) == 0 {
			log.Printf("content %s [%s]: no articles, skipped", entry.Numac, lang)
			stats.Skipped++
			continue
		}

		// The index row is the fallback for metadata the law page omits.
		title := doc.Title
		if title == "" {
			title = entry.Title
		}
		source := doc.Source
		if source == "" {
			source = entry.Source
		}
		record := &models.LawDocument{
			ID:       models.DocumentID(lang, entry.Year, entry.Month, entry.Day, entry.Numac),
			Type:     models.DocTypeStatute,
			Title:    title,
			Status:   models.StatusInForce,
			IssuedAt: fmt.Sprintf("%s-%s-%s", entry.Year, entry.Month, entry.Day),
			URL:      url,
			Language: string(lang),
			Numac:    entry.Numac,
			InForce:  doc.EntryIntoForce,
			Source:   source,
			Articles: extractor.Consolidate(doc.Articles),
		}
		if err := p.store.SaveDocument(record); err != nil {
			log.Printf("content %s [%s]: save failed: %v", entry.Numac, lang, err)
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	log.Printf("content [%s] done: %s", lang, stats)
	return stats
}

// Run composes the stages. It returns an error only for catastrophic setup
// (a content-only run without a readable index artifact); per-item failures
// end up in the logged stats.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	var entries []models.IndexEntry
	var err error

	switch opts.Stage {
	case StageContent:
		entries, err = p.store.LoadIndex()
		if err != nil {
			return fmt.Errorf("resuming from index artifact: %w", err)
		}
		if opts.Limit > 0 && len(entries) > opts.Limit {
			entries = entries[:opts.Limit]
		}
	default:
		entries, err = p.Discover(ctx, opts.StartYear, opts.EndYear, opts.Limit)
		if err != nil {
			return err
		}
	}

	if opts.Stage == StageDiscover {
		return nil
	}

	langs := opts.Languages
	if len(langs) == 0 {
		langs = []models.Language{models.LangFR, models.LangNL}
	}
	for _, lang := range langs {
		p.FetchContent(ctx, entries, lang)
	}
	return nil
}
