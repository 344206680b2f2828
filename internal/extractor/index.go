package extractor

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"justel_spider/internal/config"
	"justel_spider/internal/models"

	"github.com/PuerkitoBio/goquery"
)

var (
	rePubDate  = regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`)
	reFootnote = regexp.MustCompile(`\s*\(\d+\)\s*$`)
)

// ExtractIndex parses one yearly listing page into index entries, in anchor
// encounter order. Per-entry anomalies (no enclosing row, un-decomposable
// href) are logged and skipped; only an unreadable document is an error.
func ExtractIndex(rawHTML string, lang models.Language, loc config.LocaleConfig, baseURL string) ([]models.IndexEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("index page unparseable: %w", err)
	}

	segment := "/eli/" + lang.PathSegment() + "/"
	published := loc.PublishedMarker[string(lang)]
	sourceMarker := loc.SourceMarker[string(lang)]
	notice := strings.ToLower(loc.GermanNotice[string(lang)])

	var entries []models.IndexEntry
	doc.Find("a").Each(func(i int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || !strings.Contains(href, segment) {
			return
		}
		year, month, day, numac, ok := models.DecomposeDocURL(href)
		if !ok {
			return
		}

		row := sel.Closest("tr")
		if row.Length() == 0 {
			log.Printf("index: anchor %s has no enclosing row, skipped", href)
			return
		}
		cell := sel.Closest("td")
		if cell.Length() == 0 {
			cell = row
		}
		cellText := cell.Text()

		title := cellText
		if idx := strings.Index(cellText, published); idx >= 0 {
			title = cellText[:idx]
		}
		title = reFootnote.ReplaceAllString(normalizeSpace(title), "")
		if notice != "" && strings.Contains(strings.ToLower(title), notice) {
			// Administrative German-translation notices duplicate laws
			// already listed, they are not independent instruments.
			return
		}

		source := ""
		if idx := strings.Index(cellText, sourceMarker); idx >= 0 {
			rest := cellText[idx+len(sourceMarker):]
			if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
				rest = rest[:nl]
			}
			source = normalizeSpace(rest)
		}

		entries = append(entries, models.IndexEntry{
			Seq:       len(entries) + 1,
			Title:     title,
			Year:      year,
			Month:     month,
			Day:       day,
			Numac:     numac,
			URL:       models.ComposeDocURL(baseURL, lang, year, month, day, numac),
			Source:    source,
			Published: rePubDate.FindString(cellText),
		})
	})

	return entries, nil
}
