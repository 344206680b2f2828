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
	// Named anchors of the form <a name="Art.1er"> mark article starts on
	// pages that carry anchor markup at all. Offsets matter here, so the
	// scan runs over raw markup rather than the parsed tree.
	reArtAnchor = regexp.MustCompile(`(?i)<a\s[^>]*name="Art\.([^"]+)"[^>]*>`)

	// Plain-text article boundaries for pages without any anchors. Anchored
	// to line starts so a mid-sentence cross-reference ("... voir Article 78
	// de la Constitution") never spawns a bogus article.
	reArtPlain = regexp.MustCompile(`(?m)^(?:Article|Art\.?)\s+(\d+(?:er|ER)?(?:bis|ter|quater)?)\b`)
)

// Doc is the parsed form of one law page in one language.
type Doc struct {
	Title          string
	EntryIntoForce string
	Source         string
	Articles       []models.Article
}

// ExtractDocument parses a law page. A missing text-body section is a
// recoverable partial failure: the Doc comes back with zero articles and the
// caller decides not to persist it.
func ExtractDocument(rawHTML, numac string, loc config.LocaleConfig) (*Doc, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("document %s unparseable: %w", numac, err)
	}

	out := &Doc{}
	out.Title = normalizeSpace(doc.Find("." + loc.TitleClass).First().Text())

	doc.Find("." + loc.TextClass).Each(func(i int, sel *goquery.Selection) {
		for _, line := range strings.Split(sel.Text(), "\n") {
			line = strings.TrimSpace(line)
			if out.EntryIntoForce == "" {
				if v, ok := afterMarker(line, loc.EntryForceMarker); ok {
					out.EntryIntoForce = v
				}
			}
			if out.Source == "" {
				if v, ok := afterMarker(line, loc.SourceMarker); ok {
					out.Source = v
				}
			}
		}
	})

	body := doc.Find("#" + loc.BodyID).First()
	if body.Length() == 0 {
		log.Printf("document %s: no text body section, extracting nothing", numac)
		return out, nil
	}
	bodyHTML, err := body.Html()
	if err != nil {
		return nil, fmt.Errorf("document %s: cannot read body markup: %w", numac, err)
	}

	out.Articles = splitArticles(bodyHTML, loc)
	return out, nil
}

// afterMarker matches a label like "Entrée en vigueur :" case-insensitively
// in either language and returns the trimmed remainder of the line.
func afterMarker(line string, markers map[string]string) (string, bool) {
	lower := strings.ToLower(line)
	for _, marker := range markers {
		m := strings.ToLower(marker)
		if idx := strings.Index(lower, m); idx >= 0 {
			return strings.TrimSpace(line[idx+len(marker):]), true
		}
	}
	return "", false
}

// splitArticles chooses between the two splitting strategies with a single
// upfront check: anchor markup present or not. A non-trivial share of older
// pages has none, hence the plain-text fallback.
func splitArticles(bodyHTML string, loc config.LocaleConfig) []models.Article {
	marks := reArtAnchor.FindAllStringSubmatchIndex(bodyHTML, -1)
	if len(marks) == 0 {
		return splitPlainText(CleanMarkup(bodyHTML))
	}

	chapterRe, err := regexp.Compile(loc.ChapterPattern)
	if err != nil {
		log.Printf("invalid chapter pattern %q, chapter tracking disabled", loc.ChapterPattern)
		chapterRe = nil
	}

	var articles []models.Article
	chapter := ""
	prev := 0
	for i, m := range marks {
		// Chapter state carries forward from everything seen before this
		// marker; a heading inside the current span therefore labels the
		// following articles, not this one.
		if chapterRe != nil {
			if cm := chapterRe.FindAllStringSubmatch(CleanMarkup(bodyHTML[prev:m[0]]), -1); cm != nil {
				last := cm[len(cm)-1]
				chapter = normalizeSpace(last[1] + ". - " + last[2])
			}
		}
		prev = m[0]

		end := len(bodyHTML)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		token := bodyHTML[m[2]:m[3]]
		content := CleanMarkup(bodyHTML[m[0]:end])
		if content == "" {
			continue
		}
		ref, section, title := describeArticle(token)
		articles = append(articles, models.Article{
			Ref:     ref,
			Section: section,
			Title:   title,
			Content: content,
			Chapter: chapter,
		})
	}
	return articles
}

// splitPlainText splits already-cleaned text at "Article N" / "Art. N"
// boundaries. No chapter tracking in this mode.
func splitPlainText(text string) []models.Article {
	marks := reArtPlain.FindAllStringSubmatchIndex(text, -1)
	if len(marks) == 0 {
		return nil
	}

	var articles []models.Article
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		content := strings.TrimSpace(text[m[0]:end])
		if content == "" {
			continue
		}
		ref, section, title := describeArticle(text[m[2]:m[3]])
		articles = append(articles, models.Article{
			Ref:     ref,
			Section: section,
			Title:   title,
			Content: content,
		})
	}
	return articles
}

// describeArticle normalizes an anchor token like "1er" or "2" into the
// reference, display section and display title. "1er"/"1ER" keeps its
// ordinal in the title; the section and reference drop it.
func describeArticle(token string) (ref, section, title string) {
	norm := strings.ToLower(strings.ReplaceAll(token, ".", ""))
	section = strings.TrimSuffix(norm, "er")
	ref = "art" + section
	if norm == "1er" {
		title = "Article 1er"
	} else {
		title = "Article " + section
	}
	return ref, section, title
}
