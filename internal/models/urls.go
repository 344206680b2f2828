package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Language selects which of the portal's two URL trees to walk: "fr" maps to
// the /eli/loi/ tree, "nl" to /eli/wet/.
type Language string

const (
	LangFR Language = "fr"
	LangNL Language = "nl"
)

func (l Language) PathSegment() string {
	if l == LangNL {
		return "wet"
	}
	return "loi"
}

var reDocPath = regexp.MustCompile(`/eli/(?:loi|wet)/(\d{4})/(\d{2})/(\d{2})/(\d+)/justel`)

// ComposeIndexURL builds the yearly listing URL for one language.
func ComposeIndexURL(base string, lang Language, year int) string {
	return fmt.Sprintf("%s/eli/%s/%d", strings.TrimRight(base, "/"), lang.PathSegment(), year)
}

// ComposeDocURL builds the canonical content URL for one law. Together with
// DecomposeDocURL it round-trips: any valid document URL decomposes into
// parts that compose back to the same URL.
func ComposeDocURL(base string, lang Language, year, month, day, numac string) string {
	return fmt.Sprintf("%s/eli/%s/%s/%s/%s/%s/justel",
		strings.TrimRight(base, "/"), lang.PathSegment(), year, month, day, numac)
}

// DecomposeDocURL pulls year/month/day/numac out of a content href. Works on
// both absolute URLs and the relative hrefs found on listing pages.
func DecomposeDocURL(href string) (year, month, day, numac string, ok bool) {
	m := reDocPath.FindStringSubmatch(href)
	if m == nil {
		return "", "", "", "", false
	}
	return m[1], m[2], m[3], m[4], true
}

// DocumentID names one law in one language:
// {loi|wet}-{year}-{month}-{day}-{numac}-{fr|nl}.
func DocumentID(lang Language, year, month, day, numac string) string {
	return fmt.Sprintf("%s-%s-%s-%s-%s-%s", lang.PathSegment(), year, month, day, numac, lang)
}
