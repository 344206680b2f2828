package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reAnchorTag  = regexp.MustCompile(`(?is)</?a(?:\s[^>]*)?>`)
	reLineBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	reHeadingTag = regexp.MustCompile(`(?is)</?h[1-6](?:\s[^>]*)?>`)
	reAnyTag     = regexp.MustCompile(`(?s)<[^>]+>`)
	reEntity     = regexp.MustCompile(`&(?:[a-zA-Z]+|#x?[0-9a-fA-F]+);`)
	reHorizWS    = regexp.MustCompile(`[ \t\r\x{00a0}]+`)
)

// The accented Latin repertoire French and Dutch statute text actually uses.
// A fixed table instead of html.UnescapeString keeps cleaning idempotent:
// unknown references pass through untouched on every application. Markup
// metacharacters (&, <, >) are deliberately absent — decoding them would
// produce text a second application mangles: "&lt;b&gt;" would become tag
// shaped and get stripped, "&amp;eacute;" would decay one level per pass.
var namedEntities = map[string]string{
	"eacute": "é", "egrave": "è", "ecirc": "ê", "euml": "ë",
	"agrave": "à", "acirc": "â", "auml": "ä",
	"icirc": "î", "iuml": "ï",
	"ocirc": "ô", "ouml": "ö",
	"ucirc": "û", "ugrave": "ù", "uuml": "ü",
	"ccedil": "ç",
	"Eacute": "É", "Egrave": "È", "Agrave": "À", "Ccedil": "Ç",
	"laquo": "«", "raquo": "»",
	"nbsp": " ", "sect": "§", "deg": "°",
	"quot": "\"", "apos": "'",
}

func decodeEntity(ref string) string {
	body := ref[1 : len(ref)-1]
	if strings.HasPrefix(body, "#") {
		num := body[1:]
		base := 10
		if strings.HasPrefix(num, "x") || strings.HasPrefix(num, "X") {
			num = num[1:]
			base = 16
		}
		if n, err := strconv.ParseInt(num, base, 32); err == nil && n > 0 {
			switch r := rune(n); r {
			case '&', '<', '>':
				return ref
			default:
				return string(r)
			}
		}
		return ref
	}
	if out, ok := namedEntities[body]; ok {
		return out
	}
	return ref
}

// CleanMarkup turns a raw markup fragment into plain text: anchors stripped
// but their text kept, line breaks become newlines, every other tag removed,
// character references decoded in a single pass, whitespace collapsed and
// empty lines dropped. Idempotent and order-preserving.
func CleanMarkup(raw string) string {
	s := reAnchorTag.ReplaceAllString(raw, "")
	s = reLineBreak.ReplaceAllString(s, "\n")
	s = reHeadingTag.ReplaceAllString(s, "\n")
	s = reAnyTag.ReplaceAllString(s, "")
	s = reEntity.ReplaceAllStringFunc(s, decodeEntity)
	s = reHorizWS.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func normalizeSpace(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
