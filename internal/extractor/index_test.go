package extractor

import (
	"fmt"
	"testing"

	"justel_spider/internal/config"
	"justel_spider/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://www.ejustice.just.fgov.be"

func row(href, desc string) string {
	return fmt.Sprintf(`<tr><td><a href="%s">%s</a></td></tr>`, href, desc)
}

func indexPage(rows ...string) string {
	body := ""
	for _, r := range rows {
		body += r
	}
	return "<html><body><table>" + body + "</table></body></html>"
}

func TestExtractIndexValidAndInvalidAnchors(t *testing.T) {
	page := indexPage(
		row("/eli/loi/2003/05/12/2003009412/justel", "12 MAI 2003. - Loi sur les jeux publié le 15-05-2003"),
		row("/eli/loi/2003/bad/link", "entrée cassée"),
		row("/eli/loi/2003/06/01/2003009500/justel", "1 JUIN 2003. - Loi fiscale publié le 10-06-2003"),
		row("/eli/loi/2003/07/02/2003009600/justel", "2 JUILLET 2003. - Loi sociale publié le 20-07-2003"),
	)

	entries, err := ExtractIndex(page, models.LangFR, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Seq)
	}
	assert.Equal(t, "2003009412", entries[0].Numac)
	assert.Equal(t, "2003009500", entries[1].Numac)
	assert.Equal(t, "2003009600", entries[2].Numac)
	assert.Equal(t, "05", entries[0].Month)
	assert.Equal(t, "12", entries[0].Day)
	assert.Equal(t, testBase+"/eli/loi/2003/05/12/2003009412/justel", entries[0].URL)
	assert.Equal(t, "12 MAI 2003. - Loi sur les jeux", entries[0].Title)
	assert.Equal(t, "15-05-2003", entries[0].Published)
}

func TestExtractIndexGermanNoticeExcluded(t *testing.T) {
	page := indexPage(
		row("/eli/loi/2003/05/12/2003009412/justel", "Loi sur les jeux publié le 15-05-2003"),
		row("/eli/loi/2003/05/13/2003009413/justel", "Loi du 12 mai 2003 - Traduction allemande publié le 20-05-2003"),
	)

	entries, err := ExtractIndex(page, models.LangFR, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2003009412", entries[0].Numac)
}

func TestExtractIndexDutchMarkers(t *testing.T) {
	page := indexPage(
		row("/eli/wet/2003/05/12/2003009412/justel",
			"12 MEI 2003. - Wet op de kansspelen bekendgemaakt op 15-05-2003\nBron : JUSTITIE"),
	)

	entries, err := ExtractIndex(page, models.LangNL, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "12 MEI 2003. - Wet op de kansspelen", entries[0].Title)
	assert.Equal(t, "JUSTITIE", entries[0].Source)
	assert.Equal(t, testBase+"/eli/wet/2003/05/12/2003009412/justel", entries[0].URL)
}

func TestExtractIndexFootnoteStripped(t *testing.T) {
	page := indexPage(
		row("/eli/loi/2003/05/12/2003009412/justel", "Loi sur les jeux (1) publié le 15-05-2003"),
	)

	entries, err := ExtractIndex(page, models.LangFR, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Loi sur les jeux", entries[0].Title)
}

func TestExtractIndexAnchorWithoutRowSkipped(t *testing.T) {
	page := `<html><body>
		<a href="/eli/loi/2003/05/12/2003009412/justel">hors tableau</a>
		<table>` +
		row("/eli/loi/2003/06/01/2003009500/justel", "Loi fiscale publié le 10-06-2003") +
		`</table></body></html>`

	entries, err := ExtractIndex(page, models.LangFR, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2003009500", entries[0].Numac)
}

func TestExtractIndexNoTitleWhenMarkerAbsent(t *testing.T) {
	page := indexPage(
		row("/eli/loi/2003/05/12/2003009412/justel", "Loi sans marqueur de publication"),
	)

	entries, err := ExtractIndex(page, models.LangFR, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Loi sans marqueur de publication", entries[0].Title)
	assert.Empty(t, entries[0].Published)
}

func TestExtractIndexKeepsEntryWithEmptyTitle(t *testing.T) {
	// A cell holding nothing before the publication marker still names a
	// real law; the entry survives with an empty title.
	page := indexPage(
		row("/eli/loi/2003/05/12/2003009412/justel", "publié le 15-05-2003"),
	)

	entries, err := ExtractIndex(page, models.LangFR, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Title)
	assert.Equal(t, "2003009412", entries[0].Numac)
	assert.Equal(t, "15-05-2003", entries[0].Published)
}

func TestExtractIndexSourceMinistry(t *testing.T) {
	page := indexPage(
		row("/eli/loi/2003/05/12/2003009412/justel",
			"Loi sur les jeux publié le 15-05-2003\nSource : JUSTICE\nautre ligne"),
	)

	entries, err := ExtractIndex(page, models.LangFR, config.Default().Locale, testBase)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "JUSTICE", entries[0].Source)
}
