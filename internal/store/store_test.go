package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"justel_spider/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreIndexRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	entries := []models.IndexEntry{
		{Seq: 1, Title: "Loi sur les jeux", Year: "2003", Month: "05", Day: "12", Numac: "2003009412",
			URL: "https://www.ejustice.just.fgov.be/eli/loi/2003/05/12/2003009412/justel"},
		{Seq: 2, Title: "Loi fiscale", Year: "2003", Month: "06", Day: "01", Numac: "2003009500",
			URL: "https://www.ejustice.just.fgov.be/eli/loi/2003/06/01/2003009500/justel"},
	}
	require.NoError(t, s.SaveIndex(entries))

	got, err := s.LoadIndex()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestFileStoreMissingIndex(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.LoadIndex()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoIndex))
}

func TestFileStoreSaveDocument(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	doc := &models.LawDocument{
		ID:       "loi-2003-05-12-2003009412-fr",
		Type:     models.DocTypeStatute,
		Title:    "Loi sur les jeux de hasard",
		Status:   models.StatusInForce,
		IssuedAt: "2003-05-12",
		Language: "fr",
		Numac:    "2003009412",
		Articles: []models.Article{{Ref: "art1", Section: "1", Title: "Article 1er", Content: "Texte."}},
	}
	require.NoError(t, s.SaveDocument(doc))

	path := filepath.Join(dir, "laws", doc.ID+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"in force"`)
	assert.Contains(t, string(data), `"art1"`)

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreCorruptIndex(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte("{not json"), 0o644))
	_, err = s.LoadIndex()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoIndex))
}
