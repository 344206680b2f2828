package extractor

import (
	"strings"
	"testing"

	"justel_spider/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidateKeepsLongerContent(t *testing.T) {
	short := models.Article{Ref: "art1", Title: "Article 1er", Content: "abrogé."}
	long := models.Article{Ref: "art1", Content: strings.Repeat("texte ", 40)}

	out := Consolidate([]models.Article{short, long})
	require.Len(t, out, 1)
	assert.Equal(t, long.Content, out[0].Content)
	// Title backfilled from the shorter duplicate.
	assert.Equal(t, "Article 1er", out[0].Title)
}

func TestConsolidatePreservesFirstSeenOrder(t *testing.T) {
	in := []models.Article{
		{Ref: "art3", Content: "trois"},
		{Ref: "art1", Content: "un"},
		{Ref: "art3", Content: "trois bis plus long"},
		{Ref: "art2", Content: "deux"},
	}
	out := Consolidate(in)
	require.Len(t, out, 3)
	assert.Equal(t, "art3", out[0].Ref)
	assert.Equal(t, "art1", out[1].Ref)
	assert.Equal(t, "art2", out[2].Ref)
	assert.Equal(t, "trois bis plus long", out[0].Content)
}

func TestConsolidateComparesNormalizedLength(t *testing.T) {
	padded := models.Article{Ref: "art1", Content: "court   \n\n   texte"}
	longer := models.Article{Ref: "art1", Content: "un contenu réellement plus long"}

	out := Consolidate([]models.Article{padded, longer})
	require.Len(t, out, 1)
	assert.Equal(t, longer.Content, out[0].Content)
}

func TestConsolidateNoDuplicates(t *testing.T) {
	in := []models.Article{
		{Ref: "art1", Content: "un"},
		{Ref: "art2", Content: "deux"},
	}
	assert.Equal(t, in, Consolidate(in))
}
