package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanTextFoldsAccentsAndPunctuation(t *testing.T) {
	p := NewProcessor()

	assert.Equal(t, "abre el catalogo", p.CleanText("¡Abre el Catálogo!"))
	assert.Equal(t, "camara", p.CleanText("  Cámara.  "))
}

func TestExtractTokensDropsFillerWords(t *testing.T) {
	p := NewProcessor()

	tokens := p.ExtractTokens(p.CleanText("quiero ir a la cámara por favor"))
	assert.Equal(t, []string{"camara"}, tokens)
}

func TestSimilarity(t *testing.T) {
	p := NewProcessor()

	assert.Equal(t, 1.0, p.Similarity("Inicio", "inicio"))
	assert.Greater(t, p.Similarity("catalogo", "catálogo"), 0.9)
	assert.Greater(t, p.Similarity("inico", "inicio"), 0.7)
	assert.Less(t, p.Similarity("ajustes", "inicio"), 0.4)
}

func TestSuggestRanksClosestPhrase(t *testing.T) {
	p := NewProcessor()

	candidates := []Candidate{
		{ID: "go-home", Phrases: []string{"inicio", "home"}, Description: "Ir a inicio"},
		{ID: "open-settings", Phrases: []string{"ajustes"}, Description: "Abrir ajustes"},
	}

	suggestions := p.Suggest("quiero ir a inico", candidates, 5)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "go-home", suggestions[0].CommandID)
	assert.Equal(t, "inicio", suggestions[0].Phrase)
}

func TestSuggestEmptyOnNothingClose(t *testing.T) {
	p := NewProcessor()

	candidates := []Candidate{
		{ID: "go-home", Phrases: []string{"inicio"}, Description: "Ir a inicio"},
	}

	suggestions := p.Suggest("zzzzqqqq", candidates, 5)
	assert.Empty(t, suggestions)
}
