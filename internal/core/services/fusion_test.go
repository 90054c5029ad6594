package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

func TestDedup_FirstWinsInOrder(t *testing.T) {
	in := []domain.SearchResult{
		result("Garden of Fin", domain.OriginSID),
		result("Chahar Bagh", domain.OriginSID),
		result("garden   of FIN", domain.OriginCrossRef),
	}

	out := Dedup(in)

	require.Len(t, out, 2)
	assert.Equal(t, domain.OriginSID, out[0].Origin)
	assert.Equal(t, "Garden of Fin", out[0].Title)
	assert.Equal(t, "Chahar Bagh", out[1].Title)
}

func TestDedup_PersianVariantsCollapse(t *testing.T) {
	// Arabic Yeh and Kaf against Persian Yeh and Keheh.
	arabic := result("باغ يك", domain.OriginSID)
	persian := result("باغ یک", domain.OriginNoorMags)

	out := Dedup([]domain.SearchResult{arabic, persian})

	require.Len(t, out, 1)
	assert.Equal(t, domain.OriginSID, out[0].Origin)
}

func TestDedup_BackfillsMissingFields(t *testing.T) {
	first := result("Qanat Systems", domain.OriginSID)
	later := result("Qanat Systems", domain.OriginSemanticScholar)
	later.Abstract = "Underground channels."
	later.URL = "https://example.org/qanat"
	later.ThumbnailURL = "https://example.org/qanat.jpg"
	later.Year = "2019"
	later.Authors = []string{"A. Author"}
	later.CitationCount = intPtr(12)

	out := Dedup([]domain.SearchResult{first, later})

	require.Len(t, out, 1)
	got := out[0]
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Underground channels.", got.Abstract)
	assert.Equal(t, "https://example.org/qanat", got.URL)
	assert.Equal(t, "https://example.org/qanat.jpg", got.ThumbnailURL)
	assert.Equal(t, "2019", got.Year)
	assert.Equal(t, []string{"A. Author"}, got.Authors)
	require.NotNil(t, got.CitationCount)
	assert.Equal(t, 12, *got.CitationCount)
}

func TestDedup_KeepsPresentFields(t *testing.T) {
	first := result("Fin", domain.OriginSID)
	first.Abstract = "kept"
	first.CitationCount = intPtr(1)
	later := result("Fin", domain.OriginCrossRef)
	later.Abstract = "ignored"
	later.CitationCount = intPtr(99)

	out := Dedup([]domain.SearchResult{first, later})

	assert.Equal(t, "kept", out[0].Abstract)
	assert.Equal(t, 1, *out[0].CitationCount)
}

func TestDedup_Empty(t *testing.T) {
	assert.Empty(t, Dedup(nil))
}

func TestTitleKey(t *testing.T) {
	assert.Equal(t, TitleKey("  Bagh-e  Fin "), TitleKey("bagh-e fin"))
	assert.NotEqual(t, TitleKey("Fin"), TitleKey("Eram"))
}
