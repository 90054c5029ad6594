package connectors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pardis/internal/core/domain"
)

func TestBuild_Order(t *testing.T) {
	adapters := Build(domain.DefaultSettings().Sources, nil)

	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	assert.Equal(t, Names, names)

	groups := make([]domain.ResultGroup, len(adapters))
	for i, a := range adapters {
		groups[i] = a.Group()
	}
	assert.Equal(t, []domain.ResultGroup{
		domain.GroupPapers, domain.GroupPapers, domain.GroupPapers, domain.GroupPapers,
		domain.GroupArt, domain.GroupArt, domain.GroupArt,
		domain.GroupLiterature, domain.GroupLiterature,
	}, groups)
}

func TestBuild_Disabled(t *testing.T) {
	settings := domain.DefaultSettings().Sources
	settings.Disabled = []string{"noormags", "met"}

	for _, a := range Build(settings, nil) {
		assert.NotContains(t, settings.Disabled, a.Name())
	}
	assert.Len(t, Build(settings, nil), len(Names)-2)
}

func TestBuild_OriginsAreValid(t *testing.T) {
	for _, a := range Build(domain.DefaultSettings().Sources, nil) {
		assert.True(t, a.Origin().IsValid(), a.Name())
	}
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("crossref"))
	assert.False(t, IsKnown("google-drive"))
}
