package domain_test

import (
	"testing"

	"github.com/phrazzld/lingo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages(t *testing.T) {
	t.Parallel()

	langs := domain.Languages()
	require.Len(t, langs, 6)
	assert.Equal(t, domain.Language{Name: "Spanish", Flag: "🇪🇸"}, langs[0])

	langs[0].Name = "Klingon"
	assert.Equal(t, "Spanish", domain.Languages()[0].Name, "catalog must not be mutable through the copy")
}

func TestLookupLanguage(t *testing.T) {
	t.Parallel()

	lang, err := domain.LookupLanguage("  japanese ")
	require.NoError(t, err)
	assert.Equal(t, "Japanese", lang.Name)
	assert.Equal(t, "🇯🇵", lang.Flag)

	_, err = domain.LookupLanguage("Esperanto")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}
