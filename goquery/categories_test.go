package goquery_test

import (
	"testing"

	"github.com/mgirard/ecoute"
	"github.com/mgirard/ecoute/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDiscoverer_DiscoverCategories(t *testing.T) {
	t.Parallel()

	t.Run("finds category links with trailing level tokens", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<nav>
	<a href="/comprendre-actualite/journal-facile/b1/">Journal en français facile</a>
	<a href="/comprendre-actualite/mondialement-votre/a2/">Mondialement vôtre</a>
	<a href="/a-propos">À propos</a>
</nav>
</body></html>`

		d, err := goquery.NewCategoryDiscoverer("https://francaisfacile.example.com")
		require.NoError(t, err)

		refs, err := d.DiscoverCategories(html, ecoute.SectionActualite)
		require.NoError(t, err)
		require.Len(t, refs, 2)

		assert.Equal(t, "https://francaisfacile.example.com/comprendre-actualite/journal-facile/b1/", refs[0].URL)
		assert.Equal(t, ecoute.LevelB1, refs[0].Level)
		assert.Equal(t, "Journal-facile", refs[0].Category)
		assert.Equal(t, ecoute.SectionActualite, refs[0].Section)

		assert.Equal(t, ecoute.LevelA2, refs[1].Level)
		assert.Equal(t, "Mondialement-votre", refs[1].Category)
	})

	t.Run("level token is case-insensitive and uppercased", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/s/theme/C1C2/">Chroniques</a>`

		d, err := goquery.NewCategoryDiscoverer("https://example.com")
		require.NoError(t, err)

		refs, err := d.DiscoverCategories(html, ecoute.SectionQuotidien)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, ecoute.LevelC1C2, refs[0].Level)
	})

	t.Run("category segment is decoded and title-cased", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/s/VIE%20QUOTIDIENNE/a1/">Vie quotidienne</a>`

		d, err := goquery.NewCategoryDiscoverer("https://example.com")
		require.NoError(t, err)

		refs, err := d.DiscoverCategories(html, ecoute.SectionQuotidien)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "Vie quotidienne", refs[0].Category)
	})

	t.Run("missing category segment falls back to Unknown", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/b2/">Niveau B2</a>`

		d, err := goquery.NewCategoryDiscoverer("https://example.com")
		require.NoError(t, err)

		refs, err := d.DiscoverCategories(html, ecoute.SectionQuotidien)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, ecoute.UnknownCategory, refs[0].Category)
	})

	t.Run("keeps duplicates in document order", func(t *testing.T) {
		t.Parallel()

		html := `
<a href="/s/journal/b1/">Journal</a>
<a href="/s/journal/b1/">Journal (encore)</a>`

		d, err := goquery.NewCategoryDiscoverer("https://example.com")
		require.NoError(t, err)

		refs, err := d.DiscoverCategories(html, ecoute.SectionActualite)
		require.NoError(t, err)
		assert.Len(t, refs, 2)
	})

	t.Run("ignores links without the level suffix", func(t *testing.T) {
		t.Parallel()

		html := `
<a href="/s/journal/b1">no trailing slash</a>
<a href="/s/journal/b3/">not a level</a>
<a href="mailto:contact@example.com">mail</a>`

		d, err := goquery.NewCategoryDiscoverer("https://example.com")
		require.NoError(t, err)

		refs, err := d.DiscoverCategories(html, ecoute.SectionActualite)
		require.NoError(t, err)
		assert.Empty(t, refs)
	})
}
