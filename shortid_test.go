package ecoute_test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/mgirard/ecoute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base36Re = regexp.MustCompile(`^[0-9a-z]+$`)

func TestGenerateShortID(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		url := "https://e.com/comprendre-actualite/journal-facile/exercice-1/"
		assert.Equal(t, ecoute.GenerateShortID(url, 0), ecoute.GenerateShortID(url, 0))
		assert.Equal(t, ecoute.GenerateShortID(url, 3), ecoute.GenerateShortID(url, 3))
	})

	t.Run("stays within the base-36 alphabet and length bound", func(t *testing.T) {
		t.Parallel()

		for i := 0; i < 20; i++ {
			for suffix := 0; suffix <= 2; suffix++ {
				id := ecoute.GenerateShortID(fmt.Sprintf("https://e.com/exercice-%d/", i), suffix)
				assert.Regexp(t, base36Re, id)
				assert.LessOrEqual(t, len(id), 8)
				assert.NotEmpty(t, id)
			}
		}
	})

	t.Run("suffix changes the ID", func(t *testing.T) {
		t.Parallel()

		for i := 0; i < 20; i++ {
			url := fmt.Sprintf("https://e.com/exercice-%d/", i)
			base := ecoute.GenerateShortID(url, 0)
			assert.NotEqual(t, base, ecoute.GenerateShortID(url, 1), "url %s", url)
			assert.NotEqual(t, base, ecoute.GenerateShortID(url, 2), "url %s", url)
		}
	})
}

func TestResolveShortID(t *testing.T) {
	t.Parallel()

	t.Run("assigns and reuses the same ID for a URL", func(t *testing.T) {
		t.Parallel()

		assigned := make(map[string]string)
		url := "https://e.com/exercice-1/"

		id, err := ecoute.ResolveShortID(url, assigned)
		require.NoError(t, err)
		assert.Equal(t, ecoute.GenerateShortID(url, 0), id)

		again, err := ecoute.ResolveShortID(url, assigned)
		require.NoError(t, err)
		assert.Equal(t, id, again)
		assert.Len(t, assigned, 1)
	})

	t.Run("probes suffixes past a taken ID", func(t *testing.T) {
		t.Parallel()

		url := "https://e.com/exercice-1/"
		collision := ecoute.GenerateShortID(url, 0)
		assigned := map[string]string{collision: "https://e.com/autre/"}

		id, err := ecoute.ResolveShortID(url, assigned)
		require.NoError(t, err)
		assert.Equal(t, ecoute.GenerateShortID(url, 1), id)
		assert.Equal(t, url, assigned[id])
		assert.Equal(t, "https://e.com/autre/", assigned[collision])
	})

	t.Run("distinct URLs get distinct IDs", func(t *testing.T) {
		t.Parallel()

		assigned := make(map[string]string)
		ids := make(map[string]string)
		for i := 0; i < 100; i++ {
			url := fmt.Sprintf("https://e.com/exercices/%d/", i)
			id, err := ecoute.ResolveShortID(url, assigned)
			require.NoError(t, err)

			if prev, ok := ids[id]; ok {
				t.Fatalf("id %q assigned to both %s and %s", id, prev, url)
			}
			ids[id] = url
		}
		assert.Len(t, assigned, 100)

		// Resolution stays stable for every URL after the fact.
		for id, url := range ids {
			got, err := ecoute.ResolveShortID(url, assigned)
			require.NoError(t, err)
			assert.Equal(t, id, got)
		}
	})
}
