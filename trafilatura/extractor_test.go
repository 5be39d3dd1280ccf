package trafilatura_test

import (
	"testing"

	"github.com/mgirard/ecoute/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Le journal en français facile</title></head>
<body>
<nav><a href="/">Accueil</a><a href="/exercices">Exercices</a></nav>
<article>
<h1>Le journal en français facile</h1>
<p>Aujourd'hui dans le journal, nous parlons des élections en Europe et
de la situation économique. Les journalistes analysent les résultats et
leurs conséquences pour la région.</p>
<p>Ensuite, un reportage sur l'agriculture durable dans le sud de la
France, avec des témoignages d'agriculteurs et d'experts.</p>
</article>
<footer>Mentions légales</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and title", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()
		result, err := e.Extract(samplePage)
		require.NoError(t, err)

		assert.Equal(t, "Le journal en français facile", result.Title)
		assert.Contains(t, result.ContentHTML, "élections en Europe")
		assert.NotContains(t, result.ContentHTML, "Mentions légales")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()
		_, err := e.Extract("")
		require.Error(t, err)
	})
}
