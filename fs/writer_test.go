package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mgirard/ecoute"
	"github.com/mgirard/ecoute/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportExercise() *ecoute.Exercise {
	published := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	return &ecoute.Exercise{
		ID:          "k3x9a",
		Title:       "Le journal en français facile",
		Level:       ecoute.LevelB1,
		Section:     ecoute.SectionActualite,
		Categories:  []string{"Journal-facile"},
		SourceURL:   "https://e.com/le-journal",
		AudioURL:    "https://cdn.example.com/audio.mp3",
		Transcript:  "Bonjour et bienvenue dans le journal.",
		PublishedAt: &published,
	}
}

func TestExercisePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		id    string
		title string
		want  string
	}{
		{
			name:  "slugged title",
			id:    "k3x9a",
			title: "Le journal en français facile",
			want:  "comprendre-actualite/k3x9a-le-journal-en-fran-ais-facile.md",
		},
		{
			name:  "empty title falls back to the ID",
			id:    "k3x9a",
			title: "",
			want:  "comprendre-actualite/k3x9a.md",
		},
		{
			name:  "punctuation collapses to single hyphens",
			id:    "b2c4",
			title: "Économie : l'Europe, demain ?",
			want:  "comprendre-actualite/b2c4-conomie-l-europe-demain.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ex := &ecoute.Exercise{ID: tt.id, Title: tt.title, Section: ecoute.SectionActualite}
			assert.Equal(t, tt.want, fs.ExercisePath(ex))
		})
	}
}

func TestFormatExercise(t *testing.T) {
	t.Parallel()

	got := fs.FormatExercise(exportExercise())

	want := `---
id: k3x9a
source: https://e.com/le-journal
title: Le journal en français facile
level: B1
section: comprendre-actualite
categories: [Journal-facile]
audio: https://cdn.example.com/audio.mp3
published: 2025-06-12
---

Bonjour et bienvenue dans le journal.
`
	assert.Equal(t, want, got)
}

func TestWriter_WriteExercise(t *testing.T) {
	t.Parallel()

	t.Run("writes the markdown file under the section directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		ex := exportExercise()

		require.NoError(t, w.WriteExercise(context.Background(), ex))

		content, err := os.ReadFile(filepath.Join(dir, fs.ExercisePath(ex)))
		require.NoError(t, err)
		assert.Contains(t, string(content), "id: k3x9a")
		assert.Contains(t, string(content), "Bonjour et bienvenue")
	})

	t.Run("rejects invalid exercises", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		err := w.WriteExercise(context.Background(), &ecoute.Exercise{ID: "x"})
		require.Error(t, err)
	})
}

func TestExportStore(t *testing.T) {
	t.Parallel()

	t.Run("commit moves the export into place", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewExportStore(dir, "exercises")
		require.NoError(t, s.WriteExercise(context.Background(), exportExercise()))

		// Not visible before commit.
		_, err := os.Stat(filepath.Join(dir, "exercises"))
		require.True(t, os.IsNotExist(err))

		require.NoError(t, s.Commit())

		_, err = os.Stat(filepath.Join(dir, "exercises", fs.ExercisePath(exportExercise())))
		require.NoError(t, err)
	})

	t.Run("commit replaces a previous export", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stale := filepath.Join(dir, "exercises", "stale.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

		s := fs.NewExportStore(dir, "exercises")
		require.NoError(t, s.WriteExercise(context.Background(), exportExercise()))
		require.NoError(t, s.Commit())

		_, err := os.Stat(stale)
		require.True(t, os.IsNotExist(err))
	})

	t.Run("abort discards the temporary directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewExportStore(dir, "exercises")
		require.NoError(t, s.WriteExercise(context.Background(), exportExercise()))
		require.NoError(t, s.Abort())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
