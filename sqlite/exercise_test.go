package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/mgirard/ecoute"
	"github.com/mgirard/ecoute/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExercise(id, sourceURL string) *ecoute.Exercise {
	return &ecoute.Exercise{
		ID:         id,
		Title:      "Le journal en français facile",
		Level:      ecoute.LevelB1,
		Section:    ecoute.SectionActualite,
		Categories: []string{"Journal-facile"},
		SourceURL:  sourceURL,
		AudioURL:   "https://cdn.example.com/audio.mp3",
		Transcript: "Bonjour et bienvenue.",
	}
}

func TestExerciseService_CreateExercise(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates and retrieves an exercise", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		ex := testExercise("abc123", "https://e.com/le-journal")
		published := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
		ex.PublishedAt = &published

		require.NoError(t, s.CreateExercise(ctx, ex))
		assert.NotEmpty(t, ex.ContentHash)
		assert.False(t, ex.CreatedAt.IsZero())

		got, err := s.FindExerciseByID(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, ex.Title, got.Title)
		assert.Equal(t, ecoute.LevelB1, got.Level)
		assert.Equal(t, []string{"Journal-facile"}, got.Categories)
		require.NotNil(t, got.PublishedAt)
		assert.True(t, published.Equal(*got.PublishedAt))

		got, err = s.FindExerciseBySourceURL(ctx, "https://e.com/le-journal")
		require.NoError(t, err)
		assert.Equal(t, "abc123", got.ID)
	})

	t.Run("requires an assigned ID", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		err := s.CreateExercise(ctx, testExercise("", "https://e.com/x"))
		require.Error(t, err)
		assert.Equal(t, ecoute.EINVALID, ecoute.ErrorCode(err))
	})

	t.Run("rejects duplicate source URLs", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		require.NoError(t, s.CreateExercise(ctx, testExercise("aaa", "https://e.com/x")))

		err := s.CreateExercise(ctx, testExercise("bbb", "https://e.com/x"))
		require.Error(t, err)
		assert.Equal(t, ecoute.ECONFLICT, ecoute.ErrorCode(err))
	})

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		require.NoError(t, s.CreateExercise(ctx, testExercise("aaa", "https://e.com/x")))

		err := s.CreateExercise(ctx, testExercise("aaa", "https://e.com/y"))
		require.Error(t, err)
		assert.Equal(t, ecoute.ECONFLICT, ecoute.ErrorCode(err))
	})
}

func TestExerciseService_FindExercises(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seed := func(t *testing.T) *sqlite.ExerciseService {
		t.Helper()
		s := sqlite.NewExerciseService(mustOpenDB(t))

		a := testExercise("aaa", "https://e.com/a")
		a.Level = ecoute.LevelA2
		require.NoError(t, s.CreateExercise(ctx, a))

		b := testExercise("bbb", "https://e.com/b")
		b.Section = ecoute.SectionQuotidien
		b.Categories = []string{"Vie-pratique"}
		require.NoError(t, s.CreateExercise(ctx, b))

		c := testExercise("ccc", "https://e.com/c")
		require.NoError(t, s.CreateExercise(ctx, c))
		return s
	}

	t.Run("filters by section", func(t *testing.T) {
		t.Parallel()

		s := seed(t)
		section := ecoute.SectionQuotidien
		got, err := s.FindExercises(ctx, ecoute.ExerciseFilter{Section: &section})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "bbb", got[0].ID)
	})

	t.Run("filters by level", func(t *testing.T) {
		t.Parallel()

		s := seed(t)
		level := ecoute.LevelA2
		got, err := s.FindExercises(ctx, ecoute.ExerciseFilter{Level: &level})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "aaa", got[0].ID)
	})

	t.Run("filters by category tag", func(t *testing.T) {
		t.Parallel()

		s := seed(t)
		category := "Journal-facile"
		got, err := s.FindExercises(ctx, ecoute.ExerciseFilter{Category: &category})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		s := seed(t)
		got, err := s.FindExercises(ctx, ecoute.ExerciseFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestExerciseService_UpdateExercise(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("updates mutable fields and recomputes the content hash", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		ex := testExercise("aaa", "https://e.com/a")
		require.NoError(t, s.CreateExercise(ctx, ex))
		originalHash := ex.ContentHash

		title := "Nouveau titre"
		transcript := "Une toute nouvelle transcription de l'émission."
		got, err := s.UpdateExercise(ctx, "aaa", ecoute.ExerciseUpdate{
			Title:      &title,
			Transcript: &transcript,
		})
		require.NoError(t, err)

		assert.Equal(t, title, got.Title)
		assert.Equal(t, transcript, got.Transcript)
		assert.NotEqual(t, originalHash, got.ContentHash)
		assert.Equal(t, "aaa", got.ID)

		// Persisted, not just returned.
		found, err := s.FindExerciseByID(ctx, "aaa")
		require.NoError(t, err)
		assert.Equal(t, title, found.Title)
	})

	t.Run("returns ENOTFOUND for missing exercise", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		_, err := s.UpdateExercise(ctx, "missing", ecoute.ExerciseUpdate{})
		require.Error(t, err)
		assert.Equal(t, ecoute.ENOTFOUND, ecoute.ErrorCode(err))
	})
}

func TestExerciseService_AddCategoryTag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("adds a tag once", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		require.NoError(t, s.CreateExercise(ctx, testExercise("aaa", "https://e.com/a")))

		require.NoError(t, s.AddCategoryTag(ctx, "aaa", "Chronique-transports"))
		require.NoError(t, s.AddCategoryTag(ctx, "aaa", "Chronique-transports"))

		got, err := s.FindExerciseByID(ctx, "aaa")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chronique-transports", "Journal-facile"}, got.Categories)
	})

	t.Run("returns ENOTFOUND for missing exercise", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		err := s.AddCategoryTag(ctx, "missing", "Journal-facile")
		require.Error(t, err)
		assert.Equal(t, ecoute.ENOTFOUND, ecoute.ErrorCode(err))
	})
}

func TestExerciseService_ListIDsAndSourceURLs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := sqlite.NewExerciseService(mustOpenDB(t))
	require.NoError(t, s.CreateExercise(ctx, testExercise("aaa", "https://e.com/a")))
	require.NoError(t, s.CreateExercise(ctx, testExercise("bbb", "https://e.com/b")))

	assigned, err := s.ListIDsAndSourceURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"aaa": "https://e.com/a",
		"bbb": "https://e.com/b",
	}, assigned)
}

func TestExerciseService_DeleteExercise(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("deletes an existing exercise", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		require.NoError(t, s.CreateExercise(ctx, testExercise("aaa", "https://e.com/a")))

		require.NoError(t, s.DeleteExercise(ctx, "aaa"))

		_, err := s.FindExerciseByID(ctx, "aaa")
		assert.Equal(t, ecoute.ENOTFOUND, ecoute.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing exercise", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewExerciseService(mustOpenDB(t))
		err := s.DeleteExercise(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, ecoute.ENOTFOUND, ecoute.ErrorCode(err))
	})
}
