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

func TestCrawlRunService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns an ID and lists newest first", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewCrawlRunService(mustOpenDB(t))
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		older := &ecoute.CrawlRun{
			Section:    ecoute.SectionActualite,
			Added:      5,
			StartedAt:  base,
			FinishedAt: base.Add(time.Minute),
		}
		newer := &ecoute.CrawlRun{
			Section:    ecoute.SectionQuotidien,
			Updated:    2,
			ErrorCount: 1,
			StartedAt:  base.Add(time.Hour),
			FinishedAt: base.Add(61 * time.Minute),
		}
		require.NoError(t, s.CreateCrawlRun(ctx, older))
		require.NoError(t, s.CreateCrawlRun(ctx, newer))
		assert.NotEmpty(t, older.ID)
		assert.NotEqual(t, older.ID, newer.ID)

		runs, err := s.FindCrawlRuns(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, ecoute.SectionQuotidien, runs[0].Section)
		assert.Equal(t, 1, runs[0].ErrorCount)
		assert.Equal(t, 5, runs[1].Added)
	})

	t.Run("respects the limit", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewCrawlRunService(mustOpenDB(t))
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			run := &ecoute.CrawlRun{
				Section:    ecoute.SectionActualite,
				StartedAt:  base.Add(time.Duration(i) * time.Hour),
				FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
			}
			require.NoError(t, s.CreateCrawlRun(ctx, run))
		}

		runs, err := s.FindCrawlRuns(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})
}
