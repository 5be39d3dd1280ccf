package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mgirard/ecoute"
)

// Compile-time interface verification.
var _ ecoute.ExerciseService = (*ExerciseService)(nil)

// ExerciseService implements ecoute.ExerciseService using SQLite.
type ExerciseService struct {
	db *DB
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(db *DB) *ExerciseService {
	return &ExerciseService{db: db}
}

// hashContent computes xxHash of the scraped content fields and returns a
// hex string. Used to tell a real content change from a no-op refresh.
func hashContent(ex *ecoute.Exercise) string {
	h := xxhash.New()
	h.WriteString(ex.Title)
	h.WriteString("\x00")
	h.WriteString(ex.Transcript)
	h.WriteString("\x00")
	h.WriteString(ex.AudioURL)
	h.WriteString("\x00")
	h.WriteString(ex.H5PEmbedURL)
	b := make([]byte, 8)
	sum := h.Sum64()
	for i := 0; i < 8; i++ {
		b[i] = byte(sum >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateExercise creates a new exercise. The short ID must already be
// assigned by the caller; it is never generated here.
func (s *ExerciseService) CreateExercise(ctx context.Context, ex *ecoute.Exercise) error {
	if err := ex.Validate(); err != nil {
		return err
	}
	if ex.ID == "" {
		return ecoute.Errorf(ecoute.EINVALID, "exercise ID required")
	}

	if _, err := s.FindExerciseByID(ctx, ex.ID); err == nil {
		return ecoute.Errorf(ecoute.ECONFLICT, "exercise ID %q already exists", ex.ID)
	} else if ecoute.ErrorCode(err) != ecoute.ENOTFOUND {
		return err
	}
	if _, err := s.FindExerciseBySourceURL(ctx, ex.SourceURL); err == nil {
		return ecoute.Errorf(ecoute.ECONFLICT, "exercise for %q already exists", ex.SourceURL)
	} else if ecoute.ErrorCode(err) != ecoute.ENOTFOUND {
		return err
	}

	now := time.Now().UTC()
	ex.CreatedAt = now
	ex.UpdatedAt = now
	ex.ContentHash = hashContent(ex)

	var publishedAt any
	if ex.PublishedAt != nil {
		publishedAt = ex.PublishedAt.Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercises (id, title, level, section, source_url, thumbnail_url, audio_url, h5p_embed_url, transcript, published_at, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ex.ID, ex.Title, string(ex.Level), string(ex.Section), ex.SourceURL, ex.ThumbnailURL,
		ex.AudioURL, ex.H5PEmbedURL, ex.Transcript, publishedAt, ex.ContentHash,
		ex.CreatedAt.Format(time.RFC3339), ex.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, category := range ex.Categories {
		if category == "" {
			continue
		}
		if err := s.AddCategoryTag(ctx, ex.ID, category); err != nil {
			return err
		}
	}
	return nil
}

// FindExerciseByID retrieves an exercise by its short ID.
func (s *ExerciseService) FindExerciseByID(ctx context.Context, id string) (*ecoute.Exercise, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, level, section, source_url, thumbnail_url, audio_url, h5p_embed_url, transcript, published_at, content_hash, created_at, updated_at
		FROM exercises
		WHERE id = ?
	`, id)
	return s.scanExercise(ctx, row)
}

// FindExerciseBySourceURL retrieves an exercise by its source URL.
func (s *ExerciseService) FindExerciseBySourceURL(ctx context.Context, sourceURL string) (*ecoute.Exercise, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, level, section, source_url, thumbnail_url, audio_url, h5p_embed_url, transcript, published_at, content_hash, created_at, updated_at
		FROM exercises
		WHERE source_url = ?
	`, sourceURL)
	return s.scanExercise(ctx, row)
}

// FindExercises retrieves exercises matching the filter, newest first by
// publication date with creation date as a fallback.
func (s *ExerciseService) FindExercises(ctx context.Context, filter ecoute.ExerciseFilter) ([]*ecoute.Exercise, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, level, section, source_url, thumbnail_url, audio_url, h5p_embed_url, transcript, published_at, content_hash, created_at, updated_at FROM exercises WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Section != nil {
		query.WriteString(" AND section = ?")
		args = append(args, string(*filter.Section))
	}
	if filter.Level != nil {
		query.WriteString(" AND level = ?")
		args = append(args, string(*filter.Level))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Category != nil {
		query.WriteString(" AND EXISTS (SELECT 1 FROM exercise_categories WHERE exercise_id = exercises.id AND category = ?)")
		args = append(args, *filter.Category)
	}

	query.WriteString(" ORDER BY COALESCE(published_at, created_at) DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []*ecoute.Exercise
	for rows.Next() {
		ex, err := scanExerciseRow(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, ex := range exercises {
		if ex.Categories, err = s.loadCategories(ctx, ex.ID); err != nil {
			return nil, err
		}
	}
	return exercises, nil
}

// ListIDsAndSourceURLs returns the identity mapping of assigned short IDs
// to source URLs.
func (s *ExerciseService) ListIDsAndSourceURLs(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, source_url FROM exercises")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assigned := make(map[string]string)
	for rows.Next() {
		var id, sourceURL string
		if err := rows.Scan(&id, &sourceURL); err != nil {
			return nil, err
		}
		assigned[id] = sourceURL
	}
	return assigned, rows.Err()
}

// UpdateExercise updates mutable fields of an existing exercise. The ID
// and source URL are never reassigned.
func (s *ExerciseService) UpdateExercise(ctx context.Context, id string, upd ecoute.ExerciseUpdate) (*ecoute.Exercise, error) {
	ex, err := s.FindExerciseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		ex.Title = *upd.Title
	}
	if upd.Level != nil {
		ex.Level = *upd.Level
	}
	if upd.ThumbnailURL != nil {
		ex.ThumbnailURL = *upd.ThumbnailURL
	}
	if upd.AudioURL != nil {
		ex.AudioURL = *upd.AudioURL
	}
	if upd.H5PEmbedURL != nil {
		ex.H5PEmbedURL = *upd.H5PEmbedURL
	}
	if upd.Transcript != nil {
		ex.Transcript = *upd.Transcript
	}
	if upd.PublishedAt != nil {
		ex.PublishedAt = upd.PublishedAt
	}

	if err := ex.Validate(); err != nil {
		return nil, err
	}

	ex.ContentHash = hashContent(ex)
	if upd.ContentHash != nil {
		ex.ContentHash = *upd.ContentHash
	}
	ex.UpdatedAt = time.Now().UTC()

	var publishedAt any
	if ex.PublishedAt != nil {
		publishedAt = ex.PublishedAt.Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE exercises
		SET title = ?, level = ?, thumbnail_url = ?, audio_url = ?, h5p_embed_url = ?, transcript = ?, published_at = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, ex.Title, string(ex.Level), ex.ThumbnailURL, ex.AudioURL, ex.H5PEmbedURL, ex.Transcript,
		publishedAt, ex.ContentHash, ex.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return ex, nil
}

// AddCategoryTag attaches a category tag to an exercise. Adding an
// already-present tag is a no-op.
func (s *ExerciseService) AddCategoryTag(ctx context.Context, id string, category string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercises WHERE id = ?", id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return ecoute.Errorf(ecoute.ENOTFOUND, "exercise not found")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO exercise_categories (exercise_id, category) VALUES (?, ?)
	`, id, category)
	return err
}

// DeleteExercise permanently removes an exercise and its category tags.
func (s *ExerciseService) DeleteExercise(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM exercises WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ecoute.Errorf(ecoute.ENOTFOUND, "exercise not found")
	}
	return nil
}

// loadCategories returns the exercise's category tags in sorted order.
func (s *ExerciseService) loadCategories(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category FROM exercise_categories WHERE exercise_id = ? ORDER BY category ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExerciseRow(row rowScanner) (*ecoute.Exercise, error) {
	var ex ecoute.Exercise
	var level, section, createdAt, updatedAt string
	var publishedAt sql.NullString

	err := row.Scan(&ex.ID, &ex.Title, &level, &section, &ex.SourceURL, &ex.ThumbnailURL,
		&ex.AudioURL, &ex.H5PEmbedURL, &ex.Transcript, &publishedAt, &ex.ContentHash,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ecoute.Errorf(ecoute.ENOTFOUND, "exercise not found")
	}
	if err != nil {
		return nil, err
	}

	ex.Level = ecoute.Level(level)
	ex.Section = ecoute.Section(section)

	if ex.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if ex.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		t, err := parseRFC3339(publishedAt.String, "published_at")
		if err != nil {
			return nil, err
		}
		ex.PublishedAt = &t
	}

	return &ex, nil
}

func (s *ExerciseService) scanExercise(ctx context.Context, row *sql.Row) (*ecoute.Exercise, error) {
	ex, err := scanExerciseRow(row)
	if err != nil {
		return nil, err
	}
	if ex.Categories, err = s.loadCategories(ctx, ex.ID); err != nil {
		return nil, err
	}
	return ex, nil
}
