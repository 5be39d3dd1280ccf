package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mgirard/ecoute"
)

// Ensure ExportStore implements ecoute.ExerciseWriter at compile time.
var _ ecoute.ExerciseWriter = (*ExportStore)(nil)

// ExportStore writes an export with atomic replace semantics. Exercises
// are written to a temporary directory, then moved into place on Commit,
// so a failed export never leaves a half-written tree behind.
type ExportStore struct {
	baseDir string
	name    string
}

// NewExportStore creates a new ExportStore.
// baseDir is the parent directory, name is the output directory name.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExportStore(baseDir, name string) *ExportStore {
	return &ExportStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// WriteExercise writes an exercise into the temporary export directory.
func (s *ExportStore) WriteExercise(ctx context.Context, ex *ecoute.Exercise) error {
	return NewWriter(s.tempDir()).WriteExercise(ctx, ex)
}

// Commit replaces the final directory with the temporary one.
func (s *ExportStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the temporary directory.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
