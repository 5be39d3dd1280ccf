package mock

import (
	"context"

	"github.com/mgirard/ecoute"
)

var _ ecoute.ExerciseService = (*ExerciseService)(nil)

// ExerciseService is a mock implementation of ecoute.ExerciseService.
type ExerciseService struct {
	CreateExerciseFn          func(ctx context.Context, ex *ecoute.Exercise) error
	FindExerciseByIDFn        func(ctx context.Context, id string) (*ecoute.Exercise, error)
	FindExerciseBySourceURLFn func(ctx context.Context, sourceURL string) (*ecoute.Exercise, error)
	FindExercisesFn           func(ctx context.Context, filter ecoute.ExerciseFilter) ([]*ecoute.Exercise, error)
	ListIDsAndSourceURLsFn    func(ctx context.Context) (map[string]string, error)
	UpdateExerciseFn          func(ctx context.Context, id string, upd ecoute.ExerciseUpdate) (*ecoute.Exercise, error)
	AddCategoryTagFn          func(ctx context.Context, id string, category string) error
	DeleteExerciseFn          func(ctx context.Context, id string) error
}

func (s *ExerciseService) CreateExercise(ctx context.Context, ex *ecoute.Exercise) error {
	return s.CreateExerciseFn(ctx, ex)
}

func (s *ExerciseService) FindExerciseByID(ctx context.Context, id string) (*ecoute.Exercise, error) {
	return s.FindExerciseByIDFn(ctx, id)
}

func (s *ExerciseService) FindExerciseBySourceURL(ctx context.Context, sourceURL string) (*ecoute.Exercise, error) {
	return s.FindExerciseBySourceURLFn(ctx, sourceURL)
}

func (s *ExerciseService) FindExercises(ctx context.Context, filter ecoute.ExerciseFilter) ([]*ecoute.Exercise, error) {
	return s.FindExercisesFn(ctx, filter)
}

func (s *ExerciseService) ListIDsAndSourceURLs(ctx context.Context) (map[string]string, error) {
	return s.ListIDsAndSourceURLsFn(ctx)
}

func (s *ExerciseService) UpdateExercise(ctx context.Context, id string, upd ecoute.ExerciseUpdate) (*ecoute.Exercise, error) {
	return s.UpdateExerciseFn(ctx, id, upd)
}

func (s *ExerciseService) AddCategoryTag(ctx context.Context, id string, category string) error {
	return s.AddCategoryTagFn(ctx, id, category)
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, id string) error {
	return s.DeleteExerciseFn(ctx, id)
}
