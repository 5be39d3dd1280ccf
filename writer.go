package ecoute

import "context"

// ExerciseWriter writes exercises to an external representation, such as
// markdown files for offline review.
type ExerciseWriter interface {
	WriteExercise(ctx context.Context, ex *Exercise) error
}
