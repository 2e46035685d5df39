package repository

import (
	"context"

	"fitchallenge/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository stores user profiles keyed by the caller-supplied ID.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.UserProfile) (string, error)
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// ExerciseRepository is the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
}

// RoutineRepository stores one routine per user.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	// SetExerciseCompleted writes the completed flag of exerciseID inside the first
	// session that contains it. ErrUpdateFailed is returned when nothing was modified.
	SetExerciseCompleted(ctx context.Context, routineID, exerciseID string, completed bool) error
}

// ChallengeRepository stores generated challenges.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *domain.Challenge) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error)
	List(ctx context.Context) ([]domain.Challenge, error)
	ListNames(ctx context.Context) ([]string, error)
}
