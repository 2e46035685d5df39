package service

import (
	"context"
	"errors"
	"strings"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/repository"
	"fitchallenge/internal/storage"
)

// MediaUpload is returned to a client that wants to upload an exercise image or video.
type MediaUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	PublicURL string `json:"publicUrl"`
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetExercise(ctx context.Context, id string) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	// CreateMediaUpload returns ErrMediaUnavailable when no bucket is configured.
	CreateMediaUpload(ctx context.Context, kind, contentType string) (*MediaUpload, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	media        storage.MediaStorage
}

// NewExerciseService creates a new instance of exerciseService. media may be nil.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, media storage.MediaStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		media:        media,
	}
}

// CreateExercise requires every field; the id is assigned by the store.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise == nil {
		return "", validationError("exercise is required")
	}
	required := []struct {
		field string
		value *string
	}{
		{"nombre", &exercise.Name},
		{"ubicacion", &exercise.Location},
		{"img", &exercise.ImageURL},
		{"video", &exercise.VideoURL},
		{"categoria", &exercise.Category},
	}
	for _, r := range required {
		*r.value = strings.TrimSpace(*r.value)
		if *r.value == "" {
			return "", validationError("%s is required", r.field)
		}
	}
	exercise.ID = ""

	return s.exerciseRepo.Create(ctx, exercise)
}

func (s *exerciseService) GetExercise(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

func (s *exerciseService) CreateMediaUpload(ctx context.Context, kind, contentType string) (*MediaUpload, error) {
	if s.media == nil {
		return nil, ErrMediaUnavailable
	}
	key, err := storage.NewObjectKey(kind, contentType)
	if err != nil {
		return nil, validationError("%v", err)
	}
	uploadURL, err := s.media.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &MediaUpload{
		UploadURL: uploadURL,
		ObjectKey: key,
		PublicURL: s.media.PublicURL(key),
	}, nil
}
