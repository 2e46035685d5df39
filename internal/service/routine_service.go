package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/generation"
	"fitchallenge/internal/llm"
	"fitchallenge/internal/logger"
	"fitchallenge/internal/metrics"
	"fitchallenge/internal/repository"

	"go.uber.org/zap"
)

type RoutineService interface {
	// GenerateRoutine builds, stores and returns the routine for attrs.UserID. A user
	// that already has a routine gets repository.ErrDuplicateKey.
	GenerateRoutine(ctx context.Context, attrs domain.TrainingAttributes) (*domain.Routine, error)
	GetRoutine(ctx context.Context, id string) (*domain.Routine, error)
	// ToggleExercise flips the completed flag of the first occurrence of exerciseID and
	// returns the exercise as stored afterwards.
	ToggleExercise(ctx context.Context, routineID, exerciseID string) (*domain.RoutineExercise, error)
}

type routineService struct {
	routineRepo  repository.RoutineRepository
	exerciseRepo repository.ExerciseRepository
	generator    llm.ContentGenerator
	timeout      time.Duration
	logger       *logger.LogMiddleware
}

type RoutineServiceProps struct {
	RoutineRepo  repository.RoutineRepository
	ExerciseRepo repository.ExerciseRepository
	Generator    llm.ContentGenerator
	// Timeout bounds the model call. Zero means no extra bound.
	Timeout time.Duration
	Logger  *logger.LogMiddleware
}

func NewRoutineService(args RoutineServiceProps) RoutineService {
	return &routineService{
		routineRepo:  args.RoutineRepo,
		exerciseRepo: args.ExerciseRepo,
		generator:    args.Generator,
		timeout:      args.Timeout,
		logger:       args.Logger,
	}
}

func (s *routineService) GenerateRoutine(ctx context.Context, attrs domain.TrainingAttributes) (*domain.Routine, error) {
	attrs.UserID = strings.TrimSpace(attrs.UserID)
	if attrs.UserID == "" {
		return nil, validationError("idUsuario is required")
	}
	log := s.logger.Logger(ctx).With(zap.String("userId", attrs.UserID))

	if _, err := s.routineRepo.GetByID(ctx, attrs.UserID); err == nil {
		metrics.IncGeneration(metrics.KindRoutine, metrics.OutcomeAlreadyExists)
		return nil, fmt.Errorf("routine for %q: %w", attrs.UserID, repository.ErrDuplicateKey)
	} else if !errors.Is(err, repository.ErrNotFound) {
		metrics.IncGeneration(metrics.KindRoutine, metrics.OutcomeLookupFailed)
		return nil, err
	}

	catalog, err := s.exerciseRepo.List(ctx)
	if err != nil {
		metrics.IncGeneration(metrics.KindRoutine, metrics.OutcomeLookupFailed)
		return nil, fmt.Errorf("loading exercise catalog: %w", err)
	}

	raw, err := generate(ctx, s.generator, s.timeout, metrics.KindRoutine, generation.BuildRoutinePrompt(attrs, catalog))
	if err != nil {
		metrics.IncGeneration(metrics.KindRoutine, metrics.OutcomeModelError)
		log.Error("[Routine] model call failed", zap.Error(err))
		return nil, err
	}

	routine, err := generation.ParseRoutine(raw, attrs)
	if err != nil {
		metrics.IncGeneration(metrics.KindRoutine, parseOutcome(err))
		log.Error("[Routine] model output rejected", zap.Error(err))
		return nil, err
	}

	if _, err := s.routineRepo.Create(ctx, routine); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			metrics.IncGeneration(metrics.KindRoutine, metrics.OutcomeAlreadyExists)
		} else {
			metrics.IncGeneration(metrics.KindRoutine, metrics.OutcomeStoreError)
		}
		return nil, err
	}

	metrics.IncGeneration(metrics.KindRoutine, metrics.OutcomeSuccess)
	log.Info("[Routine] routine generated", zap.String("name", routine.Name))
	return routine, nil
}

func (s *routineService) GetRoutine(ctx context.Context, id string) (*domain.Routine, error) {
	routine, err := s.routineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

// ToggleExercise reads then writes; two concurrent toggles of the same exercise can
// both write the same value. The new value is derived from the first occurrence and
// written to every occurrence in that session, so a duplicate entry that had a
// different value ends up matching the returned exercise.
func (s *routineService) ToggleExercise(ctx context.Context, routineID, exerciseID string) (*domain.RoutineExercise, error) {
	routine, err := s.GetRoutine(ctx, routineID)
	if err != nil {
		return nil, err
	}
	si, ei, ok := routine.FindExercise(exerciseID)
	if !ok {
		return nil, ErrExerciseNotInRoutine
	}

	exercise := routine.Sessions[si].Exercises[ei]
	exercise.Completed = !exercise.Completed
	if err := s.routineRepo.SetExerciseCompleted(ctx, routineID, exerciseID, exercise.Completed); err != nil {
		return nil, err
	}
	return &exercise, nil
}

// generate runs one bounded model call and records its latency.
func generate(ctx context.Context, gen llm.ContentGenerator, timeout time.Duration, kind, prompt string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	raw, err := gen.GenerateContent(ctx, prompt)
	metrics.ObserveGenerationDuration(kind, time.Since(start).Seconds())
	return raw, err
}

func parseOutcome(err error) string {
	var extraction *generation.ExtractionError
	if errors.As(err, &extraction) {
		return metrics.OutcomeExtraction
	}
	return metrics.OutcomeMalformed
}
