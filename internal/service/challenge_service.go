package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/generation"
	"fitchallenge/internal/imagesearch"
	"fitchallenge/internal/llm"
	"fitchallenge/internal/logger"
	"fitchallenge/internal/metrics"
	"fitchallenge/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ChallengeService interface {
	GenerateChallenge(ctx context.Context, attrs domain.TrainingAttributes) (*domain.Challenge, error)
	ListChallenges(ctx context.Context) ([]domain.Challenge, error)
}

type challengeService struct {
	challengeRepo repository.ChallengeRepository
	exerciseRepo  repository.ExerciseRepository
	generator     llm.ContentGenerator
	images        imagesearch.Searcher
	timeout       time.Duration
	pick          func(n int) int
	logger        *logger.LogMiddleware
}

type ChallengeServiceProps struct {
	ChallengeRepo repository.ChallengeRepository
	ExerciseRepo  repository.ExerciseRepository
	Generator     llm.ContentGenerator
	// Images may be nil, in which case every challenge gets the default cover.
	Images  imagesearch.Searcher
	Timeout time.Duration
	// Pick chooses an index in [0, n). Defaults to a uniform random choice.
	Pick   func(n int) int
	Logger *logger.LogMiddleware
}

func NewChallengeService(args ChallengeServiceProps) ChallengeService {
	pick := args.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return &challengeService{
		challengeRepo: args.ChallengeRepo,
		exerciseRepo:  args.ExerciseRepo,
		generator:     args.Generator,
		images:        args.Images,
		timeout:       args.Timeout,
		pick:          pick,
		logger:        args.Logger,
	}
}

func (s *challengeService) GenerateChallenge(ctx context.Context, attrs domain.TrainingAttributes) (*domain.Challenge, error) {
	log := s.logger.Logger(ctx)

	var (
		catalog  []domain.Exercise
		existing []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.exerciseRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("loading exercise catalog: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		existing, err = s.challengeRepo.ListNames(gctx)
		if err != nil {
			return fmt.Errorf("loading challenge names: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.IncGeneration(metrics.KindChallenge, metrics.OutcomeLookupFailed)
		return nil, err
	}

	raw, err := generate(ctx, s.generator, s.timeout, metrics.KindChallenge, generation.BuildChallengePrompt(attrs, catalog, existing))
	if err != nil {
		metrics.IncGeneration(metrics.KindChallenge, metrics.OutcomeModelError)
		log.Error("[Challenge] model call failed", zap.Error(err))
		return nil, err
	}

	challenge, err := generation.ParseChallenge(raw)
	if err != nil {
		metrics.IncGeneration(metrics.KindChallenge, parseOutcome(err))
		log.Error("[Challenge] model output rejected", zap.Error(err))
		return nil, err
	}
	generation.ResolveExerciseImages(challenge, catalog)
	challenge.CoverURL = s.coverImage(ctx, challenge.Name)

	if _, err := s.challengeRepo.Create(ctx, challenge); err != nil {
		metrics.IncGeneration(metrics.KindChallenge, metrics.OutcomeStoreError)
		return nil, err
	}

	metrics.IncGeneration(metrics.KindChallenge, metrics.OutcomeSuccess)
	log.Info("[Challenge] challenge generated", zap.String("id", challenge.ID.Hex()), zap.String("name", challenge.Name))
	return challenge, nil
}

// coverImage never fails: search errors and empty results fall back to the default.
func (s *challengeService) coverImage(ctx context.Context, name string) string {
	if s.images == nil {
		metrics.IncCoverFallback()
		return domain.DefaultImageURL
	}
	urls, err := s.images.Search(ctx, name+" exercise")
	if err != nil {
		s.logger.Logger(ctx).Warn("[Challenge] cover image search failed", zap.String("name", name), zap.Error(err))
	}
	if err != nil || len(urls) == 0 {
		metrics.IncCoverFallback()
		return domain.DefaultImageURL
	}
	return urls[s.pick(len(urls))]
}

func (s *challengeService) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	return s.challengeRepo.List(ctx)
}
