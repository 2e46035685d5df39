package service

import (
	"context"
	"errors"
	"strings"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/repository"
)

type ProfileService interface {
	CreateProfile(ctx context.Context, profile *domain.UserProfile) (string, error)
	GetProfile(ctx context.Context, id string) (*domain.UserProfile, error)
	// CheckUser returns ErrProfileNotFound when no profile exists.
	CheckUser(ctx context.Context, id string) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// CreateProfile stores the profile under the caller-supplied id. A second profile with
// the same id fails with repository.ErrDuplicateKey.
func (s *profileService) CreateProfile(ctx context.Context, profile *domain.UserProfile) (string, error) {
	if profile == nil || strings.TrimSpace(profile.ID) == "" {
		return "", validationError("id is required")
	}
	profile.ID = strings.TrimSpace(profile.ID)
	return s.profileRepo.Create(ctx, profile)
}

func (s *profileService) GetProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) CheckUser(ctx context.Context, id string) error {
	exists, err := s.profileRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProfileNotFound
	}
	return nil
}
