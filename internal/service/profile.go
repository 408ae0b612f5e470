package service

import (
	"context"
	"log/slog"

	"github.com/paul-ayesiga/portfolio-service/internal/dto"
	"github.com/paul-ayesiga/portfolio-service/internal/repository"
	"github.com/paul-ayesiga/portfolio-service/internal/validation"
)

// ProfileService manages user profiles. Profiles are not cached.
type ProfileService struct {
	repo     repository.ProfileRepository
	validate *validation.Validator
	logger   *slog.Logger
	now      clock
}

func NewProfileService(repo repository.ProfileRepository, v *validation.Validator, logger *slog.Logger) *ProfileService {
	return &ProfileService{repo: repo, validate: v, logger: logger, now: systemClock}
}

func (s *ProfileService) List(ctx context.Context) ([]dto.UserProfile, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserProfile, len(profiles))
	for i := range profiles {
		out[i] = dto.UserProfileFromModel(&profiles[i])
	}
	return out, nil
}

func (s *ProfileService) Get(ctx context.Context, id int64) (*dto.UserProfile, error) {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.UserProfileFromModel(p)
	return &out, nil
}

func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*dto.UserProfile, error) {
	p, err := s.repo.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	out := dto.UserProfileFromModel(p)
	return &out, nil
}

// Create fails with apperror.ErrConflict when the username is taken.
func (s *ProfileService) Create(ctx context.Context, in dto.UserProfile) (*dto.UserProfile, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	m := in.ToModel()
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.repo.CreateProfile(ctx, m); err != nil {
		s.logger.Warn("failed to create user profile",
			slog.String("username", m.Username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user profile created", slog.Int64("id", m.ID), slog.String("username", m.Username))
	out := dto.UserProfileFromModel(m)
	return &out, nil
}

// Update replaces every field except the username, which is fixed at
// creation. The body's username is ignored, so it may be omitted.
func (s *ProfileService) Update(ctx context.Context, id int64, in dto.UserProfile) (*dto.UserProfile, error) {
	existing, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Username = existing.Username
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	m := in.ToModel()
	m.ID = id
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = s.now()

	if err := s.repo.UpdateProfile(ctx, m); err != nil {
		s.logger.Error("failed to update user profile", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("user profile updated", slog.Int64("id", id))
	out := dto.UserProfileFromModel(m)
	return &out, nil
}

func (s *ProfileService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProfile(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user profile deleted", slog.Int64("id", id))
	return nil
}
