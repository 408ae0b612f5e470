package service

import (
	"context"
	"log/slog"

	"github.com/paul-ayesiga/portfolio-service/internal/cache"
	"github.com/paul-ayesiga/portfolio-service/internal/dto"
	"github.com/paul-ayesiga/portfolio-service/internal/model"
	"github.com/paul-ayesiga/portfolio-service/internal/repository"
	"github.com/paul-ayesiga/portfolio-service/internal/validation"
)

const (
	nsExperiences        = "experiences"
	nsCurrentExperiences = "currentExperiences"
	nsExperience         = "experience"
)

var experienceNamespaces = []string{nsExperiences, nsCurrentExperiences, nsExperience}

type ExperienceService struct {
	repo     repository.ExperienceRepository
	cache    cache.Cache
	validate *validation.Validator
	logger   *slog.Logger
	now      clock
}

func NewExperienceService(repo repository.ExperienceRepository, c cache.Cache, v *validation.Validator, logger *slog.Logger) *ExperienceService {
	return &ExperienceService{repo: repo, cache: c, validate: v, logger: logger, now: systemClock}
}

// List returns every experience, most recent start date first.
func (s *ExperienceService) List(ctx context.Context) ([]dto.Experience, error) {
	return readThrough(ctx, s.cache, s.logger, nsExperiences, allKey, func(ctx context.Context) ([]dto.Experience, error) {
		return experienceDTOs(s.repo.ListExperiences(ctx))
	})
}

func (s *ExperienceService) ListCurrent(ctx context.Context) ([]dto.Experience, error) {
	return readThrough(ctx, s.cache, s.logger, nsCurrentExperiences, allKey, func(ctx context.Context) ([]dto.Experience, error) {
		return experienceDTOs(s.repo.ListCurrentExperiences(ctx))
	})
}

func (s *ExperienceService) Get(ctx context.Context, id int64) (*dto.Experience, error) {
	e, err := readThrough(ctx, s.cache, s.logger, nsExperience, idKey(id), func(ctx context.Context) (dto.Experience, error) {
		m, err := s.repo.GetExperience(ctx, id)
		if err != nil {
			return dto.Experience{}, err
		}
		return dto.ExperienceFromModel(m), nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ExperienceService) Create(ctx context.Context, in dto.Experience) (*dto.Experience, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	m := in.ToModel()
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.repo.CreateExperience(ctx, m); err != nil {
		s.logger.Error("failed to create experience", slog.String("error", err.Error()))
		return nil, err
	}
	evict(ctx, s.cache, s.logger, experienceNamespaces...)

	s.logger.Info("experience created", slog.Int64("id", m.ID), slog.String("company", m.Company))
	out := dto.ExperienceFromModel(m)
	return &out, nil
}

func (s *ExperienceService) Update(ctx context.Context, id int64, in dto.Experience) (*dto.Experience, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetExperience(ctx, id)
	if err != nil {
		return nil, err
	}

	m := in.ToModel()
	m.ID = id
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = s.now()

	if err := s.repo.UpdateExperience(ctx, m); err != nil {
		s.logger.Error("failed to update experience", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}
	evict(ctx, s.cache, s.logger, experienceNamespaces...)

	s.logger.Info("experience updated", slog.Int64("id", id))
	out := dto.ExperienceFromModel(m)
	return &out, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteExperience(ctx, id); err != nil {
		return err
	}
	evict(ctx, s.cache, s.logger, experienceNamespaces...)

	s.logger.Info("experience deleted", slog.Int64("id", id))
	return nil
}

func experienceDTOs(experiences []model.Experience, err error) ([]dto.Experience, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.Experience, len(experiences))
	for i := range experiences {
		out[i] = dto.ExperienceFromModel(&experiences[i])
	}
	return out, nil
}
