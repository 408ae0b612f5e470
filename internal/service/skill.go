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
	nsSkills = "skills"
	nsSkill  = "skill"
)

var skillNamespaces = []string{nsSkills, nsSkill}

type SkillService struct {
	repo     repository.SkillRepository
	cache    cache.Cache
	validate *validation.Validator
	logger   *slog.Logger
	now      clock
}

func NewSkillService(repo repository.SkillRepository, c cache.Cache, v *validation.Validator, logger *slog.Logger) *SkillService {
	return &SkillService{repo: repo, cache: c, validate: v, logger: logger, now: systemClock}
}

func (s *SkillService) List(ctx context.Context) ([]dto.Skill, error) {
	return readThrough(ctx, s.cache, s.logger, nsSkills, allKey, func(ctx context.Context) ([]dto.Skill, error) {
		return skillDTOs(s.repo.ListSkills(ctx))
	})
}

func (s *SkillService) ListByCategory(ctx context.Context, category string) ([]dto.Skill, error) {
	return skillDTOs(s.repo.ListSkillsByCategory(ctx, category))
}

// ListByMinProficiency returns skills rated level or higher.
func (s *SkillService) ListByMinProficiency(ctx context.Context, level int) ([]dto.Skill, error) {
	return skillDTOs(s.repo.ListSkillsByMinProficiency(ctx, level))
}

func (s *SkillService) Get(ctx context.Context, id int64) (*dto.Skill, error) {
	sk, err := readThrough(ctx, s.cache, s.logger, nsSkill, idKey(id), func(ctx context.Context) (dto.Skill, error) {
		m, err := s.repo.GetSkill(ctx, id)
		if err != nil {
			return dto.Skill{}, err
		}
		return dto.SkillFromModel(m), nil
	})
	if err != nil {
		return nil, err
	}
	return &sk, nil
}

func (s *SkillService) Create(ctx context.Context, in dto.Skill) (*dto.Skill, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	m := in.ToModel()
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.repo.CreateSkill(ctx, m); err != nil {
		s.logger.Error("failed to create skill", slog.String("error", err.Error()))
		return nil, err
	}
	evict(ctx, s.cache, s.logger, skillNamespaces...)

	s.logger.Info("skill created", slog.Int64("id", m.ID), slog.String("name", m.Name))
	out := dto.SkillFromModel(m)
	return &out, nil
}

func (s *SkillService) Update(ctx context.Context, id int64, in dto.Skill) (*dto.Skill, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetSkill(ctx, id)
	if err != nil {
		return nil, err
	}

	m := in.ToModel()
	m.ID = id
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = s.now()

	if err := s.repo.UpdateSkill(ctx, m); err != nil {
		s.logger.Error("failed to update skill", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, err
	}
	evict(ctx, s.cache, s.logger, skillNamespaces...)

	s.logger.Info("skill updated", slog.Int64("id", id))
	out := dto.SkillFromModel(m)
	return &out, nil
}

func (s *SkillService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSkill(ctx, id); err != nil {
		return err
	}
	evict(ctx, s.cache, s.logger, skillNamespaces...)

	s.logger.Info("skill deleted", slog.Int64("id", id))
	return nil
}

func skillDTOs(skills []model.Skill, err error) ([]dto.Skill, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.Skill, len(skills))
	for i := range skills {
		out[i] = dto.SkillFromModel(&skills[i])
	}
	return out, nil
}
